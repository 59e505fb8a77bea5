// Package vtk reads and writes 2-maps as legacy ASCII VTK files.
//
// Only the UNSTRUCTURED_GRID dataset is handled, and only cell types
// that a 2-map can represent without orientation ambiguity: Vertex and
// Line cells are accepted but ignored, Triangle, Quad and Polygon cells
// become faces. On export, boundary edges are written as Line cells so
// that the mesh border stays visible in viewers.
package vtk
