// Package triangulation cuts polygonal faces of a 2-map into triangles.
//
// These are not meshing functions: they refine individual cells of an
// irregular mesh. Fanning comes in two shapes, a defensive one that
// searches for a vertex seeing the whole polygon and a cheaper one that
// assumes the cell is convex and fans from its first vertex.
package triangulation
