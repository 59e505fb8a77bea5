// Package geometry provides the spatial types embedded into combinatorial
// maps: 2D/3D vertices and vectors over float64 coordinates.
//
// Vertices implement the attribute behavior contract: merging two vertices
// averages their positions (a one-sided merge keeps the defined position),
// and splitting duplicates the position on both outputs.
package geometry
