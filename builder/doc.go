// Package builder assembles combinatorial maps from descriptors: a plain
// dart count, an orthogonal 2D grid (optionally split into triangles), or
// a previously saved file.
package builder
