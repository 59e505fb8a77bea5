// Package honeycomb implements combinatorial maps (n-maps) for concurrent
// mesh processing.
//
// A combinatorial map models a 2D or 3D cell complex through darts and beta
// adjacency functions. All structural edits go through a software
// transactional memory substrate (package stm): a batch of link/attribute
// mutations either fully applies or has no effect, and conflicting
// transactions are detected at commit time and retried instead of blocking.
//
// The main entry points are:
//
//   - cmap.CMap2 / cmap.CMap3: the map objects, exposing transactional and
//     forcing (auto-retried) variants of link/unlink, sew/unsew, orbit
//     traversal and attribute access.
//   - builder.Builder: map construction from a dart count, a grid
//     descriptor, or a mesh file.
//   - attributes.Manager: the attribute-type registry passed to builders so
//     client code can embed custom data (anchors, refinement levels, ...)
//     on vertices, edges, faces or volumes.
//   - kernels/...: remeshing routines (vertex relaxation, edge cut, edge
//     swap, fan triangulation) built purely on the transactional API.
//   - parallel: dispatch backends wrapping the transaction retry loop for
//     batches of independent work units.
//
// Serialization to the .cmap text format and legacy VTK files lives in
// cmapfile and vtk; both are pure clients of the forcing API.
package honeycomb

// Version of the library.
const Version = "0.2.0"
