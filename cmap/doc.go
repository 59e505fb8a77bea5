// Package cmap implements 2D and 3D combinatorial maps: dart-based mesh
// topology mutated through transactions.
//
// A map is a set of darts connected by beta adjacency functions. All dart
// state lives in flat arrays indexed by dart id; the null dart is id 0 and
// acts as the absent image of every beta function. Cells (vertices, edges,
// faces, volumes) are never stored: a cell identifier is the minimum dart
// id of the corresponding orbit, recomputed on demand so it is always
// consistent with the current topology.
//
// Structural edits come in three layers:
//   - link/unlink: raw adjacency edits with freeness checks, no attribute
//     side effects,
//   - sew/unsew: composite edits that link darts and merge (or split) the
//     attributes of the cells the link unifies (or separates),
//   - force variants: auto-retried one-shot wrappers around either.
//
// Every mutating operation takes a *stm.Tx and either fully commits or has
// no effect; concurrent edits that overlap conflict and retry per the
// caller's control policy.
package cmap
