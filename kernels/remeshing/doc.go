// Package remeshing provides transactional mesh-editing kernels for
// triangular 2-maps: neighbor-average vertex relaxation, edge cutting and
// edge swapping, plus the geometrical anchor attributes constraining them.
//
// Kernels operate inside a caller-owned transaction so several of them can
// compose into one atomic pass. Domain failures surface as typed aborts,
// distinct from transactional conflicts which simply retry.
package remeshing
