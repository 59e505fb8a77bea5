// Package attributes implements generic, transactional storage for values
// attached to the cells of a combinatorial map.
//
// An attribute type describes its own update logic through the Behavior
// interface: how two values merge when a sew unifies two cells, and how one
// value splits when an unsew separates them. Optional fallback interfaces
// cover the degenerate cases where one or both inputs are missing.
//
// Values live in SparseVec collections, one transactional slot per owning
// cell id, and are registered in a Manager keyed by their runtime type so
// map-level operators can update every attribute of a cell kind without
// knowing the concrete types involved.
package attributes
