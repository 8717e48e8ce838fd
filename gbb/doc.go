// Package gbb builds a global BDD for every node of a network.Network by
// walking the network in topological order and composing each node's
// local function (AND, SOP cover, or mapped gate) out of its fanins'
// already-built global functions.
//
// Peak BDD size is controlled two ways, both named in Params: a node-count
// ceiling that aborts the whole build once the manager's live node count
// crosses it, and reference-counted dropping of an internal node's global
// function as soon as every one of its fanouts has consumed it (so the
// manager never needs more live nodes than the current "frontier" of the
// walk actually requires). This mirrors flow.Dinic's phase-by-phase
// residual-capacity bookkeeping: capMap is rebuilt/shrunk as flow is
// pushed rather than retaining the whole original graph's worth of state,
// the same way this package retains only the BDDs still needed by
// unprocessed fanouts.
package gbb
