// Package dd implements an ordered, reduced, complemented-edge binary
// decision diagram (BDD) manager: unique table, computed-table cache,
// reference counting, dynamic variable reordering, and ISOP extraction.
//
// The node store is a flat slab ([]node) with an intrusive free list,
// the unique table maps (level, then, else) triples to slab indices, and
// every edge out of the manager carries an independent complement bit so
// that Not is O(1). The sole canonicity rule beyond ordinary BDD reduction
// is that an internal node's else edge is always regular; complement is
// carried on the parent edge only (see mk).
//
// Only AndLimit, IteLimit and TransferDeadline accept a Budget (wall-clock
// deadline plus a node-count ceiling); crossing either aborts the operation
// (AndLimit and IteLimit return Null, TransferDeadline returns ok=false)
// while leaving the unique table and cache consistent, so a caller may
// reorder variables and retry. The other operations (And, Ite,
// ExistAbstract, Restrict, ...) take no Budget and always run to completion.
//
// The manager is not safe for concurrent mutation from multiple
// goroutines at once (the core's concurrency model is single-threaded
// cooperative, see the package-level spec); the RWMutex exists only so
// read-only queries (CountNodes, Support, ...) may run concurrently with
// each other, matching the locking discipline the rest of this module's
// packages use.
package dd
