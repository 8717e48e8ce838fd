// Package topo provides traversal algorithms over a network.Network:
// topological ordering, cycle detection, and level assignment, following
// the split dfs applies to core.Graph (data structure in one package,
// algorithms over it in a sibling package).
//
// Every traversal here follows Fanins (an object's dependencies) rather
// than Fanouts, so a plain post-order DFS already yields a valid
// evaluation order with no final reversal: if v depends on u (u is one of
// v's fanins), a DFS started at v visits u and records it before v is
// recorded. This is the mirror image of dfs.TopologicalSort, which walks
// forward along precedes-edges and reverses its post-order at the end —
// here the edges already point from dependent to dependency, so the
// reversal dfs needs would undo the order instead of producing it.
package topo
