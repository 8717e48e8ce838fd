// Package network defines the Object/Network boolean-network model this
// module synthesizes over: primary inputs/outputs, latches, internal logic
// nodes, black boxes, and structurally-hashed AIG nodes, linked by
// bidirectional fanin/fanout edges.
//
// Network is a direct rename-and-generalize of core.Graph: muObj/muFanIO
// are core's muVert/muEdgeAdj, objects is core's vertices map generalized
// to carry a Kind and a Func payload instead of a plain label, and fanins
// are core's edges generalized to carry a complement bit instead of a
// weight. The functional-options construction pattern (NetOption) and the
// sentinel-error-per-failure-mode style both follow core directly.
//
// Traversal (topological order, cycle detection, reachability) lives in
// the sibling topo package, mirroring core/dfs's split between the data
// structure and its algorithms; Check itself (check.go) validates fanin
// and fanout consistency without a traversal.
package network
