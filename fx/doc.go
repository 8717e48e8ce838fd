// Package fx implements cube extraction over a network's FuncSop nodes: a
// Matrix of variables (literal polarity columns), cubes (rows, one per
// output's product term) and literals (the matrix entries, doubly-linked
// per row and per column) is built from every node's current cover;
// Extract greedily pulls out the highest-weight shared sub-expression it
// can find — either a single-cube (2-literal, AND) divisor coincident
// across rows, or a double-cube (cube-free OR/XOR) divisor shared by two
// or more cube pairs — and rewrites every row it touches to reference the
// new node instead; Dissolve reads the matrix's final state back out as
// plain sop.Covers.
//
// Divisor identity never depends on which node or cube pair discovered
// it: a single-cube divisor is keyed by its two variable columns, a
// double-cube divisor by its two canonical non-base literal lists. Two
// cube pairs in two entirely different output nodes that reduce to the
// same non-base structure (f = a*b + a*c, g = e*b + e*c both containing a
// b-vs-c pair) are recognized as one divisor and extracted together,
// producing one shared node both nodes reference — this is the whole
// reason the matrix tracks pairs by their literal structure instead of by
// the node that happened to find them first.
//
// Within one node, cube pairs are enumerated exhaustively unless the
// node's pair count would exceed PairsMax, in which case a
// literal-difference histogram keeps the closest pairs first (grounded on
// dtw's distance-matrix counting). Both divisor kinds are held in a
// container/heap priority queue ordered by weight, each entry carrying
// its own heap index for O(log n) removal and re-fixing as extractions
// change other entries' weights — the incremental analogue of
// prim_kruskal.Kruskal's one-shot sort.SliceStable, needed here because
// FX keeps choosing after the structure it is choosing from has changed.
//
// See DESIGN.md for the full rationale, the deliberate simplifications
// (partial incremental re-weighting after extraction, no mid-pass
// rediscovery of new double-cube candidates), and the Open Question
// decisions.
package fx
