package decomp

import (
	"sort"

	"github.com/vlsitools/lsynth/dd"
	"github.com/vlsitools/lsynth/network"
)

// swapAttempts bounds the local-search improvement pass over the initial
// bound-set choice, a tractability cap in the same spirit as FX's
// lookahead cap (spec §9 open question (b) treats 20 as a tuning
// constant with no stated justification; this package picks its own cap
// for the same reason: unbounded search over all k-subsets of a large
// support is not tractable).
const swapAttempts = 24

// ashenhurstCurtis implements the general decomposition tier: choose a
// K-variable bound set minimizing column multiplicity, and either build
// the log2(mu) encoding-bit construction (when it fits in K-2 bits) or
// fall back to the Mux412 4-cofactor split.
func ashenhurstCurtis(net *network.Network, mgr *dd.Manager, f dd.Edge, k int, support []int32) uint64 {
	bound := chooseBoundSet(mgr, f, k, support)
	columns, codeOf := enumerateColumns(mgr, f, bound)
	mu := len(columns)

	if mu == 1 {
		return addLutNode(net, mgr, columns[0])
	}

	codeBits := bitsFor(mu)
	if codeBits <= k-2 {
		return buildEncodedComposition(net, mgr, k, bound, columns, codeOf, codeBits)
	}
	return mux412(net, mgr, f, k, support)
}

// bitsFor returns ceil(log2(mu)) for mu >= 1.
func bitsFor(mu int) int {
	bits := 0
	for (1 << bits) < mu {
		bits++
	}
	return bits
}

// chooseBoundSet starts from the k support variables deepest in the
// manager's current order (spec's "K bottom variables") and runs a
// bounded local search swapping a bound variable for a free one whenever
// that strictly reduces column multiplicity, the same "try a neighboring
// configuration, keep it only if it improves" shape as gridgraph's
// neighborhood refinement.
func chooseBoundSet(mgr *dd.Manager, f dd.Edge, k int, support []int32) []int32 {
	ordered := append([]int32(nil), support...)
	sort.Slice(ordered, func(i, j int) bool { return mgr.VarLevel(ordered[i]) > mgr.VarLevel(ordered[j]) })

	bound := append([]int32(nil), ordered[:k]...)
	free := append([]int32(nil), ordered[k:]...)
	if len(free) == 0 {
		return bound
	}

	mu := columnMultiplicity(mgr, f, bound)
	attempts := 0
	for attempts < swapAttempts {
		improved := false
		for bi := range bound {
			for fi := range free {
				trial := append([]int32(nil), bound...)
				trial[bi] = free[fi]
				trialMu := columnMultiplicity(mgr, f, trial)
				attempts++
				if trialMu < mu {
					bound[bi], free[fi] = free[fi], bound[bi]
					mu = trialMu
					improved = true
				}
				if attempts >= swapAttempts {
					break
				}
			}
			if attempts >= swapAttempts {
				break
			}
		}
		if !improved {
			break
		}
	}
	return bound
}

// columnMultiplicity counts the distinct column functions over bound.
func columnMultiplicity(mgr *dd.Manager, f dd.Edge, bound []int32) int {
	cols, _ := enumerateColumns(mgr, f, bound)
	return len(cols)
}

// enumerateColumns restricts f to every one of the 2^len(bound)
// assignments to bound, returning the distinct resulting column edges in
// first-seen order and a map from assignment index to that column's code.
func enumerateColumns(mgr *dd.Manager, f dd.Edge, bound []int32) ([]dd.Edge, map[int]int) {
	total := 1 << len(bound)
	codeOf := make(map[int]int, total)
	seen := make(map[dd.Edge]int)
	var columns []dd.Edge

	for idx := 0; idx < total; idx++ {
		assign := make(map[int32]bool, len(bound))
		for i, v := range bound {
			assign[v] = (idx>>uint(i))&1 == 1
		}
		col := restrictSet(mgr, f, assign)
		code, ok := seen[col]
		if !ok {
			code = len(columns)
			seen[col] = code
			columns = append(columns, col)
		}
		codeOf[idx] = code
	}
	return columns, codeOf
}

// buildEncodedComposition realizes the log2(mu)-bit encoding construction:
// one K-LUT bound node per encoding bit (a function of bound alone), one
// recursively-decomposed subnetwork per distinct column function, and a
// composition tree of 3-input MUXes selecting among the columns by the
// bound nodes' outputs.
func buildEncodedComposition(net *network.Network, mgr *dd.Manager, k int, bound []int32, columns []dd.Edge, codeOf map[int]int, codeBits int) uint64 {
	total := 1 << len(bound)

	boundNodes := make([]uint64, codeBits)
	for bit := 0; bit < codeBits; bit++ {
		acc := mgr.ReadZero()
		for idx := 0; idx < total; idx++ {
			if (codeOf[idx]>>uint(bit))&1 == 0 {
				continue
			}
			minterm := mgr.ReadOne()
			for i, v := range bound {
				lit := mgr.IthVar(int(v))
				if (idx>>uint(i))&1 == 0 {
					lit = mgr.Not(lit)
				}
				minterm = mgr.And(minterm, lit)
			}
			acc = mgr.Or(acc, minterm)
		}
		boundNodes[bit] = addLutNode(net, mgr, acc)
	}

	leaves := make([]uint64, 1<<uint(codeBits))
	for code := range leaves {
		src := code
		if src >= len(columns) {
			src = len(columns) - 1 // unreachable code, never selected by real bound nodes
		}
		leaves[code] = LutMin(net, mgr, columns[src], k)
	}

	return buildSelectTree(net, boundNodes, leaves)
}

// buildSelectTree recombines leaves (indexed by the binary code bits)
// pairwise via 3-input MUX nodes, the last (most significant) code bit
// choosing the top-level split.
func buildSelectTree(net *network.Network, bits []uint64, leaves []uint64) uint64 {
	if len(bits) == 0 {
		return leaves[0]
	}
	top := len(bits) - 1
	half := len(leaves) / 2
	lo := buildSelectTree(net, bits[:top], leaves[:half])
	hi := buildSelectTree(net, bits[:top], leaves[half:])

	muxID := net.AddNode(network.FuncHandle{Kind: network.FuncGate, Gate: "mux"})
	_ = net.AddFanin(muxID, bits[top], false)
	_ = net.AddFanin(muxID, hi, false)
	_ = net.AddFanin(muxID, lo, false)
	return muxID
}

// mux412 is the fallback when even the encoded composition would need
// more than k-2 bits: split on the two deepest support variables and
// combine the four recursively-decomposed cofactors with two inner 2:1
// MUXes feeding one outer 2:1 MUX (the "Mux412" topology of spec §9 open
// question (a); Mux412a's alternate internal wiring is not implemented).
func mux412(net *network.Network, mgr *dd.Manager, f dd.Edge, k int, support []int32) uint64 {
	ordered := append([]int32(nil), support...)
	sort.Slice(ordered, func(i, j int) bool { return mgr.VarLevel(ordered[i]) > mgr.VarLevel(ordered[j]) })
	x1, x2 := ordered[0], ordered[1]

	f00 := cofactorVar(mgr, cofactorVar(mgr, f, x1, false), x2, false)
	f01 := cofactorVar(mgr, cofactorVar(mgr, f, x1, false), x2, true)
	f10 := cofactorVar(mgr, cofactorVar(mgr, f, x1, true), x2, false)
	f11 := cofactorVar(mgr, cofactorVar(mgr, f, x1, true), x2, true)

	n00 := LutMin(net, mgr, f00, k)
	n01 := LutMin(net, mgr, f01, k)
	n10 := LutMin(net, mgr, f10, k)
	n11 := LutMin(net, mgr, f11, k)

	lo2 := net.AddNode(network.FuncHandle{Kind: network.FuncGate, Gate: "mux"})
	_ = net.AddFanin(lo2, ciFor(net, x2), false)
	_ = net.AddFanin(lo2, n01, false)
	_ = net.AddFanin(lo2, n00, false)

	hi2 := net.AddNode(network.FuncHandle{Kind: network.FuncGate, Gate: "mux"})
	_ = net.AddFanin(hi2, ciFor(net, x2), false)
	_ = net.AddFanin(hi2, n11, false)
	_ = net.AddFanin(hi2, n10, false)

	out := net.AddNode(network.FuncHandle{Kind: network.FuncGate, Gate: "mux"})
	_ = net.AddFanin(out, ciFor(net, x1), false)
	_ = net.AddFanin(out, hi2, false)
	_ = net.AddFanin(out, lo2, false)
	return out
}
