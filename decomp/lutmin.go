package decomp

import (
	"github.com/vlsitools/lsynth/dd"
	"github.com/vlsitools/lsynth/network"
)

// LutMin decomposes f into a network of K-input LUTs (represented as
// FuncBdd nodes carrying f's own sub-edges, since every node here lives in
// the same manager and needs no variable remapping). Support <= k fits
// directly; support == k+1 first tries cofactor decomposition; anything
// larger falls through to Ashenhurst-Curtis (with its own Mux412 escape
// hatch). Returns the id of the network object realizing f.
func LutMin(net *network.Network, mgr *dd.Manager, f dd.Edge, k int) uint64 {
	support := mgr.Support(f)
	switch {
	case len(support) <= k:
		return addLutNode(net, mgr, f)

	case len(support) == k+1:
		if id, ok := tryCofactorDecomposition(net, mgr, f, k, support); ok {
			return id
		}
		fallthrough

	default:
		return ashenhurstCurtis(net, mgr, f, k, support)
	}
}

// addLutNode materializes f as one K-LUT network object: a FuncBdd node
// whose Fanins record, in support order, which network CI feeds each of
// f's manager variables (gbb's FuncBdd composition ignores Fanins and
// transfers Bdd directly, so Fanins here exist for connectivity/topology
// bookkeeping rather than for recomposing the function itself).
func addLutNode(net *network.Network, mgr *dd.Manager, f dd.Edge) uint64 {
	id := net.AddNode(network.FuncHandle{Kind: network.FuncBdd, Bdd: f})
	for _, v := range mgr.Support(f) {
		_ = net.AddFanin(id, ciFor(net, v), false)
	}
	return id
}
