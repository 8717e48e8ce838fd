package decomp

import (
	"github.com/vlsitools/lsynth/dd"
	"github.com/vlsitools/lsynth/network"
)

// tryCofactorDecomposition handles the support == k+1 tier: search for one
// variable x whose cofactors both have support <= k-2, tie-broken by the
// smaller cofactor's support (ascending) then by ascending variable ID
// (spec's stated tie-break). On success it builds one K-LUT per cofactor
// and combines them with a 3-input MUX on x; on failure ok is false and the
// caller falls through to Ashenhurst-Curtis.
//
// The source material also describes reusing one cofactor's otherwise-idle
// LUT input across both branches via a shared "don't-care" variable y, an
// optimization that reduces physical LUT count below the naive two-LUT
// construction here but is not required for functional correctness; this
// implementation always builds two independent LUTs and documents the
// simplification rather than chasing the ambiguous y-sharing rule.
func tryCofactorDecomposition(net *network.Network, mgr *dd.Manager, f dd.Edge, k int, support []int32) (uint64, bool) {
	type candidate struct {
		x          int32
		minSupport int
	}
	var best *candidate

	for _, x := range support {
		f1 := cofactorVar(mgr, f, x, true)
		f0 := cofactorVar(mgr, f, x, false)
		s1 := len(mgr.Support(f1))
		s0 := len(mgr.Support(f0))
		if s1 > k-2 || s0 > k-2 {
			continue
		}
		small := s1
		if s0 < small {
			small = s0
		}
		if best == nil || small < best.minSupport || (small == best.minSupport && x < best.x) {
			best = &candidate{x: x, minSupport: small}
		}
	}
	if best == nil {
		return 0, false
	}

	x := best.x
	f1 := cofactorVar(mgr, f, x, true)
	f0 := cofactorVar(mgr, f, x, false)

	hiID := addLutNode(net, mgr, f1)
	loID := addLutNode(net, mgr, f0)

	muxID := net.AddNode(network.FuncHandle{Kind: network.FuncGate, Gate: "mux"})
	_ = net.AddFanin(muxID, ciFor(net, x), false)
	_ = net.AddFanin(muxID, hiID, false)
	_ = net.AddFanin(muxID, loID, false)
	return muxID, true
}
