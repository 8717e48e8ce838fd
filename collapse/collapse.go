// File: collapse.go
// Role: The single Collapse orchestrator: gbb.Build, then don't-care
// bounding, per-output SOP extraction and node creation, then MinimumBase
// — one fixed stage order, grounded on builder.BuildGraph's orchestrator
// shape (resolve config, run stages in order, first error wins).
package collapse

import (
	"github.com/vlsitools/lsynth/dd"
	"github.com/vlsitools/lsynth/gbb"
	"github.com/vlsitools/lsynth/network"
	"github.com/vlsitools/lsynth/sop"
)

// Params configures one Collapse call.
type Params struct {
	// GBB configures the global-BDD construction stage.
	GBB gbb.Params

	// DontCares optionally bounds a per-output don't-care set, keyed by the
	// combinational output's object ID. Outputs absent from the map get no
	// don't-care (mgr.ReadZero()).
	DontCares map[uint64]dd.Edge

	// Phase selects which polarity sop.FromBDD extracts each output's cover
	// in. The zero value (sop.PhasePositive) extracts every output as-is.
	Phase sop.PhaseChoice

	// MaxCubes caps the cube count of any one output's extracted cover.
	// <=0 means unbounded.
	MaxCubes int
}

// Collapse rebuilds net as a flat two-level network: every primary output
// and latch-in becomes a single FuncSop node whose fanins are the
// network's PIs and latch outputs (latch pairing is preserved, so the
// result is still a valid sequential network, just combinationally flat).
// Returns (nil, false) if the global-BDD stage overruns its budget or any
// output's cover overruns MaxCubes.
//
// Complexity: O(gbb.Build's cost) plus, per output, O(Isop's cost) on that
// output's global BDD.
func Collapse(net *network.Network, mgr *dd.Manager, p Params) (*network.Network, bool) {
	if net == nil || mgr == nil {
		return nil, false
	}

	global, ok := gbb.Build(net, mgr, p.GBB)
	if !ok {
		return nil, false
	}

	out := network.NewNetwork(network.WithKind(network.KindLogicSOP), network.WithDDManager(mgr))

	cis, cos := net.MakeComb()
	srcOf := make(map[uint64]uint64, len(cis)) // old CI id -> new supplying object id
	latchInTarget := make(map[uint64]uint64)   // old LatchIn id -> new LatchIn id

	for _, id := range cis {
		obj, ok := net.Object(id)
		if !ok {
			continue
		}
		name, _ := net.Names.Name(id)
		switch obj.Kind {
		case network.ObjPI:
			srcOf[id] = out.AddPI(name)
		case network.ObjLatchOut:
			_, newIn, newOut := out.AddLatch(name)
			srcOf[id] = newOut
			if pairedIn := pairedLatchIn(net, obj.LatchPin); pairedIn != 0 {
				latchInTarget[pairedIn] = newIn
			}
		}
	}

	vars := make([]dd.Edge, len(cis))
	for i, id := range cis {
		vars[i] = global[id]
	}

	for _, co := range cos {
		f, ok := global[co]
		if !ok {
			return nil, false
		}
		dc, hasDC := p.DontCares[co]
		if !hasDC {
			dc = mgr.ReadZero()
		}

		cover, ok := sop.FromBDD(mgr, f, dc, vars, p.Phase, p.MaxCubes)
		if !ok {
			return nil, false
		}

		node := out.AddNode(network.FuncHandle{Kind: network.FuncSop, Sop: cover})
		for _, id := range cis {
			if err := out.AddFanin(node, srcOf[id], false); err != nil {
				return nil, false
			}
		}
		if err := out.MinimumBase(node); err != nil {
			return nil, false
		}

		coObj, ok := net.Object(co)
		if !ok {
			return nil, false
		}
		switch coObj.Kind {
		case network.ObjPO:
			name, _ := net.Names.Name(co)
			if _, err := out.AddPO(name, node, false); err != nil {
				return nil, false
			}
		case network.ObjLatchIn:
			target, ok := latchInTarget[co]
			if !ok {
				return nil, false
			}
			if err := out.AddFanin(target, node, false); err != nil {
				return nil, false
			}
		}
	}

	return out, true
}

// pairedLatchIn finds the LatchIn object sharing latchPin with a LatchOut,
// by scanning the network's CO catalog (latch pairing is modeled purely by
// the shared LatchPin tag rather than a structural edge, so there is no
// direct lookup).
func pairedLatchIn(net *network.Network, latchPin uint64) uint64 {
	_, cos := net.MakeComb()
	for _, id := range cos {
		obj, ok := net.Object(id)
		if ok && obj.Kind == network.ObjLatchIn && obj.LatchPin == latchPin {
			return id
		}
	}
	return 0
}
