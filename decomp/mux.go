package decomp

import (
	"github.com/vlsitools/lsynth/dd"
	"github.com/vlsitools/lsynth/network"
	"github.com/vlsitools/lsynth/sop"
)

// BddToMux converts f into a tree of 3-input MUX network objects (select,
// then-data, else-data, matching gbb's own FuncGate "mux" fanin order),
// walking f bottom-up and sharing one MUX node per distinct *regular*
// (uncomplemented) DD node. A complemented edge is never rebuilt from
// scratch: it is realized as a single shared inverter wrapping its
// regular counterpart's MUX node, since mgr.Not is an O(1) complement-bit
// flip and the two edges denote the same node either way.
func BddToMux(net *network.Network, mgr *dd.Manager, f dd.Edge) uint64 {
	regular := make(map[dd.Edge]uint64)   // uncomplemented, non-constant edge -> its MUX node
	inverters := make(map[uint64]uint64)  // regular node id -> its shared inverter node id
	var constZero, constOne uint64
	var haveZero, haveOne bool

	var realize func(e dd.Edge) uint64
	realize = func(e dd.Edge) uint64 {
		switch {
		case e.IsZero():
			if !haveZero {
				constZero = net.AddNode(network.FuncHandle{Kind: network.FuncSop, Sop: &sop.Cover{Phase: true, NVars: 0}})
				haveZero = true
			}
			return constZero

		case e.IsOne():
			if !haveOne {
				constOne = net.AddNode(network.FuncHandle{Kind: network.FuncSop, Sop: &sop.Cover{Phase: false, NVars: 0}})
				haveOne = true
			}
			return constOne

		case e.Complemented():
			reg := realize(mgr.Not(e))
			if id, ok := inverters[reg]; ok {
				return id
			}
			id := net.AddNode(network.FuncHandle{Kind: network.FuncSop, Sop: &sop.Cover{
				Cubes: []sop.Cube{"0"}, Phase: true, NVars: 1,
			}})
			_ = net.AddFanin(id, reg, false)
			inverters[reg] = id
			return id

		default:
			if id, ok := regular[e]; ok {
				return id
			}
			v, _ := mgr.TopVar(e)
			lo := realize(mgr.Cofactor(e, v, false))
			hi := realize(mgr.Cofactor(e, v, true))
			sel := ciFor(net, v)

			id := net.AddNode(network.FuncHandle{Kind: network.FuncGate, Gate: "mux"})
			_ = net.AddFanin(id, sel, false)
			_ = net.AddFanin(id, hi, false)
			_ = net.AddFanin(id, lo, false)
			regular[e] = id
			return id
		}
	}

	return realize(f)
}

// ciFor maps a manager variable ID to the network CI it was allocated for,
// the same index-into-CIs convention gbb.Build establishes.
func ciFor(net *network.Network, v int32) uint64 {
	if int(v) < 0 || int(v) >= len(net.CIs) {
		return 0
	}
	return net.CIs[v]
}
