// File: run.go
// Role: Run drives a whole Build/Extract/Dissolve pass against a live
// network.Network and applies the result back: new synthetic nodes via
// AddNode/AddFanin, rewritten existing nodes via ReplaceNode — never
// mutating an Object's Func/Fanins in place, since Object is a read-only
// snapshot contract.
package fx

import (
	"github.com/vlsitools/lsynth/network"
)

// Run collects every FuncSop node's current cover from net, factors
// shared structure out via Build/Extract/Dissolve, and applies the
// result back to net. Synthetic nodes are created in their Matrix
// creation order (so a synthetic node's own fanins, which may include an
// earlier synthetic node, already exist by the time it is wired), then
// every pre-existing node whose cover changed is rewritten in place.
// Returns the number of divisors extracted.
func Run(net *network.Network, p Params) (int, error) {
	var covers []NodeCover
	for _, id := range net.AllIDs() {
		obj, ok := net.Object(id)
		if !ok || obj.Kind != network.ObjNode || obj.Func.Kind != network.FuncSop {
			continue
		}
		covers = append(covers, NodeCover{Node: id, Fanins: obj.Fanins, Cover: obj.Func.Sop})
	}

	m, err := Build(covers, p)
	if err != nil {
		return 0, err
	}
	extracted := Extract(m, p)
	result := Dissolve(m)

	synthMap := make(map[uint64]uint64)
	const synBit = uint64(1) << 63

	for _, ne := range m.nodes {
		if ne.id&synBit == 0 {
			continue
		}
		cover, ok := result[ne.id]
		if !ok {
			continue
		}
		fanins := translateFanins(m, ne.rows, synthMap)
		newID := net.AddNode(network.FuncHandle{Kind: network.FuncSop, Sop: cover})
		for _, fe := range fanins {
			if err := net.AddFanin(newID, fe.Src, fe.Compl); err != nil {
				return extracted, err
			}
		}
		synthMap[ne.id] = newID
	}

	for _, ne := range m.nodes {
		if ne.id&synBit != 0 {
			continue
		}
		cover, ok := result[ne.id]
		if !ok {
			continue
		}
		fanins := translateFanins(m, ne.rows, synthMap)
		if err := net.ReplaceNode(ne.id, network.FuncHandle{Kind: network.FuncSop, Sop: cover}, fanins); err != nil {
			return extracted, err
		}
	}

	return extracted, nil
}

// translateFanins returns rows' column sources (in the same ascending
// order Dissolve used to build their cube positions), substituting each
// synthetic source already materialized in synthMap for its real network
// ID. FuncSop fanins always carry Compl: false; literal polarity lives in
// the cube character, not the fanin edge (collapse's established
// convention, shared by every FuncSop node in this network).
func translateFanins(m *Matrix, rows []int32, synthMap map[uint64]uint64) []network.FaninEdge {
	srcs := nodeColumnSources(m, rows)
	out := make([]network.FaninEdge, len(srcs))
	for i, s := range srcs {
		real := s
		if r, ok := synthMap[s]; ok {
			real = r
		}
		out[i] = network.FaninEdge{Src: real, Compl: false}
	}
	return out
}
