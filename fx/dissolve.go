// File: dissolve.go
// Role: Re-materializing sop.Covers from a Matrix's live rows (the spec's
// Dissolve step), and pruning FuncSop nodes that degenerate into a single
// literal — common fallout once Extract has factored a cover's other
// literals away.
package fx

import (
	"sort"

	"github.com/vlsitools/lsynth/network"
	"github.com/vlsitools/lsynth/sop"
)

// Dissolve reads back every node still present in m (real nodes whose
// cover was rewritten, and every synthetic node Extract created),
// producing one sop.Cover per node keyed by its network object ID. A
// node's fanin order is its own: the sources referenced by its current
// rows, ascending by source ID, independent of Matrix's global column
// numbering. A node with no live rows left (every one of its cubes was
// consumed by a double-cube extraction into some other node) is omitted.
func Dissolve(m *Matrix) map[uint64]*sop.Cover {
	out := make(map[uint64]*sop.Cover, len(m.nodes))
	for _, ne := range m.nodes {
		if len(ne.rows) == 0 {
			continue
		}

		srcs := nodeColumnSources(m, ne.rows)
		pos := make(map[uint64]int, len(srcs))
		for i, s := range srcs {
			pos[s] = i
		}

		cubes := make([]sop.Cube, 0, len(ne.rows))
		for _, row := range ne.rows {
			buf := make([]byte, len(srcs))
			for i := range buf {
				buf[i] = '-'
			}
			for _, col := range m.cubeLits(row) {
				src, neg := m.vars[col].key.decode()
				if neg {
					buf[pos[src]] = '0'
				} else {
					buf[pos[src]] = '1'
				}
			}
			cubes = append(cubes, sop.Cube(buf))
		}

		out[ne.id] = &sop.Cover{Cubes: cubes, Phase: ne.phase, NVars: len(srcs)}
	}
	return out
}

// nodeColumnSources returns the distinct literal sources referenced by
// rows, ascending by raw source ID. Dissolve uses this order to assign
// each source a cube column; Run (run.go) reuses the identical order
// to build the matching fanin list, so a cube's i'th character and a
// node's i'th fanin always agree on which source they mean.
func nodeColumnSources(m *Matrix, rows []int32) []uint64 {
	srcSet := make(map[uint64]bool)
	for _, row := range rows {
		for _, col := range m.cubeLits(row) {
			src, _ := m.vars[col].key.decode()
			srcSet[src] = true
		}
	}
	srcs := make([]uint64, 0, len(srcSet))
	for s := range srcSet {
		srcs = append(srcs, s)
	}
	sort.Slice(srcs, func(i, j int) bool { return srcs[i] < srcs[j] })
	return srcs
}

// PruneBuffers removes every FuncSop node whose cover is exactly one cube
// with exactly one non-dash literal, rewiring each of its consumers to
// read that literal's own source directly (composing polarity so the
// consumer's function is unchanged), and returns how many nodes were
// removed. Typical fallout of Dissolve handing back a degenerate cover
// for a node Extract stripped down to a single surviving literal.
//
// Complexity: O(V+E) over the network's current object/fanin count.
func PruneBuffers(net *network.Network) (int, error) {
	removed := 0
	for _, id := range net.AllIDs() {
		obj, ok := net.Object(id)
		if !ok || obj.Kind != network.ObjNode || obj.Func.Kind != network.FuncSop {
			continue
		}
		src, compl, ok := trivialLiteral(obj)
		if !ok {
			continue
		}

		for fo := range obj.Fanouts {
			foObj, ok := net.Object(fo)
			if !ok {
				continue
			}
			for idx, fe := range foObj.Fanins {
				if fe.Src != id {
					continue
				}
				if err := net.SetFanin(fo, idx, src, fe.Compl != compl); err != nil {
					return removed, err
				}
			}
		}

		if err := net.DeleteObj(id, false); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// trivialLiteral reports whether obj's cover computes a single literal of
// one of its fanins outright, and if so which source and what polarity
// (compl=true meaning the fanin must be inverted to match obj's function).
func trivialLiteral(obj *network.Object) (src uint64, compl bool, ok bool) {
	cov := obj.Func.Sop
	if cov == nil || len(cov.Cubes) != 1 {
		return 0, false, false
	}
	cube := cov.Cubes[0]
	pos, neg := -1, false
	for i := 0; i < len(cube); i++ {
		switch cube[i] {
		case '1', '0':
			if pos != -1 {
				return 0, false, false // more than one literal: not trivial
			}
			pos = i
			neg = cube[i] == '0'
		}
	}
	if pos == -1 || pos >= len(obj.Fanins) {
		return 0, false, false
	}
	// node function = literal(pos) under cov.Phase; invert once more if
	// Phase is false (cover represents the complement of the OR of cubes).
	effective := neg != !cov.Phase
	return obj.Fanins[pos].Src, effective, true
}
