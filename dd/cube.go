// File: cube.go
// Role: Cube construction/decoding and the existential-abstraction family
// (ExistAbstract, AndAbstract), plus single- and multi-variable Cofactor.
//
// A "cube" edge in this package is always the conjunction, in ascending
// level order, of positive variable projections — i.e. built only via
// Cube. That restriction keeps cube decoding a simple chain walk (every
// internal node's else branch is the constant 0) and matches every
// caller's actual use in this module (quantifying out a variable set, not
// an arbitrary signed literal product).
package dd

// Cube builds the conjunction of the positive projections of vars (level
// order does not matter; the result is canonical regardless of input
// order because mk interns on level).
func (m *Manager) Cube(vars []int32) Edge {
	res := m.ReadOne()
	for _, v := range vars {
		res = m.And(res, m.varNode[v])
	}
	return res
}

// CubeVars decodes a cube built by Cube back into its variable-id set.
func (m *Manager) CubeVars(cube Edge) []int32 {
	var out []int32
	e := cube
	for e.idx != oneIdx {
		n := m.nodes[e.idx]
		out = append(out, m.levelToVar[n.level])
		e = n.then_
	}
	return out
}

// quantSetFromCube builds a level->bool membership set for fast lookup
// during existential abstraction.
func (m *Manager) quantSetFromCube(cube Edge) map[int32]bool {
	set := make(map[int32]bool)
	e := cube
	for e.idx != oneIdx {
		n := m.nodes[e.idx]
		set[n.level] = true
		e = n.then_
	}
	return set
}

// ExistAbstract computes ∃ vars(cube). f.
func (m *Manager) ExistAbstract(f, cube Edge) Edge {
	quant := m.quantSetFromCube(cube)
	memo := make(map[Edge]Edge)
	return m.existRec(f, quant, memo)
}

func (m *Manager) existRec(f Edge, quant map[int32]bool, memo map[Edge]Edge) Edge {
	if f.idx == oneIdx {
		return f
	}
	if v, ok := memo[f]; ok {
		return v
	}

	n := m.nodes[f.idx]
	lo := m.cofactorAt(f, n.level, false)
	hi := m.cofactorAt(f, n.level, true)
	loR := m.existRec(lo, quant, memo)
	hiR := m.existRec(hi, quant, memo)

	var res Edge
	if quant[n.level] {
		res = m.Or(loR, hiR)
	} else {
		res = m.mk(n.level, hiR, loR)
	}
	memo[f] = res

	return res
}

// AndAbstract computes ∃ vars(cube). f ∧ g (spec §4.1). It is implemented
// as And followed by ExistAbstract rather than a single fused recursion;
// this preserves the contract at the cost of the fusion's performance
// benefit, which is immaterial to correctness and out of scope for a
// from-scratch kernel of this size.
func (m *Manager) AndAbstract(f, g, cube Edge) Edge {
	return m.ExistAbstract(m.And(f, g), cube)
}

// Cofactor returns f restricted by var==value.
func (m *Manager) Cofactor(f Edge, varID int32, value bool) Edge {
	level := m.varToLevel[varID]
	memo := make(map[Edge]Edge)
	var rec func(Edge) Edge
	rec = func(e Edge) Edge {
		if e.idx == oneIdx || m.nodes[e.idx].level >= level {
			return m.cofactorAt(e, level, value)
		}
		if r, ok := memo[e]; ok {
			return r
		}
		lv := m.nodes[e.idx].level
		memo[e] = m.mk(lv, rec(m.cofactorAt(e, lv, true)), rec(m.cofactorAt(e, lv, false)))
		return memo[e]
	}
	return rec(f)
}

// CofactorCube returns f restricted by every positive literal in cube
// (built via Cube) fixed to 1.
func (m *Manager) CofactorCube(f, cube Edge) Edge {
	res := f
	for _, v := range m.CubeVars(cube) {
		res = m.Cofactor(res, v, true)
	}
	return res
}
