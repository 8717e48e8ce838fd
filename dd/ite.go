// File: ite.go
// Role: Recursive Boolean connectives (Ite/And/Or/Xor/Not) with the
// computed-table cache and budget-aware abort. Not is O(1): it only flips
// the complement tag on the edge and never touches the cache or slab.
package dd

// noBudget is the zero Budget, meaning unlimited.
var noBudget = Budget{}

// Not flips the complement bit in O(1). This is the one operation spec
// §4.1 calls out as not requiring recursion.
func (m *Manager) Not(f Edge) Edge {
	return Edge{idx: f.idx, compl: !f.compl}
}

// And computes f ∧ g with no budget.
func (m *Manager) And(f, g Edge) Edge {
	res, _ := m.iteRec(f, g, m.ReadZero(), noBudget)
	return res
}

// AndLimit computes f ∧ g, aborting if the manager's live node count would
// exceed budget.MaxNodes or the deadline passes. ok is false on abort; the
// cache and unique table remain consistent either way.
func (m *Manager) AndLimit(f, g Edge, budget Budget) (Edge, bool) {
	return m.iteRec(f, g, m.ReadZero(), budget)
}

// Or computes f ∨ g.
func (m *Manager) Or(f, g Edge) Edge {
	res, _ := m.iteRec(f, m.ReadOne(), g, noBudget)
	return res
}

// Xor computes f ⊕ g.
func (m *Manager) Xor(f, g Edge) Edge {
	res, _ := m.iteRec(f, m.Not(g), g, noBudget)
	return res
}

// Ite computes if f then g else h, with no budget.
func (m *Manager) Ite(f, g, h Edge) Edge {
	res, _ := m.iteRec(f, g, h, noBudget)
	return res
}

// IteLimit is the budgeted counterpart of Ite.
func (m *Manager) IteLimit(f, g, h Edge, budget Budget) (Edge, bool) {
	return m.iteRec(f, g, h, budget)
}

func (m *Manager) levelOf(e Edge) int32 {
	return m.nodes[e.idx].level
}

// cofactorAt returns e's cofactor with respect to the variable at level,
// or e unchanged if e's own top level differs from level (a reduced BDD
// node can never depend on a variable above its own top level, so this is
// always correct when level is the minimum level among the operands of
// the current recursive step).
func (m *Manager) cofactorAt(e Edge, level int32, branch bool) Edge {
	if e.idx == oneIdx {
		return e
	}
	n := m.nodes[e.idx]
	if n.level != level {
		return e
	}
	var res Edge
	if branch {
		res = n.then_
	} else {
		res = n.else_
	}
	if e.compl {
		res = Edge{idx: res.idx, compl: !res.compl}
	}
	return res
}

// iteRec is the classic recursive ITE algorithm: normalize to increase
// cache hits, handle terminal cases, otherwise split on the topmost
// variable among the three operands and recombine via mk.
func (m *Manager) iteRec(f, g, h Edge, budget Budget) (Edge, bool) {
	// Terminal cases (spec §4.1 "recursion pattern: ... if terminal base
	// case, return").
	if f.IsOne() {
		return g, true
	}
	if f.IsZero() {
		return h, true
	}
	if g == h {
		return g, true
	}
	if g.IsOne() && h.IsZero() {
		return f, true
	}
	if g.IsZero() && h.IsOne() {
		return m.Not(f), true
	}

	// Canonicalize: ite(f,g,h) == ite(!f,h,g); normalizing on f.compl
	// halves the number of distinct cache keys for complemented f.
	if f.compl {
		f, g, h = m.Not(f), h, g
	}

	key := cacheKey{op: opIte, a: f, b: g, c: h}
	if v, ok := m.cache[key]; ok {
		m.cacheHits++
		return v, true
	}
	m.cacheMiss++

	if !budget.unbounded() && budget.exceeded(m.liveCnt) {
		return Null, false
	}

	level := m.levelOf(f)
	if lv := m.levelOf(g); !g.IsConst() && lv < level {
		level = lv
	}
	if lv := m.levelOf(h); !h.IsConst() && lv < level {
		level = lv
	}

	f0, f1 := m.cofactorAt(f, level, false), m.cofactorAt(f, level, true)
	g0, g1 := m.cofactorAt(g, level, false), m.cofactorAt(g, level, true)
	h0, h1 := m.cofactorAt(h, level, false), m.cofactorAt(h, level, true)

	t, ok := m.iteRec(f1, g1, h1, budget)
	if !ok {
		return Null, false
	}
	e, ok := m.iteRec(f0, g0, h0, budget)
	if !ok {
		return Null, false
	}

	res := m.mk(level, t, e)
	m.maybeEvictCache()
	m.cache[key] = res

	return res, true
}

// maybeEvictCache clears the computed-table cache once it grows past
// cacheMax, matching spec §4.1's "bounded associative store ... evicted
// when pressure rises". A full clear (rather than LRU) keeps the manager
// free of per-entry bookkeeping; correctness never depends on cache
// contents, only performance does.
func (m *Manager) maybeEvictCache() {
	if len(m.cache) < m.cacheMax {
		return
	}
	m.cache = make(map[cacheKey]Edge, m.cacheMax/2)
}
