// File: restrict.go
// Role: Restrict (spec §4.1), a cheaper-than-cofactor don't-care
// simplification: push f towards a smaller representative agreeing with f
// wherever c is 1, using the Coudert/Madre generalized-cofactor rule.
package dd

// Restrict computes a function g such that g == f wherever c == 1, choosing
// g to minimize node count rather than preserving f exactly where c == 0 (it
// is not a cofactor: the result may disagree with f off the care set).
func (m *Manager) Restrict(f, c Edge) Edge {
	memo := make(map[[2]Edge]Edge)
	return m.restrictRec(f, c, memo)
}

func (m *Manager) restrictRec(f, c Edge, memo map[[2]Edge]Edge) Edge {
	if c.IsOne() {
		return f
	}
	if c.IsZero() {
		// No care points left along this path; this implementation always
		// collapses to constant 1, whatever f is.
		return m.ReadOne()
	}
	if f.IsConst() {
		return f
	}

	key := [2]Edge{f, c}
	if v, ok := memo[key]; ok {
		return v
	}

	level := m.levelOf(f)
	if lv := m.levelOf(c); lv < level {
		level = lv
	}

	f0, f1 := m.cofactorAt(f, level, false), m.cofactorAt(f, level, true)
	c0, c1 := m.cofactorAt(c, level, false), m.cofactorAt(c, level, true)

	var res Edge
	switch {
	case c0.IsZero():
		res = m.restrictRec(f1, c1, memo)
	case c1.IsZero():
		res = m.restrictRec(f0, c0, memo)
	default:
		r0 := m.restrictRec(f0, c0, memo)
		r1 := m.restrictRec(f1, c1, memo)
		res = m.mk(level, r1, r0)
	}

	memo[key] = res
	return res
}
