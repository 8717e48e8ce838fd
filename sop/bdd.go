// File: bdd.go
// Role: The two conversions tying cover algebra to the BDD package:
// ToBDD (cover -> function) and FromBDD (function -> irredundant cover).
package sop

import "github.com/vlsitools/lsynth/dd"

// ToBDD builds the BDD for c, using vars[i] as the positive literal of c's
// i-th column.
func ToBDD(mgr *dd.Manager, c *Cover, vars []dd.Edge) dd.Edge {
	res := mgr.ReadZero()
	for _, cube := range c.Cubes {
		term := mgr.ReadOne()
		for i := 0; i < len(cube); i++ {
			switch cube[i] {
			case litPos:
				term = mgr.And(term, vars[i])
			case litNeg:
				term = mgr.And(term, mgr.Not(vars[i]))
			}
		}
		res = mgr.Or(res, term)
	}
	if !c.Phase {
		res = mgr.Not(res)
	}
	return res
}

// FromBDD extracts an irredundant cover of f within the don't-care window
// [f∧¬dc, f∨dc], in the phase phase requests. vars fixes the cover's column
// order; each vars[i] must be a single-variable projection edge (as
// returned by Manager.IthVar). Returns (nil, false) if the resulting cube
// count would exceed maxCubes (maxCubes<=0 means unbounded).
func FromBDD(mgr *dd.Manager, f, dc dd.Edge, vars []dd.Edge, phase PhaseChoice, maxCubes int) (*Cover, bool) {
	varIDs := make([]int32, len(vars))
	for i, v := range vars {
		varIDs[i] = mgr.Support(v)[0]
	}

	extract := func(target dd.Edge, tagPhase bool) (*Cover, bool) {
		lower := mgr.And(target, mgr.Not(dc))
		upper := mgr.Or(target, dc)
		cubes, _ := mgr.Isop(lower, upper)
		if maxCubes > 0 && len(cubes) > maxCubes {
			return nil, false
		}
		return &Cover{Cubes: convertCubes(cubes, varIDs), Phase: tagPhase, NVars: len(vars)}, true
	}

	switch phase {
	case PhasePositive:
		return extract(f, true)
	case PhaseNegative:
		return extract(mgr.Not(f), false)
	case PhaseMinimum:
		pos, okP := extract(f, true)
		neg, okN := extract(mgr.Not(f), false)
		switch {
		case okP && okN:
			if len(neg.Cubes) < len(pos.Cubes) {
				return neg, true
			}
			return pos, true
		case okP:
			return pos, true
		case okN:
			return neg, true
		default:
			return nil, false
		}
	default:
		return nil, false
	}
}

func convertCubes(cubes []dd.Cube, varIDs []int32) []Cube {
	out := make([]Cube, len(cubes))
	for i, ddc := range cubes {
		b := make([]byte, len(varIDs))
		for j, v := range varIDs {
			switch ddc[v] {
			case dd.CubeNeg:
				b[j] = litNeg
			case dd.CubePos:
				b[j] = litPos
			default:
				b[j] = litDash
			}
		}
		out[i] = Cube(b)
	}
	return out
}
