// File: cover.go
// Role: Cover algebra — VarCount/CubeCount/Phase accessors, EXOR-type
// detection, CreateAnd/CreateOr, MinimumBase.
package sop

import "errors"

// ErrPhaseMismatch indicates CreateOr was asked to combine covers of
// different Phase without an explicit resolution.
var ErrPhaseMismatch = errors.New("sop: cannot OR covers of differing phase")

// VarCount returns the cover's variable width.
func (c *Cover) VarCount() int { return c.NVars }

// CubeCount returns the number of cubes in the cover.
func (c *Cover) CubeCount() int { return len(c.Cubes) }

// IsConst0 reports whether c represents the constant-0 function: an empty
// positive-phase cover, or a single all-dash cube under negative phase.
func (c *Cover) IsConst0() bool {
	if c.Phase {
		return len(c.Cubes) == 0
	}
	return len(c.Cubes) == 1 && isAllDash(c.Cubes[0])
}

// IsConst1 reports whether c represents the constant-1 function.
func (c *Cover) IsConst1() bool {
	if !c.Phase {
		return len(c.Cubes) == 0
	}
	return len(c.Cubes) == 1 && isAllDash(c.Cubes[0])
}

func isAllDash(cube Cube) bool {
	for i := 0; i < len(cube); i++ {
		if cube[i] != litDash {
			return false
		}
	}
	return true
}

// IsExorType reports whether c looks like a 2-cube EXOR/EXNOR cover: exactly
// two cubes, both free of dashes, that are bitwise complements of one
// another. This is a cheap syntactic check (not a full BDD-based equivalence
// test) used by the fast-extract engine to special-case XOR-like divisors.
func (c *Cover) IsExorType() bool {
	if len(c.Cubes) != 2 {
		return false
	}
	a, b := c.Cubes[0], c.Cubes[1]
	if len(a) != len(b) || len(a) != c.NVars {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] == litDash || b[i] == litDash {
			return false
		}
		if a[i] == b[i] {
			return false
		}
	}
	return true
}

// CreateAnd returns the cross-product cube-wise AND of a and b: every pair
// of cubes is merged literal-by-literal, dropping pairs whose literals
// conflict on some variable. Both covers must share Phase=true (positive
// form) and NVars; the result is positive-phase.
func CreateAnd(a, b *Cover) (*Cover, error) {
	if a.NVars != b.NVars {
		return nil, ErrVarCountMismatch
	}
	out := &Cover{NVars: a.NVars, Phase: true}
	for _, ca := range a.Cubes {
		for _, cb := range b.Cubes {
			merged, ok := mergeCube(ca, cb)
			if ok {
				out.Cubes = append(out.Cubes, merged)
			}
		}
	}
	return out, nil
}

// CreateOr returns the disjunction of a and b (cube-list concatenation).
// Both covers must already share Phase.
func CreateOr(a, b *Cover) (*Cover, error) {
	if a.NVars != b.NVars {
		return nil, ErrVarCountMismatch
	}
	if a.Phase != b.Phase {
		return nil, ErrPhaseMismatch
	}
	out := &Cover{NVars: a.NVars, Phase: a.Phase}
	out.Cubes = append(out.Cubes, a.Cubes...)
	out.Cubes = append(out.Cubes, b.Cubes...)
	return out, nil
}

func mergeCube(a, b Cube) (Cube, bool) {
	n := len(a)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		switch {
		case a[i] == litDash:
			out[i] = b[i]
		case b[i] == litDash:
			out[i] = a[i]
		case a[i] == b[i]:
			out[i] = a[i]
		default:
			return "", false
		}
	}
	return Cube(out), true
}

// MinimumBase drops every variable no cube in c actually constrains
// (every cube carries a dash there), returning the compacted cover and the
// kept variable IDs in their original (ascending) order.
func (c *Cover) MinimumBase() (*Cover, []int32) {
	used := make([]bool, c.NVars)
	for _, cube := range c.Cubes {
		for i := 0; i < c.NVars; i++ {
			if cube[i] != litDash {
				used[i] = true
			}
		}
	}

	var keep []int32
	for i, u := range used {
		if u {
			keep = append(keep, int32(i))
		}
	}
	if len(keep) == c.NVars {
		return c, keep
	}

	newCubes := make([]Cube, len(c.Cubes))
	for ci, cube := range c.Cubes {
		b := make([]byte, len(keep))
		for j, v := range keep {
			b[j] = cube[v]
		}
		newCubes[ci] = Cube(b)
	}
	return &Cover{Cubes: newCubes, Phase: c.Phase, NVars: len(keep)}, keep
}
