// Package sop implements tri-valued sum-of-products cover algebra: cubes
// over the alphabet {0,1,-}, covers interned in an Arena, and the two
// conversions that tie this algebra to the BDD package (ToBDD/FromBDD).
//
// A Cube is a literal string, one character per variable, in variable-ID
// order: '0' means the variable appears negated, '1' means it appears
// uncomplemented, '-' means the cube does not depend on it. A Cover is an
// OR of Cubes under one Phase (the function this cover represents is the
// OR of its cubes if Phase is true, the OR of their complements' product
// if Phase is false — see Phase's doc comment for the exact contract).
//
// Covers are registered into an Arena keyed by their exact cube-sequence
// and phase, so two covers with identical content (even built through
// different call paths) collapse to the same *Cover pointer — the same
// interning discipline the network package applies to objects, generalized
// from interning-by-ID to interning-by-content.
package sop
