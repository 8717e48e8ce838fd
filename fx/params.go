// File: params.go
// Role: Extract/Build configuration and the per-node input record consumed
// by Matrix.Build, grounded on the teacher's functional-options-adjacent
// Params-struct convention (flow.FlowOptions, gridgraph.GridOptions).
package fx

import (
	"errors"

	"github.com/vlsitools/lsynth/network"
	"github.com/vlsitools/lsynth/sop"
)

// ErrDistanceViolation indicates Matrix.Build found two cubes of the same
// node at literal-difference 0 (duplicate cubes) or 1 (one cube a strict
// single-literal specialization of the other); both are malformed input
// for cube-pair enumeration and abort construction without touching the
// network.
var ErrDistanceViolation = errors.New("fx: cube pair at distance 0 or 1")

// Params configures one Matrix.Build + Extract pass.
type Params struct {
	// OnlySingle restricts extraction to single-cube (2-literal) divisors.
	OnlySingle bool
	// OnlyDouble restricts extraction to double-cube divisors. Mutually
	// exclusive with OnlySingle in intent; if both are set, OnlySingle wins.
	OnlyDouble bool

	// UseZero accepts a weight-0 divisor as the terminating candidate
	// instead of stopping before it, provided WeightMin is also 0.
	UseZero bool
	// UseComplement enables the single+double complement-pair optimization:
	// a double-cube divisor whose two sides are each a single literal may
	// be bundled with the single-cube divisor over the same two variables'
	// opposite polarities, for a larger combined saving in one extraction.
	UseComplement bool

	// NodesExt caps how many divisors Extract factors out. <=0 means run
	// until no candidate clears WeightMin.
	NodesExt int

	// SingleMax, PairsMax ceiling the number of candidate single-cube
	// divisors and cube pairs Build will enumerate. <=0 means unlimited.
	SingleMax int
	PairsMax  int

	// WeightMin is the minimum weight Extract will accept; a candidate
	// with weight <= WeightMin stops the loop unless WeightMin == 0 and
	// UseZero is set, in which case weight == 0 is still accepted.
	WeightMin int
	// LitCountMax discards candidate divisors whose combined literal count
	// (across both sides, for doubles; always 2 for singles) would exceed
	// it. <=0 means unlimited.
	LitCountMax int

	// CanonDivs restricts acceptance to AND (single-cube), OR and XOR
	// (one-literal-per-side double-cube) canonical shapes, rejecting any
	// double-cube divisor whose sides carry more than one literal.
	CanonDivs bool
}

func (p Params) normalize() Params {
	if p.NodesExt < 0 {
		p.NodesExt = 0
	}
	return p
}

// NodeCover is one FuncSop node's current state, as Matrix.Build consumes
// it: the network object ID the cover belongs to (for Dissolve's result
// map and for locating this node's original fanins), its fanins in cover
// column order, and the cover itself.
type NodeCover struct {
	Node   uint64
	Fanins []network.FaninEdge
	Cover  *sop.Cover
}
