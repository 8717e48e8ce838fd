package cascade_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vlsitools/lsynth/cascade"
	"github.com/vlsitools/lsynth/network"
)

type CascadeSuite struct {
	suite.Suite
}

// evalSynthesized evaluates a synthesized cascade's final output as a
// function of the original input variables, by simulating each LUT in
// order and feeding every wire ID (original variable or rail/LUT output)
// through a single shared value map.
func evalSynthesized(cas *cascade.Cascade, assignment map[int]bool) bool {
	vals := make(map[int]bool, len(assignment))
	for k, v := range assignment {
		vals[k] = v
	}
	var last bool
	for _, lut := range cas.Luts {
		idx := 0
		for i, f := range lut.Fanins {
			if vals[f] {
				idx |= 1 << uint(i)
			}
		}
		v := lut.Table.Bit(idx)
		vals[lut.Out] = v
		last = v
	}
	return last
}

func (s *CascadeSuite) TestSynthesizeAutoModeMajority3() {
	require := require.New(s.T())
	// Majority of 3 variables, k=2 forces at least one intermediate stage.
	tt := cascade.NewTruthTable([]int{0, 1, 2})
	for idx := 0; idx < 8; idx++ {
		bits := 0
		if idx&1 != 0 {
			bits++
		}
		if idx&2 != 0 {
			bits++
		}
		if idx&4 != 0 {
			bits++
		}
		tt.SetBit(idx, bits >= 2)
	}

	cas, ok := cascade.Synthesize(tt, 2, 2, "")
	require.True(ok)
	require.NotEmpty(cas.Luts)

	for idx := 0; idx < 8; idx++ {
		assignment := map[int]bool{0: idx&1 != 0, 1: idx&2 != 0, 2: idx&4 != 0}
		want := tt.Bit(idx)
		got := evalSynthesized(cas, assignment)
		require.Equal(want, got, "mismatch at idx %d", idx)
	}
}

func (s *CascadeSuite) TestSynthesizeDirectFitSingleLut() {
	require := require.New(s.T())
	tt := cascade.NewTruthTable([]int{0, 1})
	tt.SetBit(0b01, true) // a & !b
	cas, ok := cascade.Synthesize(tt, 2, 1, "")
	require.True(ok)
	require.Len(cas.Luts, 1)
	require.Equal([]int{0, 1}, cas.Luts[0].Fanins)
}

func (s *CascadeSuite) TestSynthesizeInsufficientRailsFails() {
	require := require.New(s.T())
	// f = x2 & (x3 == x0): every 2-variable bound set gives at least 2
	// distinct columns, so no stage can be carried over zero rails
	// (mu<=1).
	tt := cascade.NewTruthTable([]int{0, 1, 2, 3})
	for idx := 0; idx < 16; idx++ {
		tt.SetBit(idx, (idx>>2)&1 == 1 && (idx>>3)&1 == (idx>>0)&1)
	}
	_, ok := cascade.Synthesize(tt, 2, 0, "")
	require.False(ok)
}

func (s *CascadeSuite) TestParseGuideStagesAndShared() {
	require := require.New(s.T())
	stages, err := cascade.ParseGuide("0ab1Bc")
	require.NoError(err)
	require.Len(stages, 2)
	require.ElementsMatch([]int{0, 1}, stages[0].Bound)
	require.Empty(stages[0].Shared)
	require.ElementsMatch([]int{1, 2}, stages[1].Bound)
	require.Equal([]int{1}, stages[1].Shared)
}

func (s *CascadeSuite) TestParseGuideRejectsOutOfOrderStage() {
	require := require.New(s.T())
	_, err := cascade.ParseGuide("1ab")
	require.ErrorIs(err, cascade.ErrBadGuide)
}

func (s *CascadeSuite) TestOptimizeStructuralImprovesOverBaseline() {
	require := require.New(s.T())
	n := network.NewNetwork(network.WithKind(network.KindLogicMapped))

	a := n.AddPI("a")
	b := n.AddPI("b")
	c := n.AddPI("c")

	n1 := n.AddNode(network.FuncHandle{Kind: network.FuncGate, Gate: "lut"})
	require.NoError(n.AddFanin(n1, a, false))
	require.NoError(n.AddFanin(n1, b, false))

	n2 := n.AddNode(network.FuncHandle{Kind: network.FuncGate, Gate: "lut"})
	require.NoError(n.AddFanin(n2, n1, false))
	require.NoError(n.AddFanin(n2, c, false))

	_, err := n.AddPO("y", n2, false)
	require.NoError(err)

	delay := cascade.DelayModel{Lut: 1, Route: 1, Direct: 0}
	res := cascade.OptimizeStructural(n, delay, cascade.StructuralParams{NIters: 20, Seed: 7})
	require.NotNil(res)
	require.Less(res.Delay, res.StartDelay)
}

func TestCascadeSuite(t *testing.T) {
	suite.Run(t, new(CascadeSuite))
}
