package fx_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vlsitools/lsynth/dd"
	"github.com/vlsitools/lsynth/fx"
	"github.com/vlsitools/lsynth/gbb"
	"github.com/vlsitools/lsynth/network"
	"github.com/vlsitools/lsynth/sop"
)

type FxSuite struct {
	suite.Suite
	n   *network.Network
	mgr *dd.Manager
}

func (s *FxSuite) SetupTest() {
	s.n = network.NewNetwork(network.WithKind(network.KindLogicSOP))
	mgr, err := dd.NewManager(0)
	require.NoError(s.T(), err)
	s.mgr = mgr
}

func addSopNode(n *network.Network, fanins []uint64, cubes ...sop.Cube) uint64 {
	id := n.AddNode(network.FuncHandle{Kind: network.FuncSop, Sop: &sop.Cover{
		Cubes: cubes, Phase: true, NVars: len(fanins),
	}})
	for _, f := range fanins {
		_ = n.AddFanin(id, f, false)
	}
	return id
}

// Two single-cube nodes each cover the literal pair a&b; no cube pairing
// is possible (each node has only one row), so this exercises the
// single-cube divisor path: a&b coincides in two rows across two
// different nodes, weight = coincidence(2) - 2 = 0.
func (s *FxSuite) TestExtractFactorsSharedPair() {
	require := require.New(s.T())
	a := s.n.AddPI("a")
	b := s.n.AddPI("b")
	c := s.n.AddPI("c")
	d := s.n.AddPI("d")

	n1 := addSopNode(s.n, []uint64{a, b, c}, "111") // a & b & c
	n2 := addSopNode(s.n, []uint64{a, b, d}, "110") // a & b & !d
	po1, err := s.n.AddPO("y1", n1, false)
	require.NoError(err)
	po2, err := s.n.AddPO("y2", n2, false)
	require.NoError(err)

	before1, ok1 := gbb.Build(s.n, s.mgr, gbb.Params{})
	require.True(ok1)
	wantY1 := before1[po1]
	wantY2 := before1[po2]

	created, err := fx.Run(s.n, fx.Params{UseZero: true})
	require.NoError(err)
	require.Equal(1, created)
	require.NoError(s.n.Check())

	// Build again in a fresh manager: Run never touches PIs, so both
	// managers assign the same CI-to-variable-index order and mgr2.Transfer
	// can compare edges between them directly.
	mgr2, err := dd.NewManager(0)
	require.NoError(err)
	after, ok2 := gbb.Build(s.n, mgr2, gbb.Params{})
	require.True(ok2)

	gotY1 := mgr2.Transfer(after[po1], s.mgr)
	gotY2 := mgr2.Transfer(after[po2], s.mgr)
	require.Equal(wantY1, gotY1)
	require.Equal(wantY2, gotY2)
}

func (s *FxSuite) TestExtractNoSharedDivisorIsNoop() {
	require := require.New(s.T())
	a := s.n.AddPI("a")
	b := s.n.AddPI("b")
	addSopNode(s.n, []uint64{a, b}, "10")
	created, err := fx.Run(s.n, fx.Params{UseZero: true})
	require.NoError(err)
	require.Equal(0, created)
}

// f = a&b + a&c + a&d, g = e&b + e&c + e&d: the two nodes share no cube
// of their own, but each holds three cube pairs whose non-base literal
// structure (b vs c, b vs d, c vs d) is identical across both nodes.
// Run must recognize these as the same double-cube divisor regardless of
// which node's cube pair discovered it, and both f and g end up driven by
// a newly shared node instead of repeating b/c/d's OR structure twice.
func (s *FxSuite) TestExtractSharesDoubleDivisorAcrossNodes() {
	require := require.New(s.T())
	a := s.n.AddPI("a")
	b := s.n.AddPI("b")
	c := s.n.AddPI("c")
	d := s.n.AddPI("d")
	e := s.n.AddPI("e")
	original := map[uint64]bool{a: true, b: true, c: true, d: true, e: true}

	f := addSopNode(s.n, []uint64{a, b, c, d}, "11--", "1-1-", "1--1")
	g := addSopNode(s.n, []uint64{e, b, c, d}, "11--", "1-1-", "1--1")
	po1, err := s.n.AddPO("y1", f, false)
	require.NoError(err)
	po2, err := s.n.AddPO("y2", g, false)
	require.NoError(err)

	before, ok := gbb.Build(s.n, s.mgr, gbb.Params{})
	require.True(ok)
	wantY1 := before[po1]
	wantY2 := before[po2]

	created, err := fx.Run(s.n, fx.Params{UseZero: true})
	require.NoError(err)
	require.Greater(created, 0)
	require.NoError(s.n.Check())

	fObj, ok := s.n.Object(f)
	require.True(ok)
	gObj, ok := s.n.Object(g)
	require.True(ok)

	shared := false
	for _, ff := range fObj.Fanins {
		if original[ff.Src] {
			continue
		}
		for _, gf := range gObj.Fanins {
			if gf.Src == ff.Src {
				shared = true
			}
		}
	}
	require.True(shared, "f and g should end up driven by a common factored node")

	mgr2, err := dd.NewManager(0)
	require.NoError(err)
	after, ok := gbb.Build(s.n, mgr2, gbb.Params{})
	require.True(ok)

	require.Equal(wantY1, mgr2.Transfer(after[po1], s.mgr))
	require.Equal(wantY2, mgr2.Transfer(after[po2], s.mgr))
}

func (s *FxSuite) TestPruneBuffersRemovesTrivialBuffer() {
	require := require.New(s.T())
	a := s.n.AddPI("a")
	buf := addSopNode(s.n, []uint64{a}, "1") // trivial: function = a
	po, err := s.n.AddPO("y", buf, false)
	require.NoError(err)

	removed, err := fx.PruneBuffers(s.n)
	require.NoError(err)
	require.Equal(1, removed)

	_, ok := s.n.Object(buf)
	require.False(ok)

	poObj, ok := s.n.Object(po)
	require.True(ok)
	require.Equal(a, poObj.Fanins[0].Src)
	require.False(poObj.Fanins[0].Compl)
}

func (s *FxSuite) TestPruneBuffersInvertingBuffer() {
	require := require.New(s.T())
	a := s.n.AddPI("a")
	inv := addSopNode(s.n, []uint64{a}, "0") // trivial: function = !a
	po, err := s.n.AddPO("y", inv, false)
	require.NoError(err)

	removed, err := fx.PruneBuffers(s.n)
	require.NoError(err)
	require.Equal(1, removed)

	poObj, ok := s.n.Object(po)
	require.True(ok)
	require.Equal(a, poObj.Fanins[0].Src)
	require.True(poObj.Fanins[0].Compl)
}

func TestFxSuite(t *testing.T) {
	suite.Run(t, new(FxSuite))
}
