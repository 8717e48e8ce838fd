package gbb_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vlsitools/lsynth/dd"
	"github.com/vlsitools/lsynth/gbb"
	"github.com/vlsitools/lsynth/network"
)

type GbbSuite struct {
	suite.Suite
	n   *network.Network
	mgr *dd.Manager
}

func (s *GbbSuite) SetupTest() {
	s.n = network.NewNetwork(network.WithKind(network.KindAIG))
	mgr, err := dd.NewManager(0)
	require.NoError(s.T(), err)
	s.mgr = mgr
}

// y = a & b, reconstructed as a global BDD, must agree with a direct
// mgr.And of the two CI variables Build assigned.
func (s *GbbSuite) TestBuildSimpleAnd() {
	require := require.New(s.T())
	a := s.n.AddPI("a")
	b := s.n.AddPI("b")
	and, err := s.n.AddAigAnd(a, false, b, false)
	require.NoError(err)
	po, err := s.n.AddPO("y", and, false)
	require.NoError(err)

	out, ok := gbb.Build(s.n, s.mgr, gbb.Params{})
	require.True(ok)

	aEdge, ok := out[a]
	require.True(ok)
	bEdge, ok := out[b]
	require.True(ok)
	poEdge, ok := out[po]
	require.True(ok)

	want := s.mgr.And(aEdge, bEdge)
	require.Equal(want, poEdge)
}

// y = !(a & !a) reduces to the constant 1 regardless of variable order.
func (s *GbbSuite) TestBuildComplementedFanin() {
	require := require.New(s.T())
	a := s.n.AddPI("a")
	and, err := s.n.AddAigAnd(a, false, a, true)
	require.NoError(err)
	po, err := s.n.AddPO("y", and, true)
	require.NoError(err)

	out, ok := gbb.Build(s.n, s.mgr, gbb.Params{})
	require.True(ok)
	require.True(out[po].IsOne())
}

func (s *GbbSuite) TestBuildRespectsReversedOrder() {
	require := require.New(s.T())
	a := s.n.AddPI("a")
	b := s.n.AddPI("b")
	_, err := s.n.AddAigAnd(a, false, b, false)
	require.NoError(err)

	out, ok := gbb.Build(s.n, s.mgr, gbb.Params{Reversed: true})
	require.True(ok)
	// Reversed assigns b's variable before a's, so b must land at a shallower level.
	require.Less(s.mgr.Support(out[b])[0], s.mgr.Support(out[a])[0])
}

func (s *GbbSuite) TestBuildAbortsOnBudget() {
	require := require.New(s.T())
	a := s.n.AddPI("a")
	b := s.n.AddPI("b")
	c := s.n.AddPI("c")
	n1, err := s.n.AddAigAnd(a, false, b, false)
	require.NoError(err)
	n2, err := s.n.AddAigAnd(n1, false, c, false)
	require.NoError(err)
	_, err = s.n.AddPO("y", n2, false)
	require.NoError(err)

	sizeBefore := s.mgr.Size()
	out, ok := gbb.Build(s.n, s.mgr, gbb.Params{NodeBudget: 1})
	require.False(ok)
	require.Nil(out)
	// Build allocates one permanent manager variable per CI (a, b, c) even
	// on abort, the same way a manager's variable alphabet is never
	// reclaimed; every computed node, though, must be gone.
	s.mgr.CollectGarbage()
	require.Equal(sizeBefore+3, s.mgr.Size())
}

func (s *GbbSuite) TestBuildMuxGate() {
	require := require.New(s.T())
	sel := s.n.AddPI("sel")
	d1 := s.n.AddPI("d1")
	d0 := s.n.AddPI("d0")
	mux := s.n.AddNode(network.FuncHandle{Kind: network.FuncGate, Gate: "mux"})
	require.NoError(s.n.AddFanin(mux, sel, false))
	require.NoError(s.n.AddFanin(mux, d1, false))
	require.NoError(s.n.AddFanin(mux, d0, false))
	po, err := s.n.AddPO("y", mux, false)
	require.NoError(err)

	out, ok := gbb.Build(s.n, s.mgr, gbb.Params{})
	require.True(ok)
	want := s.mgr.Ite(out[sel], out[d1], out[d0])
	require.Equal(want, out[po])
}

func TestGbbSuite(t *testing.T) {
	suite.Run(t, new(GbbSuite))
}
