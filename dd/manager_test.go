package dd_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vlsitools/lsynth/dd"
)

type ManagerSuite struct {
	suite.Suite
	m *dd.Manager
}

func (s *ManagerSuite) SetupTest() {
	m, err := dd.NewManager(4)
	s.Require().NoError(err)
	s.m = m
}

func (s *ManagerSuite) TestConstantsAndVars() {
	require := require.New(s.T())
	require.True(s.m.ReadOne().IsOne())
	require.True(s.m.ReadZero().IsZero())
	require.Equal(4, s.m.NumVars())

	v0 := s.m.IthVar(0)
	require.False(v0.IsConst())
}

func (s *ManagerSuite) TestNotIsComplement() {
	require := require.New(s.T())
	v0 := s.m.IthVar(0)
	nv0 := s.m.Not(v0)
	require.Equal(v0, s.m.Not(nv0))
	require.NotEqual(v0, nv0)
}

func (s *ManagerSuite) TestAndOrDeMorgan() {
	require := require.New(s.T())
	a, b := s.m.IthVar(0), s.m.IthVar(1)

	lhs := s.m.Not(s.m.And(a, b))
	rhs := s.m.Or(s.m.Not(a), s.m.Not(b))
	require.Equal(rhs, lhs, "De Morgan: !(a&b) == !a | !b")
}

func (s *ManagerSuite) TestXorSelfIsZero() {
	require := require.New(s.T())
	a := s.m.IthVar(0)
	require.True(s.m.Xor(a, a).IsZero())
}

func (s *ManagerSuite) TestIteIsCanonical() {
	require := require.New(s.T())
	a, b, c := s.m.IthVar(0), s.m.IthVar(1), s.m.IthVar(2)

	// ite(a,b,c) built two distinct ways should intern to the same edge.
	f1 := s.m.Ite(a, b, c)
	f2 := s.m.Or(s.m.And(a, b), s.m.And(s.m.Not(a), c))
	require.Equal(f1, f2)
}

func (s *ManagerSuite) TestRefDerefAndGC() {
	require := require.New(s.T())
	a, b := s.m.IthVar(0), s.m.IthVar(1)
	f := s.m.Ref(s.m.And(a, b))

	sizeBefore := s.m.Size()
	require.Positive(sizeBefore)

	s.m.Deref(f)
	freed := s.m.CollectGarbage()
	require.Positive(freed)
	require.Less(s.m.Size(), sizeBefore)
}

func (s *ManagerSuite) TestAndLimitAborts() {
	require := require.New(s.T())
	a, b := s.m.IthVar(0), s.m.IthVar(1)
	_, ok := s.m.AndLimit(a, b, dd.Budget{MaxNodes: 1})
	require.False(ok, "a budget already below the live node count should abort immediately")
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}
