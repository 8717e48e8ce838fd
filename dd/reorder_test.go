package dd_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vlsitools/lsynth/dd"
)

type ReorderSuite struct {
	suite.Suite
	m *dd.Manager
}

func (s *ReorderSuite) SetupTest() {
	m, err := dd.NewManager(4)
	s.Require().NoError(err)
	s.m = m
}

// buildDiagonal builds a function whose BDD is smallest under the natural
// variable order (0,1,2,3), which is also the manager's starting order, so
// the fixture checks that ReduceHeap keeps the function intact rather than
// that it shrinks anything: (v0<->v1) & (v2<->v3).
func (s *ReorderSuite) buildDiagonal() dd.Edge {
	v0, v1, v2, v3 := s.m.IthVar(0), s.m.IthVar(1), s.m.IthVar(2), s.m.IthVar(3)
	eq01 := s.m.Or(s.m.And(v0, v1), s.m.And(s.m.Not(v0), s.m.Not(v1)))
	eq23 := s.m.Or(s.m.And(v2, v3), s.m.And(s.m.Not(v2), s.m.Not(v3)))
	return s.m.And(eq01, eq23)
}

func (s *ReorderSuite) TestReduceHeapPreservesFunction() {
	require := require.New(s.T())
	f := s.m.Ref(s.buildDiagonal())

	remap := s.m.ReduceHeap(dd.ReorderSift)
	f2, ok := remap[f]
	require.True(ok, "a referenced edge must appear in the remap")

	// The remapped function must still answer the same minterm count.
	require.Equal(s.m.CountMinterm(f2, s.m.NumVars()), float64(4))
}

func (s *ReorderSuite) TestReduceHeapNoVarsIsNoop() {
	m, err := dd.NewManager(0)
	s.Require().NoError(err)
	require := require.New(s.T())
	require.Empty(m.ReduceHeap(dd.ReorderSift))
}

func TestReorderSuite(t *testing.T) {
	suite.Run(t, new(ReorderSuite))
}
