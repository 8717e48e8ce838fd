package sop_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vlsitools/lsynth/dd"
	"github.com/vlsitools/lsynth/sop"
)

type BDDSuite struct {
	suite.Suite
	m    *dd.Manager
	vars []dd.Edge
}

func (s *BDDSuite) SetupTest() {
	m, err := dd.NewManager(3)
	s.Require().NoError(err)
	s.m = m
	s.vars = []dd.Edge{m.IthVar(0), m.IthVar(1), m.IthVar(2)}
}

func (s *BDDSuite) TestToBDDRoundTripsThroughFromBDD() {
	require := require.New(s.T())
	f := s.m.Ite(s.vars[0], s.vars[1], s.vars[2])

	cov, ok := sop.FromBDD(s.m, f, s.m.ReadZero(), s.vars, sop.PhasePositive, 0)
	require.True(ok)

	back := sop.ToBDD(s.m, cov, s.vars)
	require.Equal(f, back)
}

func (s *BDDSuite) TestFromBDDNegativePhase() {
	require := require.New(s.T())
	f := s.m.And(s.vars[0], s.vars[1])

	cov, ok := sop.FromBDD(s.m, f, s.m.ReadZero(), s.vars, sop.PhaseNegative, 0)
	require.True(ok)
	require.False(cov.Phase)

	back := sop.ToBDD(s.m, cov, s.vars)
	require.Equal(f, back)
}

func (s *BDDSuite) TestFromBDDMaxCubesRejects() {
	require := require.New(s.T())
	f := s.m.Ite(s.vars[0], s.vars[1], s.vars[2])
	_, ok := sop.FromBDD(s.m, f, s.m.ReadZero(), s.vars, sop.PhasePositive, 1)
	require.False(ok)
}

func (s *BDDSuite) TestFromBDDDontCareKeepsCareSet() {
	require := require.New(s.T())
	f := s.m.Ite(s.vars[0], s.vars[1], s.vars[2])
	// Declaring v2 fully don't-care should still reconstruct a function
	// that agrees with f wherever dc is 0.
	dc := s.vars[2]
	cov, ok := sop.FromBDD(s.m, f, dc, s.vars, sop.PhasePositive, 0)
	require.True(ok)
	back := sop.ToBDD(s.m, cov, s.vars)
	require.Equal(s.m.Cofactor(f, 2, false), s.m.Cofactor(back, 2, false))
}

func TestBDDSuite(t *testing.T) {
	suite.Run(t, new(BDDSuite))
}
