package sop_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vlsitools/lsynth/sop"
)

type CoverSuite struct {
	suite.Suite
}

func (s *CoverSuite) TestConstDetection() {
	require := require.New(s.T())
	zero := &sop.Cover{NVars: 2, Phase: true}
	require.True(zero.IsConst0())
	require.False(zero.IsConst1())

	one := &sop.Cover{Cubes: []sop.Cube{"--"}, NVars: 2, Phase: true}
	require.True(one.IsConst1())
}

func (s *CoverSuite) TestIsExorType() {
	require := require.New(s.T())
	xor := &sop.Cover{Cubes: []sop.Cube{"01", "10"}, NVars: 2, Phase: true}
	require.True(xor.IsExorType())

	notXor := &sop.Cover{Cubes: []sop.Cube{"01", "1-"}, NVars: 2, Phase: true}
	require.False(notXor.IsExorType())
}

func (s *CoverSuite) TestCreateAnd() {
	require := require.New(s.T())
	a := &sop.Cover{Cubes: []sop.Cube{"1-"}, NVars: 2, Phase: true}
	b := &sop.Cover{Cubes: []sop.Cube{"-1"}, NVars: 2, Phase: true}

	out, err := sop.CreateAnd(a, b)
	require.NoError(err)
	require.Equal([]sop.Cube{"11"}, out.Cubes)
}

func (s *CoverSuite) TestCreateAndDropsConflicts() {
	require := require.New(s.T())
	a := &sop.Cover{Cubes: []sop.Cube{"0-"}, NVars: 2, Phase: true}
	b := &sop.Cover{Cubes: []sop.Cube{"1-"}, NVars: 2, Phase: true}

	out, err := sop.CreateAnd(a, b)
	require.NoError(err)
	require.Empty(out.Cubes)
}

func (s *CoverSuite) TestCreateOr() {
	require := require.New(s.T())
	a := &sop.Cover{Cubes: []sop.Cube{"0-"}, NVars: 2, Phase: true}
	b := &sop.Cover{Cubes: []sop.Cube{"-1"}, NVars: 2, Phase: true}

	out, err := sop.CreateOr(a, b)
	require.NoError(err)
	require.Len(out.Cubes, 2)
}

func (s *CoverSuite) TestMinimumBaseDropsUnusedColumn() {
	require := require.New(s.T())
	c := &sop.Cover{Cubes: []sop.Cube{"1--", "0--"}, NVars: 3, Phase: true}
	reduced, keep := c.MinimumBase()
	require.Equal([]int32{0}, keep)
	require.Equal(1, reduced.NVars)
	require.Equal([]sop.Cube{"1", "0"}, reduced.Cubes)
}

func (s *CoverSuite) TestArenaInterning() {
	require := require.New(s.T())
	arena := sop.NewArena()
	a := &sop.Cover{Cubes: []sop.Cube{"1-"}, NVars: 2, Phase: true}
	b := &sop.Cover{Cubes: []sop.Cube{"1-"}, NVars: 2, Phase: true}

	ra := arena.Register(a)
	rb := arena.Register(b)
	require.Same(ra, rb, "structurally identical covers should intern to the same pointer")
}

func TestCoverSuite(t *testing.T) {
	suite.Run(t, new(CoverSuite))
}
