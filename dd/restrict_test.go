package dd_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vlsitools/lsynth/dd"
)

type RestrictSuite struct {
	suite.Suite
	m *dd.Manager
}

func (s *RestrictSuite) SetupTest() {
	m, err := dd.NewManager(3)
	s.Require().NoError(err)
	s.m = m
}

func (s *RestrictSuite) TestRestrictAgreesOnCareSet() {
	require := require.New(s.T())
	a, b := s.m.IthVar(0), s.m.IthVar(1)
	f := s.m.And(a, b)
	care := s.m.Or(a, b) // care wherever a or b is 1

	r := s.m.Restrict(f, care)
	// wherever care==1, r must equal f; check the a=1 cofactor, where care
	// is 1 throughout.
	require.Equal(s.m.Cofactor(f, 0, true), s.m.Cofactor(r, 0, true))
}

func (s *RestrictSuite) TestRestrictFullCareIsIdentity() {
	require := require.New(s.T())
	a, b := s.m.IthVar(0), s.m.IthVar(1)
	f := s.m.Ite(a, b, s.m.Not(b))
	require.Equal(f, s.m.Restrict(f, s.m.ReadOne()))
}

func TestRestrictSuite(t *testing.T) {
	suite.Run(t, new(RestrictSuite))
}
