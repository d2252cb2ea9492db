package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "battle not found",
			expected: "NOT_FOUND: battle not found",
		},
		{
			name:     "failed precondition error",
			code:     errors.CodeFailedPrecondition,
			message:  "battle is over",
			expected: "FAILED_PRECONDITION: battle is over",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("record not found").WithMeta("battle_id", "b1")
	wrapped := errors.Wrap(baseErr, "failed to load battle")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("failed to load battle", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
	s.Equal("b1", errors.GetMeta(wrapped)["battle_id"])
}

func (s *ErrorsTestSuite) TestWrapPlainErrorIsInternal() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrapf(baseErr, "failed to store battle %s", "b1")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to store battle b1", wrapped.Message)
	s.True(errors.IsInternal(wrapped))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("connection timeout")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "store unavailable")

	s.Equal(errors.CodeUnavailable, wrapped.Code)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.True(errors.Is(errors.Wrap(errors.NotFound("a"), "b"), errors.NotFound("c")))
	s.False(errors.NotFound("a").Is(errors.InvalidArgument("a")))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	s.True(errors.IsNotFound(errors.NotFoundf("battle %s not found", "b1")))
	s.True(errors.IsInvalidArgument(errors.InvalidArgumentf("bad card %q", "x")))
	s.True(errors.IsAlreadyExists(errors.AlreadyExistsf("battle %s exists", "b1")))
	s.True(errors.IsFailedPrecondition(errors.FailedPreconditionf("turn %d already resolved", 3)))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestBattleMeta() {
	base := errors.FailedPrecondition("combatant is stunned").
		WithBattle("b1").
		WithTurn(4).
		WithCombatant("hero")
	wrapped := errors.Wrap(base, "failed to submit turn")

	meta := errors.GetMeta(wrapped)
	s.Equal("b1", meta[errors.MetaBattleID])
	s.Equal(4, meta[errors.MetaTurn])
	s.Equal("hero", meta[errors.MetaCombatantID])

	wrapped.WithMeta("extra", true)
	s.NotContains(base.Meta, "extra")
}

func (s *ErrorsTestSuite) TestUnavailable() {
	err := errors.WrapWithCode(fmt.Errorf("dial tcp"), errors.CodeUnavailable, "redis did not answer ping")
	s.True(errors.IsUnavailable(err))
	s.Equal(4, errors.GetCode(err).ExitCode())
}

func (s *ErrorsTestSuite) TestExitCode() {
	s.Equal(0, errors.CodeOK.ExitCode())
	s.Equal(2, errors.CodeNotFound.ExitCode())
	s.Equal(3, errors.CodeFailedPrecondition.ExitCode())
	s.Equal(1, errors.CodeInternal.ExitCode())
}
