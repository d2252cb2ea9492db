package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-clash/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("battle_id").
		InvalidField("topology", "unknown topology").
		Fieldf("side_a", "must have at least %d combatant", 1)

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "battle_id: is required")
	s.Contains(err.Error(), "topology: is invalid: unknown topology")
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestMessagesAreSorted() {
	ve := &errors.ValidationError{Fields: map[string][]string{
		"zeta":  {"bad"},
		"alpha": {"bad"},
	}}

	s.Equal("validation failed: alpha: bad; zeta: bad", ve.Error())
}

func (s *ValidationTestSuite) TestHelpers() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", "  ", vb)
	errors.ValidateRange("level", 25, 1, 20, vb)
	errors.ValidateRange("hp", 10, 1, 100, vb)
	errors.ValidateMin("max_mental", 0, 1, vb)
	errors.ValidateEnum("pattern", "sneaky", []string{"aggressive", "defensive", "balanced"}, vb)

	err := vb.Build()
	s.Require().Error(err)

	fields := errors.GetMeta(err)[errors.MetaValidation].(map[string][]string)
	s.Contains(fields, "name")
	s.Contains(fields["level"][0], "must be between 1 and 20")
	s.NotContains(fields, "hp")
	s.Contains(fields["max_mental"][0], "must be at least 1")
	s.Contains(fields["pattern"][0], "must be one of: aggressive, defensive, balanced")
}

func (s *ValidationTestSuite) TestEnumOfStringKind() {
	type topology string

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("topology", topology("duel"), []topology{"duel", "hunt"}, vb)
	s.False(vb.Has("topology"))

	errors.ValidateEnum("topology", topology("brawl"), []topology{"duel", "hunt"}, vb)
	s.True(vb.Has("topology"))
	s.Contains(vb.Build().Error(), "must be one of: duel, hunt")
}
