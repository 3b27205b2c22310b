package commitlint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCase(t *testing.T) {
	type testcase struct {
		Value    string
		Case     string
		Expected bool
	}

	tests := []testcase{
		{"add widget", "lower-case", true},
		{"Add widget", "lower-case", false},
		{"ADD WIDGET", "upper-case", true},
		{"Add widget", "sentence-case", true},
		{"add widget", "sentence-case", false},
		{"Add Widget", "start-case", true},
		{"Add widget", "start-case", false},
		{"AddWidget", "pascal-case", true},
		{"addWidget", "camel-case", true},
		{"add-widget", "kebab-case", true},
		{"add_widget", "snake-case", true},
		{"add_widget", "kebab-case", false},
		{"1.2.3", "upper-case", false},
		{"1.2.3", "lower-case", true},
		{"add widget", "lowercase", true},
		{"add widget", "no-such-case", false},
	}

	for i, test := range tests {
		assert.Equal(t, test.Expected, hasCase(test.Value, test.Case), "case %d: %q %s", i, test.Value, test.Case)
	}
}

func TestRuleNever(t *testing.T) {
	apply := ruleDefinitions["subject-full-stop"].apply

	ok, _ := apply(Parse("fix: thing"), Never, ".")
	assert.True(t, ok)

	ok, msg := apply(Parse("fix: thing."), Never, ".")
	assert.False(t, ok)
	assert.Equal(t, "subject must not end with full stop", msg)

	ok, _ = apply(Parse("fix: thing."), Always, ".")
	assert.True(t, ok)
}

func TestRuleMaxLength(t *testing.T) {
	apply := ruleDefinitions["header-max-length"].apply

	ok, _ := apply(Parse("fix: short"), Always, 72)
	assert.True(t, ok)

	ok, msg := apply(Parse("fix: this header is longer"), Always, 10)
	assert.False(t, ok)
	assert.Equal(t, "header must not be longer than 10 characters, current length is 26", msg)
}

func TestRuleScopeEnum(t *testing.T) {
	apply := ruleDefinitions["scope-enum"].apply
	allowed := []string{"api", "cli"}

	ok, _ := apply(Parse("fix(api,cli): x"), Always, allowed)
	assert.True(t, ok)

	ok, _ = apply(Parse("fix: x"), Always, allowed)
	assert.True(t, ok)

	ok, msg := apply(Parse("fix(web): x"), Always, allowed)
	assert.False(t, ok)
	assert.Equal(t, "scope must be one of [api, cli]", msg)
}

func TestRuleHeaderMatch(t *testing.T) {
	apply := ruleDefinitions["header-match"].apply

	ok, _ := apply(Parse("fea(abc) hello"), Always, `^(fea|fix|doc)\([a-z0-9\-]{2,30}\)`)
	assert.True(t, ok)

	ok, _ = apply(Parse("hee(abc) hello"), Always, `^(fea|fix|doc)\([a-z0-9\-]{2,30}\)`)
	assert.False(t, ok)
}

func TestRulesValidate(t *testing.T) {
	assert.NoError(t, conventional.Validate())

	assert.ErrorIs(t, Rules{"no-such-rule": {LevelError, Always, nil}}.Validate(), ErrUnknownRule)
	assert.ErrorIs(t, Rules{"type-empty": {Level(3), Never, nil}}.Validate(), ErrInvalidRule)
	assert.ErrorIs(t, Rules{"type-empty": {LevelError, "sometimes", nil}}.Validate(), ErrInvalidRule)
	assert.ErrorIs(t, Rules{"type-enum": {LevelError, Always, nil}}.Validate(), ErrInvalidRule)
	assert.ErrorIs(t, Rules{"header-max-length": {LevelError, Always, "long"}}.Validate(), ErrInvalidRule)
	assert.ErrorIs(t, Rules{"subject-case": {LevelError, Never, "wavy-case"}}.Validate(), ErrInvalidRule)
	assert.ErrorIs(t, Rules{"header-match": {LevelError, Always, "("}}.Validate(), ErrInvalidRule)

	// Disabled rules skip value checks.
	assert.NoError(t, Rules{"type-enum": {LevelDisabled, Always, nil}}.Validate())
}
