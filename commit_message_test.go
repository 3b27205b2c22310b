package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zegl/turbo-lint/commitlint"
)

func linterFromYAML(t *testing.T, doc string) *commitlint.Linter {
	var config Config
	require.NoError(t, yaml.Unmarshal([]byte(doc), &config))

	l, err := config.linter()
	require.NoError(t, err)
	return l
}

func TestValidCommitSubjectMessage(t *testing.T) {
	type testcase struct {
		Message  string
		MaxLen   int
		MinLen   int
		Expected bool
	}

	tests := []testcase{
		{"feat: hello world", 72, 3, true},
		{"feat: hello world", 5, 3, false},
		{"feat: hello", 72, 20, false},
	}

	for i, test := range tests {
		var config Config
		config.Commit.MaxSubjectLength = &test.MaxLen
		config.Commit.MinSubjectLength = &test.MinLen

		l, err := config.linter()
		require.NoError(t, err)
		assert.Equal(t, test.Expected, l.Lint(test.Message).Valid, "case %d", i)
	}
}

func TestValidCommitBodyMessage(t *testing.T) {
	type testcase struct {
		Message  string
		MaxLen   int
		Expected bool
	}

	tests := []testcase{
		{"feat: subjects can be long sometimes, even longer than 20 chars\n\nMany\nShort\nLines", 20, true},
		{"feat: subject\n\nMany\nShort\nLines", 3, false},
	}

	for i, test := range tests {
		var config Config
		config.Commit.MaxBodyMessageLength = &test.MaxLen

		l, err := config.linter()
		require.NoError(t, err)
		assert.Equal(t, test.Expected, l.Lint(test.Message).Valid, "case %d", i)
	}
}

func TestCommitMessageRegex(t *testing.T) {
	l := linterFromYAML(t, `
extends: []
commit:
  subjectMustMatchRegex:
    - "^(fea|fix|doc)\\([a-z0-9\\-]{2,30}\\)"
    - "^chore: "
`)

	assert.True(t, l.Lint("fea(abc) hello").Valid)
	assert.True(t, l.Lint("fix(abc) hello").Valid)
	assert.True(t, l.Lint("chore: hello").Valid)
	assert.False(t, l.Lint("hee(abc) hello").Valid)
}

func TestConfigRules(t *testing.T) {
	l := linterFromYAML(t, `
extends: ["@commitlint/config-conventional"]
defaultIgnores: false
ignores:
  - "^WIP"
rules:
  type-enum: [2, always, [feat, fix]]
  body-leading-blank: [0]
  scope-case: [1, always, kebab-case]
`)

	assert.True(t, l.Lint("WIP everything").Ignored)
	assert.True(t, l.Lint("chore: x\n\nSigned-off-by: dependabot[bot]").Ignored)
	assert.False(t, l.Lint("Merge branch 'main' into x").Ignored)

	assert.True(t, l.Lint("feat: x\nbody").Valid)
	assert.False(t, l.Lint("docs: x").Valid)

	outcome := l.Lint("fix(SomeScope): x")
	assert.True(t, outcome.Valid)
	require.Len(t, outcome.Warnings, 1)
	assert.Equal(t, "scope-case", outcome.Warnings[0].Name)

	assert.Equal(t, commitlint.RuleConfig{Level: commitlint.LevelDisabled, Applicable: commitlint.Always}, l.Rules()["body-leading-blank"])
}

func TestConfigErrors(t *testing.T) {
	var config Config
	assert.Error(t, yaml.Unmarshal([]byte("rules:\n  type-enum: two\n"), &config))
	assert.Error(t, yaml.Unmarshal([]byte("rules:\n  type-enum: [error, always]\n"), &config))

	config = Config{Extends: []string{"@commitlint/config-angular"}}
	_, err := config.linter()
	assert.ErrorIs(t, err, commitlint.ErrUnknownRuleSet)

	config = Config{Ignores: []string{"("}}
	_, err = config.linter()
	assert.ErrorIs(t, err, commitlint.ErrInvalidPattern)

	config = Config{Rules: map[string]RuleEntry{"type-enum": {Level: commitlint.LevelError, Applicable: "sometimes"}}}
	_, err = config.linter()
	assert.ErrorIs(t, err, commitlint.ErrInvalidRule)
}

func TestGetConfigMissingDefault(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	config, err := getConfig(defaultConfigFile)
	require.NoError(t, err)
	assert.Empty(t, config.Extends)

	_, err = getConfig("other.yaml")
	assert.Error(t, err)
}
