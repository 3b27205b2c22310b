// Package commitlint lints commit messages against conventional-commit rule
// sets. A Configuration names the rule sets to extend and the predicates that
// exempt a message from linting.
package commitlint

// IgnoreFunc reports whether a commit message should skip linting entirely.
type IgnoreFunc func(message string) bool

// Configuration is loaded once at start up and never mutated afterwards.
type Configuration struct {
	// Extends lists rule sets in priority order, later entries win.
	Extends []string

	// Ignores exempts a message from linting when any of them returns true.
	Ignores []IgnoreFunc

	// DefaultIgnores enables the built-in exemptions for merge, revert and
	// fixup commits.
	DefaultIgnores bool

	// Rules are applied on top of the extended rule sets.
	Rules Rules
}

// ConventionalRuleSet is the rule set the default configuration extends.
const ConventionalRuleSet = "@commitlint/config-conventional"

// Default returns the project configuration.
func Default() Configuration {
	return Configuration{
		// Resolve and load the conventional rule set from the registry.
		Extends: []string{ConventionalRuleSet},
		// Ignore dependabot commit messages until
		// https://github.com/dependabot/dependabot-core/issues/2445 is fixed.
		Ignores:        []IgnoreFunc{IgnoreDependabot},
		DefaultIgnores: true,
	}
}

// Ignored reports whether any configured ignore predicate matches message.
func (c Configuration) Ignored(message string) bool {
	for _, ignore := range c.Ignores {
		if ignore(message) {
			return true
		}
	}

	if c.DefaultIgnores {
		return isDefaultIgnored(message)
	}

	return false
}
