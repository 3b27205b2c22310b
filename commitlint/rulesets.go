package commitlint

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// conventional mirrors @commitlint/config-conventional.
var conventional = Rules{
	"body-leading-blank":     {LevelWarning, Always, nil},
	"body-max-line-length":   {LevelError, Always, 100},
	"footer-leading-blank":   {LevelWarning, Always, nil},
	"footer-max-line-length": {LevelError, Always, 100},
	"header-max-length":      {LevelError, Always, 100},
	"header-trim":            {LevelError, Always, nil},
	"subject-case":           {LevelError, Never, []string{"sentence-case", "start-case", "pascal-case", "upper-case"}},
	"subject-empty":          {LevelError, Never, nil},
	"subject-full-stop":      {LevelError, Never, "."},
	"type-case":              {LevelError, Always, "lower-case"},
	"type-empty":             {LevelError, Never, nil},
	"type-enum": {LevelError, Always, []string{
		"build", "chore", "ci", "docs", "feat", "fix", "perf", "refactor", "revert", "style", "test",
	}},
}

var registry = map[string]Rules{
	ConventionalRuleSet:   conventional,
	"config-conventional": conventional,
	"conventional":        conventional,
}

// RuleSet looks up a rule set by name. The returned Rules are a copy.
func RuleSet(name string) (Rules, error) {
	rules, ok := registry[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownRuleSet, name)
	}

	return lo.Assign(rules), nil
}

// RuleSetNames lists every registered name, aliases included.
func RuleSetNames() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}

// Resolve merges the extended rule sets in order and applies the
// configuration's own rules last. cfg.Extends is read, never modified.
func Resolve(cfg Configuration) (Rules, error) {
	merged := Rules{}

	for _, name := range cfg.Extends {
		rules, err := RuleSet(name)
		if err != nil {
			return nil, err
		}
		merged = lo.Assign(merged, rules)
	}

	merged = lo.Assign(merged, cfg.Rules)

	if err := merged.Validate(); err != nil {
		return nil, err
	}

	return merged, nil
}
