package commitlint

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type Level int

const (
	LevelDisabled Level = 0
	LevelWarning  Level = 1
	LevelError    Level = 2
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "disabled"
	}
}

type Applicable string

const (
	Always Applicable = "always"
	Never  Applicable = "never"
)

// RuleConfig is one rule entry, the Go form of commitlint's
// [level, applicable, value] tuple.
type RuleConfig struct {
	Level      Level
	Applicable Applicable
	Value      any
}

// Rules maps rule names to their configuration.
type Rules map[string]RuleConfig

// Names returns the rule names in sorted order.
func (r Rules) Names() []string {
	names := lo.Keys(r)
	sort.Strings(names)
	return names
}

// Validate checks every entry names a known rule with a usable config.
func (r Rules) Validate() error {
	for _, name := range r.Names() {
		cfg := r[name]

		def, ok := ruleDefinitions[name]
		if !ok {
			return errors.Wrap(ErrUnknownRule, name)
		}
		if cfg.Level < LevelDisabled || cfg.Level > LevelError {
			return errors.Wrapf(ErrInvalidRule, "%s: level %d", name, cfg.Level)
		}
		if cfg.Applicable != Always && cfg.Applicable != Never {
			return errors.Wrapf(ErrInvalidRule, "%s: applicable %q", name, cfg.Applicable)
		}
		if cfg.Level == LevelDisabled || def.check == nil {
			continue
		}
		if err := def.check(cfg.Value); err != nil {
			return errors.Wrapf(ErrInvalidRule, "%s: %v", name, err)
		}
	}

	return nil
}

// ruleFunc reports whether the commit satisfies the rule and, when it does
// not, why.
type ruleFunc func(c Commit, when Applicable, value any) (bool, string)

type ruleDefinition struct {
	apply ruleFunc
	check func(value any) error
}

var ruleDefinitions = map[string]ruleDefinition{
	"header-max-length": {maxLength("header", func(c Commit) []string { return []string{c.Header} }), checkInt},
	"header-min-length": {minLength("header", func(c Commit) string { return c.Header }), checkInt},
	"header-match":      {headerMatch, checkPattern},
	"header-trim":       {headerTrim, nil},

	"type-empty": {empty("type", func(c Commit) string { return c.Type }), nil},
	"type-enum":  {enum("type", func(c Commit) []string { return nonEmpty(c.Type) }), checkStrings},
	"type-case":  {caseRule("type", func(c Commit) string { return c.Type }), checkCases},

	"scope-case": {caseRule("scope", func(c Commit) string { return c.Scope }), checkCases},
	"scope-enum": {enum("scope", func(c Commit) []string { return splitScopes(c.Scope) }), checkStrings},

	"subject-empty":     {empty("subject", func(c Commit) string { return c.Subject }), nil},
	"subject-case":      {caseRule("subject", func(c Commit) string { return c.Subject }), checkCases},
	"subject-full-stop": {fullStop, nil},

	"body-leading-blank":   {leadingBlank("body", func(c Commit) (string, bool) { return c.Body, c.bodyLeadingBlank }), nil},
	"body-max-line-length": {maxLength("body's lines", func(c Commit) []string { return lines(c.Body) }), checkInt},

	"footer-leading-blank":   {leadingBlank("footer", func(c Commit) (string, bool) { return c.Footer, c.footerLeadingBlank }), nil},
	"footer-max-line-length": {maxLength("footer's lines", func(c Commit) []string { return lines(c.Footer) }), checkInt},
}

// negate folds the never applicability into a plain condition.
func negate(when Applicable, cond bool) bool {
	if when == Never {
		return !cond
	}
	return cond
}

func must(when Applicable) string {
	if when == Never {
		return "must not"
	}
	return "must"
}

func maxLength(what string, get func(Commit) []string) ruleFunc {
	return func(c Commit, when Applicable, value any) (bool, string) {
		limit, _ := asInt(value)
		longest := 0
		for _, line := range get(c) {
			longest = max(longest, utf8.RuneCountInString(line))
		}
		if negate(when, longest <= limit) {
			return true, ""
		}
		return false, fmt.Sprintf("%s %s be longer than %d characters, current length is %d", what, must(negated(when)), limit, longest)
	}
}

func negated(when Applicable) Applicable {
	if when == Never {
		return Always
	}
	return Never
}

func minLength(what string, get func(Commit) string) ruleFunc {
	return func(c Commit, when Applicable, value any) (bool, string) {
		limit, _ := asInt(value)
		length := utf8.RuneCountInString(get(c))
		if negate(when, length >= limit) {
			return true, ""
		}
		return false, fmt.Sprintf("%s %s be shorter than %d characters, current length is %d", what, must(negated(when)), limit, length)
	}
}

func headerMatch(c Commit, when Applicable, value any) (bool, string) {
	pattern, _ := value.(string)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Sprintf("header pattern %q is invalid", pattern)
	}
	if negate(when, re.MatchString(c.Header)) {
		return true, ""
	}
	return false, fmt.Sprintf("header %s match %s", must(when), pattern)
}

func headerTrim(c Commit, when Applicable, _ any) (bool, string) {
	trimmed := strings.TrimSpace(c.Header) == c.Header
	if negate(when, trimmed) {
		return true, ""
	}
	if when == Never {
		return false, "header must be surrounded by whitespace"
	}
	return false, "header must not be surrounded by whitespace"
}

func empty(what string, get func(Commit) string) ruleFunc {
	return func(c Commit, when Applicable, _ any) (bool, string) {
		if negate(when, get(c) == "") {
			return true, ""
		}
		if when == Never {
			return false, fmt.Sprintf("%s may not be empty", what)
		}
		return false, fmt.Sprintf("%s must be empty", what)
	}
}

func enum(what string, get func(Commit) []string) ruleFunc {
	return func(c Commit, when Applicable, value any) (bool, string) {
		allowed := asStrings(value)
		values := get(c)
		if len(values) == 0 {
			return true, ""
		}
		inEnum := lo.Every(allowed, values)
		if negate(when, inEnum) {
			return true, ""
		}
		return false, fmt.Sprintf("%s %s be one of [%s]", what, must(when), strings.Join(allowed, ", "))
	}
}

func caseRule(what string, get func(Commit) string) ruleFunc {
	return func(c Commit, when Applicable, value any) (bool, string) {
		cases := asStrings(value)
		s := get(c)
		if s == "" {
			return true, ""
		}
		matches := lo.SomeBy(cases, func(name string) bool { return hasCase(s, name) })
		if negate(when, matches) {
			return true, ""
		}
		return false, fmt.Sprintf("%s %s be %s", what, must(when), strings.Join(cases, ", "))
	}
}

func fullStop(c Commit, when Applicable, value any) (bool, string) {
	stop, ok := value.(string)
	if !ok || stop == "" {
		stop = "."
	}
	if c.Subject == "" {
		return true, ""
	}
	if negate(when, strings.HasSuffix(c.Subject, stop)) {
		return true, ""
	}
	return false, fmt.Sprintf("subject %s end with full stop", must(when))
}

func leadingBlank(what string, get func(Commit) (string, bool)) ruleFunc {
	return func(c Commit, when Applicable, _ any) (bool, string) {
		section, blank := get(c)
		if section == "" {
			return true, ""
		}
		if negate(when, blank) {
			return true, ""
		}
		if when == Never {
			return false, fmt.Sprintf("%s must not have leading blank line", what)
		}
		return false, fmt.Sprintf("%s must have leading blank line", what)
	}
}

var (
	pascalCase = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	camelCase  = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	kebabCase  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	snakeCase  = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)
)

var knownCases = []string{
	"lower-case", "upper-case", "sentence-case", "start-case",
	"pascal-case", "camel-case", "kebab-case", "snake-case",
}

var caseAliases = map[string]string{
	"lowercase":    "lower-case",
	"uppercase":    "upper-case",
	"sentencecase": "sentence-case",
}

func hasCase(s, name string) bool {
	if alias, ok := caseAliases[name]; ok {
		name = alias
	}
	letters := strings.IndexFunc(s, unicode.IsLetter) >= 0

	switch name {
	case "lower-case":
		return s == strings.ToLower(s)
	case "upper-case":
		return letters && s == strings.ToUpper(s)
	case "sentence-case":
		return letters && s == upperFirst(strings.ToLower(s))
	case "start-case":
		if !letters {
			return false
		}
		for _, word := range strings.Fields(s) {
			if word != upperFirst(strings.ToLower(word)) {
				return false
			}
		}
		return true
	case "pascal-case":
		return pascalCase.MatchString(s)
	case "camel-case":
		return camelCase.MatchString(s)
	case "kebab-case":
		return kebabCase.MatchString(s)
	case "snake-case":
		return snakeCase.MatchString(s)
	}

	return false
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func splitScopes(scope string) []string {
	return strings.FieldsFunc(scope, func(r rune) bool {
		return r == '/' || r == '\\' || r == ','
	})
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func asStrings(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func checkInt(value any) error {
	if _, ok := asInt(value); !ok {
		return errors.Errorf("expected a number, got %v", value)
	}
	return nil
}

func checkStrings(value any) error {
	if len(asStrings(value)) == 0 {
		return errors.Errorf("expected a list of strings, got %v", value)
	}
	return nil
}

func checkCases(value any) error {
	cases := asStrings(value)
	if len(cases) == 0 {
		return errors.Errorf("expected a case name, got %v", value)
	}
	for _, name := range cases {
		if !lo.Contains(knownCases, name) && !lo.Contains(knownCases, caseAliases[name]) {
			return errors.Errorf("unknown case %q", name)
		}
	}
	return nil
}

func checkPattern(value any) error {
	pattern, ok := value.(string)
	if !ok {
		return errors.Errorf("expected a pattern, got %v", value)
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return err
	}
	return nil
}
