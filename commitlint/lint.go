package commitlint

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type Problem struct {
	Level   Level
	Name    string
	Message string
}

// Outcome is the result of linting a single message.
type Outcome struct {
	Input    string
	Ignored  bool
	Valid    bool
	Errors   []Problem
	Warnings []Problem
}

// Linter applies a resolved configuration. It is safe for concurrent use.
type Linter struct {
	config Configuration
	rules  Rules
}

func NewLinter(cfg Configuration) (*Linter, error) {
	rules, err := Resolve(cfg)
	if err != nil {
		return nil, err
	}

	return &Linter{config: cfg, rules: rules}, nil
}

func (l *Linter) Config() Configuration {
	return l.config
}

// Rules returns the resolved rules. Callers must not modify the result.
func (l *Linter) Rules() Rules {
	return l.rules
}

func (l *Linter) Lint(message string) Outcome {
	if l.config.Ignored(message) {
		return Outcome{Input: message, Ignored: true, Valid: true}
	}

	commit := Parse(message)
	outcome := Outcome{Input: message}

	if strings.TrimSpace(commit.Raw) == "" {
		outcome.Errors = []Problem{
			{LevelError, "subject-empty", "subject may not be empty"},
			{LevelError, "type-empty", "type may not be empty"},
		}
		return outcome
	}

	for _, name := range l.rules.Names() {
		cfg := l.rules[name]
		if cfg.Level == LevelDisabled {
			continue
		}

		ok, msg := ruleDefinitions[name].apply(commit, cfg.Applicable, cfg.Value)
		if ok {
			continue
		}

		problem := Problem{Level: cfg.Level, Name: name, Message: msg}
		if cfg.Level == LevelError {
			outcome.Errors = append(outcome.Errors, problem)
		} else {
			outcome.Warnings = append(outcome.Warnings, problem)
		}
	}

	outcome.Valid = len(outcome.Errors) == 0
	return outcome
}

// Format renders the outcome the way commitlint prints it on a terminal.
func (o Outcome) Format() string {
	if o.Ignored {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "⧗   input: %s\n", firstLine(o.Input))

	for _, p := range o.Errors {
		fmt.Fprintf(&sb, "✖   %s [%s]\n", p.Message, p.Name)
	}
	for _, p := range o.Warnings {
		fmt.Fprintf(&sb, "⚠   %s [%s]\n", p.Message, p.Name)
	}

	mark := "✔"
	if !o.Valid {
		mark = "✖"
	} else if len(o.Warnings) > 0 {
		mark = "⚠"
	}
	fmt.Fprintf(&sb, "\n%s   found %d problems, %d warnings\n", mark, len(o.Errors), len(o.Warnings))

	return sb.String()
}

// Summary is a one-line description suitable for a commit status.
func (o Outcome) Summary() string {
	if o.Ignored {
		return "ignored"
	}
	if len(o.Errors) == 0 {
		return fmt.Sprintf("OK (%d warnings)", len(o.Warnings))
	}

	names := lo.Uniq(lo.Map(o.Errors, func(p Problem, _ int) string { return p.Name }))
	return fmt.Sprintf("%d problems: %s", len(o.Errors), strings.Join(names, ", "))
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
