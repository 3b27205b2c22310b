package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zegl/turbo-lint/commitlint"
)

const defaultConfigFile = "conf.yaml"

type Config struct {
	Extends        []string             `yaml:"extends"`
	DefaultIgnores *bool                `yaml:"defaultIgnores"`
	Ignores        []string             `yaml:"ignores"`
	Rules          map[string]RuleEntry `yaml:"rules"`

	PullRequest struct {
		MaxAllowedCommits *int `yaml:"maxAllowedCommits"`
	} `yaml:"pullRequest"`

	Commit struct {
		MaxSubjectLength      *int     `yaml:"maxSubjectLength"`
		MinSubjectLength      *int     `yaml:"minSubjectLength"`
		SubjectMustMatchRegex []string `yaml:"subjectMustMatchRegex"`
		MaxBodyMessageLength  *int     `yaml:"maxBodyMessageLength"`
	} `yaml:"commit"`
}

// RuleEntry is a rule written as [level, applicable, value] in YAML.
type RuleEntry commitlint.RuleConfig

func (r *RuleEntry) UnmarshalYAML(value *yaml.Node) error {
	var raw []any
	if err := value.Decode(&raw); err != nil {
		return errors.Wrapf(err, "line %d: rule must be a list", value.Line)
	}
	if len(raw) == 0 || len(raw) > 3 {
		return errors.Errorf("line %d: rule must be [level, applicable, value]", value.Line)
	}

	level, ok := raw[0].(int)
	if !ok {
		return errors.Errorf("line %d: rule level must be 0, 1 or 2", value.Line)
	}
	r.Level = commitlint.Level(level)
	r.Applicable = commitlint.Always

	if len(raw) > 1 {
		applicable, ok := raw[1].(string)
		if !ok {
			return errors.Errorf("line %d: rule applicable must be always or never", value.Line)
		}
		r.Applicable = commitlint.Applicable(applicable)
	}
	if len(raw) > 2 {
		r.Value = raw[2]
	}

	return nil
}

func (r RuleEntry) MarshalYAML() (any, error) {
	out := []any{int(r.Level), string(r.Applicable)}
	if r.Value != nil {
		out = append(out, r.Value)
	}
	return out, nil
}

// getConfig reads path. A missing default config file yields an empty
// Config, which resolves to the built-in configuration.
func getConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && path == defaultConfigFile {
		return &Config{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	return &config, nil
}

// Configuration layers the file on top of commitlint.Default.
func (c *Config) Configuration() (commitlint.Configuration, error) {
	cfg := commitlint.Default()

	if c.Extends != nil {
		cfg.Extends = c.Extends
	}
	if c.DefaultIgnores != nil {
		cfg.DefaultIgnores = *c.DefaultIgnores
	}

	for _, pattern := range c.Ignores {
		ignore, err := commitlint.IgnorePattern(pattern)
		if err != nil {
			return cfg, err
		}
		cfg.Ignores = append(cfg.Ignores, ignore)
	}

	cfg.Rules = commitlint.Rules{}

	// Commit subject length
	if c.Commit.MaxSubjectLength != nil {
		cfg.Rules["header-max-length"] = commitlint.RuleConfig{Level: commitlint.LevelError, Applicable: commitlint.Always, Value: *c.Commit.MaxSubjectLength}
	}
	if c.Commit.MinSubjectLength != nil {
		cfg.Rules["header-min-length"] = commitlint.RuleConfig{Level: commitlint.LevelError, Applicable: commitlint.Always, Value: *c.Commit.MinSubjectLength}
	}

	// Commit body row length
	if c.Commit.MaxBodyMessageLength != nil {
		for _, name := range []string{"body-max-line-length", "footer-max-line-length"} {
			cfg.Rules[name] = commitlint.RuleConfig{Level: commitlint.LevelError, Applicable: commitlint.Always, Value: *c.Commit.MaxBodyMessageLength}
		}
	}

	// Commit message regex, any of them may match
	if len(c.Commit.SubjectMustMatchRegex) > 0 {
		alternatives := make([]string, 0, len(c.Commit.SubjectMustMatchRegex))
		for _, re := range c.Commit.SubjectMustMatchRegex {
			alternatives = append(alternatives, fmt.Sprintf("(?:%s)", re))
		}
		cfg.Rules["header-match"] = commitlint.RuleConfig{Level: commitlint.LevelError, Applicable: commitlint.Always, Value: strings.Join(alternatives, "|")}
	}

	// Explicit rules win over the shorthand above.
	for name, rule := range c.Rules {
		cfg.Rules[name] = commitlint.RuleConfig(rule)
	}

	return cfg, nil
}

func (c *Config) linter() (*commitlint.Linter, error) {
	cfg, err := c.Configuration()
	if err != nil {
		return nil, err
	}

	return commitlint.NewLinter(cfg)
}
