package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zegl/turbo-lint/commitlint"
	"github.com/zegl/turbo-lint/gitlog"
)

var cli struct {
	Config string `short:"c" help:"Configuration file." default:"conf.yaml" env:"TURBO_LINT_CONFIG"`

	Lint        LintCmd        `cmd:"" default:"withargs" help:"Lint commit messages from stdin, a file or a git range."`
	PrintConfig PrintConfigCmd `cmd:"" help:"Print the resolved configuration."`
	Serve       ServeCmd       `cmd:"" help:"Run the GitHub App webhook server."`
}

type appContext struct {
	config *Config
	linter *commitlint.Linter
	stdin  io.Reader
	stdout io.Writer
}

func main() {
	ctx := kong.Parse(&cli, kong.ShortUsageOnError())

	config, err := getConfig(cli.Config)
	ctx.FatalIfErrorf(err)

	linter, err := config.linter()
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&appContext{
		config: config,
		linter: linter,
		stdin:  os.Stdin,
		stdout: os.Stdout,
	})
	ctx.FatalIfErrorf(err)
}

var errLintFailed = errors.New("commit message lint failed")

type LintCmd struct {
	Edit  string `short:"e" help:"Read the message from a file, as a commit-msg hook does." type:"existingfile"`
	From  string `help:"Lower end of the git range to lint (exclusive)."`
	To    string `help:"Upper end of the git range to lint. Defaults to HEAD."`
	Repo  string `help:"Repository to read the range from." default:"." type:"existingdir"`
	Limit int    `help:"Most commits to read when --from is not set." default:"1000"`
}

func (l *LintCmd) Run(ctx *appContext) error {
	messages, err := l.messages(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for _, msg := range messages {
		outcome := ctx.linter.Lint(msg)
		fmt.Fprint(ctx.stdout, outcome.Format())
		if !outcome.Valid {
			failed++
		}
	}

	if failed > 0 {
		return errors.Wrapf(errLintFailed, "%d of %d messages", failed, len(messages))
	}
	return nil
}

func (l *LintCmd) messages(ctx *appContext) ([]string, error) {
	switch {
	case l.Edit != "":
		data, err := os.ReadFile(l.Edit)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", l.Edit)
		}
		return []string{string(data)}, nil

	case l.From != "" || l.To != "":
		repo, err := gitlog.Open(l.Repo)
		if err != nil {
			return nil, err
		}
		limit := l.Limit
		if limit <= 0 {
			limit = gitlog.DefaultLimit
		}
		commits, err := gitlog.RangeLimit(repo, l.From, l.To, limit)
		if err != nil {
			return nil, err
		}
		messages := make([]string, 0, len(commits))
		for _, c := range commits {
			messages = append(messages, c.Message)
		}
		return messages, nil

	default:
		data, err := io.ReadAll(ctx.stdin)
		if err != nil {
			return nil, errors.Wrap(err, "read stdin")
		}
		return []string{string(data)}, nil
	}
}

type PrintConfigCmd struct{}

func (p *PrintConfigCmd) Run(ctx *appContext) error {
	cfg := ctx.linter.Config()

	rules := map[string]RuleEntry{}
	for name, rule := range ctx.linter.Rules() {
		rules[name] = RuleEntry(rule)
	}

	out := struct {
		Extends        []string             `yaml:"extends"`
		DefaultIgnores bool                 `yaml:"defaultIgnores"`
		Ignores        int                  `yaml:"ignores"`
		Rules          map[string]RuleEntry `yaml:"rules"`
	}{cfg.Extends, cfg.DefaultIgnores, len(cfg.Ignores), rules}

	enc := yaml.NewEncoder(ctx.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "encode config")
	}
	return enc.Close()
}

type ServeCmd struct {
	Port          int    `help:"HTTP port." default:"80" env:"PORT"`
	GitHubAppID   int64  `name:"github-app-id" help:"GitHub App ID." default:"5073" env:"GITHUB_APP_ID"`
	GitHubKey     string `name:"github-key" help:"GitHub App Private Key." type:"existingfile" env:"GITHUB_APP_KEY"`
	WebhookSecret string `help:"Secret used to sign webhook payloads." env:"GITHUB_WEBHOOK_SECRET"`
	GCPProject    string `name:"gcp-project" help:"Google Cloud project receiving the access log." env:"GOOGLE_CLOUD_PROJECT"`
	Homepage      string `help:"Where / redirects to." default:"https://github.com/zegl/turbo-lint"`
}

func (s *ServeCmd) Run(ctx *appContext) error {
	access, err := newAccessLog(context.Background(), s.GCPProject)
	if err != nil {
		log.Printf("Access log disabled: %v", err)
	}
	defer access.Close()

	gin.SetMode(gin.ReleaseMode)

	srv := &server{
		linter:   ctx.linter,
		config:   ctx.config,
		secret:   []byte(s.WebhookSecret),
		github:   installationClients(s.GitHubAppID, s.GitHubKey),
		access:   access,
		homepage: s.Homepage,
	}

	log.Printf("Listening on :%d", s.Port)
	return srv.router().Run(":" + strconv.Itoa(s.Port))
}
