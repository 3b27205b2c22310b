package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v62/github"

	"github.com/zegl/turbo-lint/commitlint"
)

const (
	statusCommitCount = "commit-count"
	statusCommitLint  = "commitlint"

	// GitHub rejects longer status descriptions.
	maxDescriptionLength = 140
)

type server struct {
	linter   *commitlint.Linter
	config   *Config
	secret   []byte
	github   gitHubFactory
	access   *accessLog
	homepage string
}

type commitStatus struct {
	Context     string `json:"context"`
	State       string `json:"state"`
	Description string `json:"description"`
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), s.access.middleware())

	// Webhook handler
	r.POST("/gh-webhook", s.webhook)

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Index
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, s.homepage)
	})

	return r
}

func (s *server) webhook(c *gin.Context) {
	payload, err := github.ValidatePayload(c.Request, s.secret)
	if err != nil {
		log.Printf("Invalid webhook payload: %v", err)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	eventType := github.WebHookType(c.Request)

	// Event types this client cannot decode are acknowledged, not rejected.
	if github.EventForType(eventType) == nil {
		log.Printf("Skipping X-Github-Event: %s", eventType)
		c.Status(http.StatusNoContent)
		return
	}

	event, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		log.Printf("Unparsable webhook: %v", err)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	log.Printf("X-Github-Event: %s", eventType)

	switch event := event.(type) {
	case *github.PullRequestEvent:
		statuses, err := s.webhookPullRequest(c.Request.Context(), event)
		if err != nil {
			log.Println(err)
			c.AbortWithStatus(http.StatusBadGateway)
			return
		}
		if statuses == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, gin.H{"statuses": statuses})
	default:
		c.Status(http.StatusNoContent)
	}
}

var checkActions = map[string]struct{}{
	"opened":      {},
	"synchronize": {},
	"reopened":    {},
}

func (s *server) webhookPullRequest(ctx context.Context, ev *github.PullRequestEvent) ([]commitStatus, error) {
	// Action that we don't care about
	if _, ok := checkActions[ev.GetAction()]; !ok {
		return nil, nil
	}

	gh, err := s.github(ev.GetInstallation().GetID())
	if err != nil {
		return nil, err
	}

	owner := ev.GetRepo().GetOwner().GetLogin()
	repo := ev.GetRepo().GetName()
	sha := ev.GetPullRequest().GetHead().GetSHA()

	commits, err := gh.ListCommits(ctx, owner, repo, ev.GetNumber())
	if err != nil {
		return nil, err
	}

	statuses := s.evaluate(ev.GetPullRequest().GetCommits(), commits)

	for _, st := range statuses {
		err := gh.CreateStatus(ctx, owner, repo, sha, &github.RepoStatus{
			State:       github.String(st.State),
			Description: github.String(st.Description),
			Context:     github.String(st.Context),
		})
		if err != nil {
			return nil, err
		}
	}

	return statuses, nil
}

// evaluate decides the commit statuses for a pull request.
func (s *server) evaluate(commitCount int, commits []*github.RepositoryCommit) []commitStatus {
	var statuses []commitStatus

	// Amount of commits per PR
	if limit := s.config.PullRequest.MaxAllowedCommits; limit != nil {
		st := commitStatus{Context: statusCommitCount, State: "success", Description: "OK!"}
		if commitCount > *limit {
			st.State = "failure"
			st.Description = fmt.Sprintf("PR contains more than %d commit", *limit)
		}
		statuses = append(statuses, st)
	}

	st := commitStatus{Context: statusCommitLint, State: "success", Description: "OK!"}
	for _, commit := range commits {
		outcome := s.linter.Lint(commit.GetCommit().GetMessage())
		if outcome.Valid {
			continue
		}

		st.State = "failure"
		st.Description = truncate(fmt.Sprintf("%s: %s", shortSHA(commit.GetSHA()), outcome.Summary()), maxDescriptionLength)
		break
	}
	statuses = append(statuses, st)

	return statuses
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
