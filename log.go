package main

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"golang.org/x/oauth2/google"
)

const accessLogName = "turbo-lint-access"

// accessLog ships request entries to Cloud Logging. A nil *accessLog drops
// everything, which is what runs when no project is configured.
type accessLog struct {
	client *logging.Client
	logger *logging.Logger
}

func newAccessLog(ctx context.Context, projectID string) (*accessLog, error) {
	if projectID == "" {
		return nil, nil
	}

	_, err := google.DefaultClient(ctx, logging.WriteScope)
	if err != nil {
		return nil, errors.Wrap(err, "google credentials")
	}

	// Creates a client.
	client, err := logging.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrapf(err, "logging client for %s", projectID)
	}

	return &accessLog{
		client: client,
		logger: client.Logger(accessLogName),
	}, nil
}

func (a *accessLog) Log(event string, data any) {
	if a == nil {
		return
	}

	// Adds an entry to the log buffer.
	a.logger.Log(logging.Entry{
		Payload: data,
		Labels: map[string]string{
			"github-event": event,
		},
	})
}

// Close flushes buffered entries to the Cloud Logging service.
func (a *accessLog) Close() {
	if a == nil {
		return
	}

	if err := a.client.Close(); err != nil {
		log.Printf("Failed to close logging client: %v", err)
	}
}

type accessEntry struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Status   int    `json:"status"`
	Latency  string `json:"latency"`
	ClientIP string `json:"clientIp"`
}

// middleware records every request in the access log.
func (a *accessLog) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		a.Log(c.GetHeader("X-GitHub-Event"), accessEntry{
			Method:   c.Request.Method,
			Path:     c.Request.URL.Path,
			Status:   c.Writer.Status(),
			Latency:  time.Since(start).String(),
			ClientIP: c.ClientIP(),
		})
	}
}
