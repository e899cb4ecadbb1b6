package model

import (
	"context"
	"time"
)

// Request carries the two inputs for a single drafting run.
// Both fields are trimmed, non-empty text by the time they reach the drafter.
type Request struct {
	JobDescription string
	Resume         string
}

// Email is a finalized application email draft.
type Email struct {
	ID         int64
	JobExcerpt string // first line of the job description, for listings
	Model      string // LLM model that produced the body
	Body       string // sanitized body + closing block
	CreatedAt  time.Time
}

// Completer sends a system/user message pair to an LLM and returns the raw
// text response.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// DraftStore persists finished drafts for later review.
type DraftStore interface {
	Save(email Email) (int64, error)
	List(limit int) ([]Email, error)
	Get(id int64) (Email, error)
	Cleanup(olderThan time.Duration) error
}

// Notifier delivers a finished draft out-of-band (e.g. Slack).
type Notifier interface {
	Notify(email Email) error
}
