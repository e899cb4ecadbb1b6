package notifier

import (
	"log/slog"

	"github.com/abhii242004/applymail/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier announces finished drafts on the given logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each finished draft via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the draft's ID, model, and job excerpt.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(email model.Email) error {
	n.logger.Info("draft ready",
		"id", email.ID,
		"model", email.Model,
		"job", email.JobExcerpt,
		"chars", len(email.Body),
	)
	return nil
}
