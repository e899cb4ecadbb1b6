// Package draft owns the full drafting pipeline for one application email:
// render prompts → complete → sanitize → append closing → persist → notify.
package draft

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhii242004/applymail/internal/model"
	"github.com/abhii242004/applymail/internal/prompt"
	"github.com/abhii242004/applymail/internal/sanitize"
)

// excerptLen caps how much of the job description is kept for listings.
const excerptLen = 80

// Drafter generates finalized application emails.
type Drafter struct {
	completer model.Completer
	store     model.DraftStore
	notifier  model.Notifier
	signature sanitize.Signature
	modelName string
	logger    *slog.Logger
}

// NewDrafter creates a drafter wired with all its dependencies.
func NewDrafter(
	completer model.Completer,
	store model.DraftStore,
	notifier model.Notifier,
	signature sanitize.Signature,
	modelName string,
	logger *slog.Logger,
) *Drafter {
	return &Drafter{
		completer: completer,
		store:     store,
		notifier:  notifier,
		signature: signature,
		modelName: modelName,
		logger:    logger,
	}
}

// Generate runs one drafting pipeline. The returned email body always ends
// with the configured closing block, whatever the model produced.
func (d *Drafter) Generate(ctx context.Context, req model.Request) (model.Email, error) {
	if strings.TrimSpace(req.JobDescription) == "" || strings.TrimSpace(req.Resume) == "" {
		return model.Email{}, fmt.Errorf("job description and resume must be non-empty")
	}

	user, err := prompt.RenderUser(req.JobDescription, req.Resume)
	if err != nil {
		return model.Email{}, err
	}

	raw, err := d.completer.Complete(ctx, prompt.System, user)
	if err != nil {
		return model.Email{}, fmt.Errorf("drafting email: %w", err)
	}

	email := model.Email{
		JobExcerpt: jobExcerpt(req.JobDescription),
		Model:      d.modelName,
		Body:       sanitize.Finalize(raw, d.signature),
		CreatedAt:  time.Now().UTC(),
	}

	// A history or notification failure does not discard a successfully
	// generated draft; it is logged and the draft is still returned.
	id, err := d.store.Save(email)
	if err != nil {
		d.logger.Warn("failed to save draft to history", "error", err)
	} else {
		email.ID = id
	}

	if d.notifier != nil {
		if err := d.notifier.Notify(email); err != nil {
			d.logger.Warn("failed to deliver draft notification", "error", err)
		}
	}

	d.logger.Info("draft generated",
		"id", email.ID,
		"model", email.Model,
		"job", email.JobExcerpt,
		"chars", len(email.Body),
	)
	return email, nil
}

// jobExcerpt returns the first line of the job description, truncated for
// history listings.
func jobExcerpt(jd string) string {
	line := strings.TrimSpace(jd)
	if idx := strings.IndexByte(line, '\n'); idx != -1 {
		line = strings.TrimSpace(line[:idx])
	}
	if len(line) > excerptLen {
		line = line[:excerptLen]
	}
	return line
}
