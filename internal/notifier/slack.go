package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/abhii242004/applymail/internal/model"
)

// Slack caps a text block at 3000 characters; leave headroom for the
// truncation notice.
const slackBodyLimit = 2800

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier posts finished drafts to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier returns a notifier that posts each draft to Slack via webhook.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify sends the draft as a Slack message using Block Kit. If Slack rate
// limits the webhook, the post is retried once after the advertised delay.
func (s *SlackNotifier) Notify(email model.Email) error {
	payload := buildPayload(email)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := resp.Header.Get("Retry-After")
		secs, _ := strconv.Atoi(retryAfter)
		if secs <= 0 {
			secs = 1
		}
		s.logger.Warn("slack rate limited, retrying", "retry_after_secs", secs)
		time.Sleep(time.Duration(secs) * time.Second)

		resp2, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("post to slack (retry): %w", err)
		}
		defer resp2.Body.Close()

		if resp2.StatusCode != http.StatusOK {
			return fmt.Errorf("slack returned %d on retry", resp2.StatusCode)
		}
		s.logger.Info("slack message sent", "draft_id", email.ID, "retried", true)
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned %d", resp.StatusCode)
	}
	s.logger.Info("slack message sent", "draft_id", email.ID)
	return nil
}

// Block Kit payload types.

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendTestMessage sends a dummy draft to verify the integration works.
func SendTestMessage(n model.Notifier) error {
	testEmail := model.Email{
		ID:         0,
		JobExcerpt: "Test Notification — Integration Verified",
		Model:      "test",
		Body:       "Subject: Test\n\nThis is a test draft from applymail.",
		CreatedAt:  time.Now(),
	}
	return n.Notify(testEmail)
}

func buildPayload(email model.Email) slackPayload {
	body := email.Body
	if len(body) > slackBodyLimit {
		body = body[:slackBodyLimit] + "\n… (truncated)"
	}

	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: "✉️ Application draft ready"},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Job:*\n" + email.JobExcerpt},
				{Type: "mrkdwn", Text: "*Model:*\n" + email.Model},
			},
		},
		{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: "```" + body + "```"},
		},
	}

	return slackPayload{Blocks: blocks}
}
