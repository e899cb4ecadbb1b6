package draft

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/abhii242004/applymail/internal/model"
	"github.com/abhii242004/applymail/internal/sanitize"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var sig = sanitize.Signature{
	Availability: "Available immediately.",
	Name:         "Test Person",
	Email:        "test@example.com",
	Phone:        "555-0100",
	LinkedIn:     "https://linkedin.example/test",
	GitHub:       "https://github.example/test",
}

type stubCompleter struct {
	out       string
	err       error
	gotSystem string
	gotUser   string
}

func (s *stubCompleter) Complete(_ context.Context, system, user string) (string, error) {
	s.gotSystem = system
	s.gotUser = user
	return s.out, s.err
}

type memStore struct {
	saved  []model.Email
	err    error
	nextID int64
}

func (m *memStore) Save(e model.Email) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	m.saved = append(m.saved, e)
	return m.nextID, nil
}
func (m *memStore) List(int) ([]model.Email, error) { return m.saved, nil }
func (m *memStore) Get(int64) (model.Email, error)  { return model.Email{}, errors.New("not found") }
func (m *memStore) Cleanup(time.Duration) error     { return nil }

type recordingNotifier struct {
	notified []model.Email
	err      error
}

func (n *recordingNotifier) Notify(e model.Email) error {
	n.notified = append(n.notified, e)
	return n.err
}

func testRequest() model.Request {
	return model.Request{
		JobDescription: "Backend Engineer at Acme\nWe need Go experience.",
		Resume:         "Five years of Go and distributed systems.",
	}
}

func TestGenerate_FinalizesAndSaves(t *testing.T) {
	completer := &stubCompleter{out: "Subject: Role\n\nBody here.\n---END-OF-BODY---\nBest regards,\nModel"}
	store := &memStore{}

	d := NewDrafter(completer, store, nil, sig, "test-model", discardLogger())
	email, err := d.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.HasSuffix(email.Body, sig.Render()) {
		t.Error("draft body must end with the closing block")
	}
	if strings.Contains(email.Body, sanitize.StopMarker) {
		t.Error("stop marker leaked into the draft body")
	}
	if email.ID != 1 {
		t.Errorf("ID = %d, want 1", email.ID)
	}
	if email.Model != "test-model" {
		t.Errorf("Model = %q", email.Model)
	}
	if email.JobExcerpt != "Backend Engineer at Acme" {
		t.Errorf("JobExcerpt = %q", email.JobExcerpt)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected 1 saved draft, got %d", len(store.saved))
	}
}

func TestGenerate_SendsPromptsToCompleter(t *testing.T) {
	completer := &stubCompleter{out: "body"}
	d := NewDrafter(completer, &memStore{}, nil, sig, "m", discardLogger())

	if _, err := d.Generate(context.Background(), testRequest()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(completer.gotSystem, sanitize.StopMarker) {
		t.Error("system prompt must carry the stop-marker instruction")
	}
	if !strings.Contains(completer.gotUser, "Backend Engineer at Acme") ||
		!strings.Contains(completer.gotUser, "Five years of Go") {
		t.Errorf("user prompt missing inputs: %q", completer.gotUser)
	}
}

func TestGenerate_CompleterErrorPropagates(t *testing.T) {
	completer := &stubCompleter{err: errors.New("boom")}
	store := &memStore{}

	d := NewDrafter(completer, store, nil, sig, "m", discardLogger())
	if _, err := d.Generate(context.Background(), testRequest()); err == nil {
		t.Fatal("expected error when the completer fails")
	}
	if len(store.saved) != 0 {
		t.Error("nothing should be saved when generation fails")
	}
}

func TestGenerate_StoreFailureDoesNotDiscardDraft(t *testing.T) {
	completer := &stubCompleter{out: "body"}
	store := &memStore{err: errors.New("disk full")}

	d := NewDrafter(completer, store, nil, sig, "m", discardLogger())
	email, err := d.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if email.Body == "" {
		t.Error("draft body must survive a store failure")
	}
	if email.ID != 0 {
		t.Errorf("ID = %d, want 0 when the save failed", email.ID)
	}
}

func TestGenerate_NotifierReceivesDraft(t *testing.T) {
	completer := &stubCompleter{out: "body"}
	n := &recordingNotifier{}

	d := NewDrafter(completer, &memStore{}, n, sig, "m", discardLogger())
	if _, err := d.Generate(context.Background(), testRequest()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(n.notified) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(n.notified))
	}
	if !strings.HasSuffix(n.notified[0].Body, sig.Render()) {
		t.Error("notified draft must carry the finalized body")
	}
}

func TestGenerate_NotifierFailureIsNonFatal(t *testing.T) {
	completer := &stubCompleter{out: "body"}
	n := &recordingNotifier{err: errors.New("webhook down")}

	d := NewDrafter(completer, &memStore{}, n, sig, "m", discardLogger())
	if _, err := d.Generate(context.Background(), testRequest()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestGenerate_RejectsEmptyInputs(t *testing.T) {
	completer := &stubCompleter{out: "body"}
	d := NewDrafter(completer, &memStore{}, nil, sig, "m", discardLogger())

	for _, req := range []model.Request{
		{JobDescription: "", Resume: "resume"},
		{JobDescription: "jd", Resume: "   "},
	} {
		if _, err := d.Generate(context.Background(), req); err == nil {
			t.Errorf("Generate(%+v): expected error for empty input", req)
		}
	}
	if completer.gotUser != "" {
		t.Error("completer must not be called for empty inputs")
	}
}

func TestJobExcerpt(t *testing.T) {
	if got := jobExcerpt("  First line here  \nsecond line"); got != "First line here" {
		t.Errorf("jobExcerpt = %q", got)
	}
	long := strings.Repeat("a", 200)
	if got := jobExcerpt(long); len(got) != excerptLen {
		t.Errorf("len(jobExcerpt) = %d, want %d", len(got), excerptLen)
	}
}
