package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abhii242004/applymail/internal/model"
)

func chatOK(content string) chatResponse {
	var resp chatResponse
	resp.Choices = []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}{
		{Message: struct {
			Content string `json:"content"`
		}{Content: content}},
	}
	return resp
}

func makeTestServer(t *testing.T, statusCode int, body any) (*httptest.Server, *http.Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, srv.Client()
}

func TestComplete_Success(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, chatOK("Subject: Hello\n\nBody."))

	p := NewOpenAIProvider(srv.URL, "test-key", "test-model", 0, client)
	got, err := p.Complete(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Subject: Hello\n\nBody." {
		t.Errorf("got %q, want raw content", got)
	}
}

func TestComplete_SendsPayloadAndAuthHeader(t *testing.T) {
	var gotReq chatRequest
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatOK("ok"))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "my-secret-key", "llama-3.3-70b-versatile", 0, srv.Client())
	_, _ = p.Complete(context.Background(), "be precise", "draft it")

	if gotAuth != "Bearer my-secret-key" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer my-secret-key")
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q, want /chat/completions", gotPath)
	}
	if gotReq.Model != "llama-3.3-70b-versatile" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 2 ||
		gotReq.Messages[0].Role != "system" || gotReq.Messages[0].Content != "be precise" ||
		gotReq.Messages[1].Role != "user" || gotReq.Messages[1].Content != "draft it" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestComplete_HTTPErrorCarriesStatus(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusInternalServerError, map[string]string{"error": "server error"})

	p := NewOpenAIProvider(srv.URL, "key", "m", 0, client)
	_, err := p.Complete(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error on 5xx response")
	}
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != 500 {
		t.Fatalf("expected HTTPError with status 500, got %v", err)
	}
}

func TestComplete_RateLimitedParsesRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "key", "m", 0, srv.Client())
	_, err := p.Complete(context.Background(), "s", "u")
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != 429 {
		t.Fatalf("expected HTTPError with status 429, got %v", err)
	}
	if httpErr.RetryAfter != 7*time.Second {
		t.Errorf("RetryAfter = %v, want 7s", httpErr.RetryAfter)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, chatResponse{})

	p := NewOpenAIProvider(srv.URL, "key", "m", 0, client)
	if _, err := p.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error when model returns no choices")
	}
}

func TestComplete_EmptyContent(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, chatOK(""))

	p := NewOpenAIProvider(srv.URL, "key", "m", 0, client)
	if _, err := p.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error when model returns empty content")
	}
}

func TestComplete_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "key", "m", 0, srv.Client())
	if _, err := p.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error on malformed response body")
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter(""); got != 0 {
		t.Errorf("empty header = %v, want 0", got)
	}
	if got := parseRetryAfter("nonsense"); got != 0 {
		t.Errorf("unparseable header = %v, want 0", got)
	}
	if got := parseRetryAfter("30"); got != 30*time.Second {
		t.Errorf("parseRetryAfter(30) = %v, want 30s", got)
	}
}
