package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/osero2000/coddee-news-app/internal/config"
)

func newTestClient(endpoint string) *Client {
	return NewClient(config.GeminiConfig{
		Endpoint: endpoint,
		Model:    "gemini-test",
		APIKey:   "test-key",
	})
}

func TestGenerateExtractsCandidateText(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "prompt text" {
			t.Errorf("unexpected request body: %+v", req)
		}

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"part one, "},{"text":"part two"}]}}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	c.httpClient = server.Client()

	got, err := c.Generate(context.Background(), "prompt text")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "part one, part two" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestGenerateSurfacesHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	c.httpClient = server.Client()

	if _, err := c.Generate(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for 429 response")
	}
}

func TestGenerateRejectsEmptyCandidates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	c.httpClient = server.Client()

	if _, err := c.Generate(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for empty candidates")
	}
}

func TestGenerateRequiresAPIKey(t *testing.T) {
	t.Parallel()

	c := NewClient(config.GeminiConfig{Endpoint: "https://example.com", Model: "m"})
	if _, err := c.Generate(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected misconfiguration error without api key")
	}
}
