package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func completionHandler(t *testing.T, text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad body: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("expected system + user messages, got %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": text}},
			},
		})
	}
}

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(completionHandler(t, "  A fresh take on launch day.  "))
	defer server.Close()

	client := New(server.URL, "test-key", "gpt-3.5-turbo", 5*time.Second)
	got, err := client.Generate(context.Background(), "launch day")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "A fresh take on launch day." {
		t.Errorf("expected trimmed completion, got %q", got)
	}
}

func TestGenerateEndpointError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New(server.URL, "test-key", "gpt-3.5-turbo", 5*time.Second)
	if _, err := client.Generate(context.Background(), "launch day"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestGenerateEmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := New(server.URL, "test-key", "gpt-3.5-turbo", 5*time.Second)
	if _, err := client.Generate(context.Background(), "launch day"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
