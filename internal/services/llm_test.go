package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// chatServer returns an httptest server answering every completion request
// with the given content, plus checks on method and auth.
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Expected Bearer test-token, got %s", r.Header.Get("Authorization"))
		}

		var resp ChatResponse
		resp.Choices = make([]struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		}, 1)
		resp.Choices[0].Message.Content = content
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestLLM(t *testing.T, serverURL string) *LLMService {
	t.Helper()
	t.Setenv("LLM_BASE_URL", serverURL)
	t.Setenv("LLM_TOKEN", "test-token")
	t.Setenv("LLM_MODEL", "test-model")
	return NewLLMService()
}

func TestComplete(t *testing.T) {
	server := chatServer(t, "a test reply")
	s := newTestLLM(t, server.URL)

	reply, err := s.Complete(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "a test reply" {
		t.Errorf("Expected %q, got %q", "a test reply", reply)
	}
}

func TestCompleteMissingToken(t *testing.T) {
	server := chatServer(t, "unused")
	t.Setenv("LLM_BASE_URL", server.URL)
	t.Setenv("LLM_TOKEN", "")
	t.Setenv("LLM_MODEL", "test-model")
	s := NewLLMService()

	if _, err := s.Complete(context.Background(), "sys", "user"); err == nil {
		t.Fatal("Expected error when LLM_TOKEN is missing")
	}
}

func TestCompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	s := newTestLLM(t, server.URL)

	if _, err := s.Complete(context.Background(), "sys", "user"); err == nil {
		t.Fatal("Expected error on 500 response")
	}
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	t.Cleanup(server.Close)
	s := newTestLLM(t, server.URL)

	if _, err := s.Complete(context.Background(), "sys", "user"); err == nil {
		t.Fatal("Expected error on empty choices")
	}
}
