package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateSupportMessage(t *testing.T) {
	server := chatServer(t, "Thank you for sharing what a hard week this has been. It takes courage to say it out loud.")
	s := NewSupportService(newTestLLM(t, server.URL))

	msg := s.Generate(context.Background(), "I had a rough week but I'm hanging in there")
	if !strings.HasPrefix(msg, SupportOpening) {
		t.Errorf("Support message must open with %q, got %q", SupportOpening, msg)
	}
	if !strings.Contains(msg, "hard week") {
		t.Errorf("Expected the generated message, got the fallback: %q", msg)
	}
}

func TestGenerateFallbackOnMissingOpening(t *testing.T) {
	server := chatServer(t, "That sounds really tough.")
	s := NewSupportService(newTestLLM(t, server.URL))

	msg := s.Generate(context.Background(), "rough week")
	if msg != supportFallback {
		t.Errorf("Expected fallback when opening clause is missing, got %q", msg)
	}
}

func TestGenerateFallbackOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	s := NewSupportService(newTestLLM(t, server.URL))

	msg := s.Generate(context.Background(), "rough week")
	if msg != supportFallback {
		t.Errorf("Expected fallback on error, got %q", msg)
	}
	if !strings.HasPrefix(supportFallback, SupportOpening) {
		t.Error("Fallback itself must open with the required clause")
	}
}
