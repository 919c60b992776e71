package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMoodScore(t *testing.T) {
	server := chatServer(t, `Here is my read of the entry:
{"score": 7, "label": "hopeful", "reflection": "It sounds like today felt lighter than the last few."}`)
	defer server.Close()

	svc := NewMoodService(newTestLLM(t, server.URL))
	reading, ok := svc.Score(context.Background(), "went for a walk and actually enjoyed it")
	if !ok {
		t.Fatal("expected a mood reading")
	}
	if reading.Score != 7 {
		t.Errorf("score = %d, want 7", reading.Score)
	}
	if reading.Label != "hopeful" {
		t.Errorf("label = %q, want %q", reading.Label, "hopeful")
	}
	if reading.Reflection == "" {
		t.Error("reflection should not be empty")
	}
}

func TestMoodScoreOutOfRange(t *testing.T) {
	server := chatServer(t, `{"score": 14, "label": "impossible", "reflection": "..."}`)
	defer server.Close()

	svc := NewMoodService(newTestLLM(t, server.URL))
	if _, ok := svc.Score(context.Background(), "some entry"); ok {
		t.Error("an out-of-range score must be discarded")
	}
}

func TestMoodScoreNoJSON(t *testing.T) {
	server := chatServer(t, "I'd rate this a seven out of ten overall.")
	defer server.Close()

	svc := NewMoodService(newTestLLM(t, server.URL))
	if _, ok := svc.Score(context.Background(), "some entry"); ok {
		t.Error("prose without a JSON object must not produce a reading")
	}
}

func TestMoodScoreServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewMoodService(newTestLLM(t, server.URL))
	if _, ok := svc.Score(context.Background(), "some entry"); ok {
		t.Error("a failed call must leave the entry unscored")
	}
}
