package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"haven/internal/models"
)

func TestClassifyUrgentRisk(t *testing.T) {
	// Models wrap JSON in prose; the classifier must dig it out.
	server := chatServer(t, `Here is my assessment:
{"category": "urgent_risk", "reason": "first-person immediate intent", "severity": 5, "used_context": false}
Let me know if you need anything else.`)
	s := NewModerationService(newTestLLM(t, server.URL))

	verdict := s.Classify(context.Background(), "I will harm myself tonight", "")
	if verdict.Category != models.CategoryUrgentRisk {
		t.Fatalf("Expected urgent_risk, got %s", verdict.Category)
	}
	if verdict.UrgentRisk == nil || verdict.UrgentRisk.Severity != 5 {
		t.Errorf("Expected urgent_risk variant with severity 5, got %+v", verdict.UrgentRisk)
	}
	if verdict.Safe != nil || verdict.SupportNeeded != nil || verdict.HarmfulInstruction != nil {
		t.Error("Only the urgent_risk variant should be set")
	}
}

func TestClassifySendsParentContext(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req ChatRequest
		json.Unmarshal(body, &req)
		for _, m := range req.Messages {
			if m.Role == "user" {
				gotPrompt = m.Content
			}
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"category\":\"harmful_instruction\",\"reason\":\"encourages self-harm given context\",\"severity\":1,\"used_context\":true}"}}]}`))
	}))
	t.Cleanup(server.Close)
	s := NewModerationService(newTestLLM(t, server.URL))

	verdict := s.Classify(context.Background(), "you should do it too", "my friend attempted suicide last night")
	if verdict.Category != models.CategoryHarmfulInstruction {
		t.Fatalf("Expected harmful_instruction, got %s", verdict.Category)
	}
	if verdict.HarmfulInstruction == nil || !verdict.HarmfulInstruction.UsedContext {
		t.Errorf("Expected used_context to be true, got %+v", verdict.HarmfulInstruction)
	}
	if !strings.Contains(gotPrompt, "my friend attempted suicide last night") {
		t.Error("Parent context was not embedded in the classification prompt")
	}
	if !strings.Contains(gotPrompt, "you should do it too") {
		t.Error("Submitted text was not embedded in the classification prompt")
	}
}

func TestClassifyRubricOrder(t *testing.T) {
	// The rubric must list categories most-severe first so the model picks
	// urgent_risk before anything else.
	urgent := strings.Index(moderationRubric, "urgent_risk")
	harmful := strings.Index(moderationRubric, "harmful_instruction")
	support := strings.Index(moderationRubric, "support_needed")
	safe := strings.Index(moderationRubric, `"safe"`)
	if !(urgent < harmful && harmful < support && support < safe) {
		t.Error("Rubric categories are not ordered by severity")
	}
}

func TestClassifyFailOpen(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
		},
		{
			name: "no JSON in reply",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices":[{"message":{"content":"I cannot help with that."}}]}`))
			},
		},
		{
			name: "unknown category",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices":[{"message":{"content":"{\"category\":\"spam\",\"reason\":\"x\",\"severity\":1,\"used_context\":false}"}}]}`))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			t.Cleanup(server.Close)
			s := NewModerationService(newTestLLM(t, server.URL))

			verdict := s.Classify(context.Background(), "anything", "")
			if verdict.Category != models.CategorySafe {
				t.Fatalf("Expected fail-open safe, got %s", verdict.Category)
			}
			if verdict.Safe == nil || verdict.Safe.CheckCompleted {
				t.Error("Fail-open verdict must record that the check did not complete")
			}
			if verdict.Reason != failOpenReason {
				t.Errorf("Expected fail-open reason, got %q", verdict.Reason)
			}
		})
	}
}

func TestClassifyFailOpenWithoutCredential(t *testing.T) {
	t.Setenv("LLM_BASE_URL", "http://localhost:0")
	t.Setenv("LLM_TOKEN", "")
	t.Setenv("LLM_MODEL", "test-model")
	s := NewModerationService(NewLLMService())

	verdict := s.Classify(context.Background(), "anything", "")
	if verdict.Category != models.CategorySafe {
		t.Fatalf("Expected fail-open safe without credential, got %s", verdict.Category)
	}
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{`{"a":1}`, `{"a":1}`, true},
		{`prose before {"a":1} prose after`, `{"a":1}`, true},
		{`nested {"a":{"b":2}} tail`, `{"a":{"b":2}}`, true},
		{`braces in strings {"a":"{not a close}"}`, `{"a":"{not a close}"}`, true},
		{`escaped quote {"a":"say \"hi\" {"} rest`, `{"a":"say \"hi\" {"}`, true},
		{`no object at all`, ``, false},
		{`never closes {"a":1`, ``, false},
	}

	for _, tc := range cases {
		got, ok := extractJSONObject(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("extractJSONObject(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
