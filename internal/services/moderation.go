package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"haven/internal/models"
)

// Classifier produces a moderation verdict for one piece of submitted text.
// Classification never returns an error: when the check itself fails the
// verdict is a fail-open "safe" so an outage never silences the community.
type Classifier interface {
	Classify(ctx context.Context, content, parentContext string) models.ModerationAnalysis
}

// ModerationService classifies submitted text with a single LLM call.
type ModerationService struct {
	llm *LLMService
}

var moderationService *ModerationService

func GetModerationService() *ModerationService {
	if moderationService == nil {
		moderationService = NewModerationService(GetLLMService())
	}
	return moderationService
}

func NewModerationService(llm *LLMService) *ModerationService {
	return &ModerationService{llm: llm}
}

const moderationSystem = `You are a safety reviewer for an anonymous peer-support community for young people. You answer with a single JSON object and nothing else.`

// The rubric is ordered by severity; the model must pick the FIRST category
// that applies. harmful_instruction must be reachable from context alone: a
// short affirmative reply under a post about suicide is an instruction
// toward self-harm even when the reply text looks neutral.
const moderationRubric = `Classify the submitted text into exactly one category. Check the categories in this order and pick the first that applies:

1. "urgent_risk" - the AUTHOR of the text expresses first-person, immediate intent to harm themselves.
2. "harmful_instruction" - the text instructs, urges or encourages ANOTHER person toward self-harm or dangerous action. Weigh the text against the context: a short agreement or encouragement replying to a post about suicide or self-harm belongs here even if the text alone looks neutral.
3. "support_needed" - not an emergency, but the text expresses significant distress, hopelessness or sustained sadness.
4. "safe" - none of the above.

Answer with one JSON object of this exact shape:
{"category": "...", "reason": "one short sentence", "severity": 1-5, "used_context": true|false}

"severity" estimates intensity for urgent_risk and support_needed (use 1 otherwise). "used_context" is true only when the category was reached by weighing the text against the context.`

// failOpenReason is the reason recorded on verdicts produced when the
// classification call itself failed.
const failOpenReason = "moderation check could not be completed"

type classifierPayload struct {
	Category    string `json:"category"`
	Reason      string `json:"reason"`
	Severity    int    `json:"severity"`
	UsedContext bool   `json:"used_context"`
}

// Classify runs the rubric over content. parentContext carries the parent
// post's content when classifying a comment, empty otherwise.
func (s *ModerationService) Classify(ctx context.Context, content, parentContext string) models.ModerationAnalysis {
	var prompt strings.Builder
	prompt.WriteString(moderationRubric)
	if parentContext != "" {
		prompt.WriteString("\n\nContext (the post being replied to):\n")
		prompt.WriteString(parentContext)
	}
	prompt.WriteString("\n\nSubmitted text:\n")
	prompt.WriteString(content)

	raw, err := s.llm.Complete(ctx, moderationSystem, prompt.String())
	if err != nil {
		log.Printf("[moderation] classification call failed, failing open: %v", err)
		return FailOpenVerdict()
	}

	payload, err := parseClassifierResponse(raw)
	if err != nil {
		log.Printf("[moderation] unusable classifier response, failing open: %v", err)
		return FailOpenVerdict()
	}

	return buildAnalysis(payload)
}

// FailOpenVerdict is the verdict used when classification could not be
// completed: the submission proceeds as safe, with CheckCompleted false so
// the stored analysis records that no real check happened.
func FailOpenVerdict() models.ModerationAnalysis {
	return models.ModerationAnalysis{
		Category: models.CategorySafe,
		Reason:   failOpenReason,
		Safe:     &models.SafeAnalysis{CheckCompleted: false},
	}
}

// parseClassifierResponse recovers the JSON object from a raw model reply.
// The model is not guaranteed to return clean JSON; surrounding prose is
// stripped before a strict decode, and an unknown category is an error.
func parseClassifierResponse(raw string) (classifierPayload, error) {
	var payload classifierPayload

	obj, ok := extractJSONObject(raw)
	if !ok {
		return payload, fmt.Errorf("no JSON object in response")
	}

	dec := json.NewDecoder(strings.NewReader(obj))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return payload, fmt.Errorf("invalid classifier payload: %w", err)
	}

	if !models.ValidCategory(payload.Category) {
		return payload, fmt.Errorf("unknown category %q", payload.Category)
	}
	if payload.Reason == "" {
		payload.Reason = "no reason given"
	}
	return payload, nil
}

func buildAnalysis(p classifierPayload) models.ModerationAnalysis {
	analysis := models.ModerationAnalysis{
		Category: models.ModerationCategory(p.Category),
		Reason:   p.Reason,
	}
	severity := p.Severity
	if severity < 1 {
		severity = 1
	}
	if severity > 5 {
		severity = 5
	}

	switch analysis.Category {
	case models.CategoryUrgentRisk:
		analysis.UrgentRisk = &models.UrgentRiskAnalysis{Severity: severity}
	case models.CategoryHarmfulInstruction:
		analysis.HarmfulInstruction = &models.HarmfulInstructionAnalysis{UsedContext: p.UsedContext}
	case models.CategorySupportNeeded:
		analysis.SupportNeeded = &models.SupportNeededAnalysis{Severity: severity}
	case models.CategorySafe:
		analysis.Safe = &models.SafeAnalysis{CheckCompleted: true}
	}
	return analysis
}

// extractJSONObject returns the first balanced {...} object in s, skipping
// braces inside JSON strings. Returns false when no balanced object exists.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
