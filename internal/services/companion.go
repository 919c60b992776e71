package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"haven/internal/models"
)

// CompanionService drives the AI chat companion. Every user message passes
// through the moderation classifier first; an urgent_risk signal
// short-circuits to the fixed crisis reply without calling the companion
// model at all.
type CompanionService struct {
	llm        *LLMService
	classifier Classifier
}

var companionService *CompanionService

func GetCompanionService() *CompanionService {
	if companionService == nil {
		companionService = NewCompanionService(GetLLMService(), GetModerationService())
	}
	return companionService
}

func NewCompanionService(llm *LLMService, classifier Classifier) *CompanionService {
	return &CompanionService{llm: llm, classifier: classifier}
}

// historyWindow bounds how many prior messages travel with each turn.
const historyWindow = 20

const companionPersona = `You are Fern, a warm, patient companion inside a wellness app for young people. Listen first, reflect feelings back in plain language, and keep replies to a few sentences. You are not a therapist and never diagnose, prescribe, or promise confidentiality beyond the app. If someone mentions wanting to hurt themselves, gently point them to the crisis resources in the app.`

const companionFallback = "I'm having trouble finding my words right now, but I'm still here with you. Could you tell me that again in a moment?"

// Reply produces the companion's answer to userMsg given the prior session
// history (oldest first). It never returns an error; degraded paths produce
// fixed replies.
func (s *CompanionService) Reply(ctx context.Context, history []models.ChatMessage, userMsg string) string {
	verdict := s.classifier.Classify(ctx, userMsg, "")
	if verdict.Category == models.CategoryUrgentRisk {
		return crisisReply()
	}

	msgs := make([]ChatMessage, 0, len(history)+2)
	msgs = append(msgs, ChatMessage{Role: "system", Content: companionPersona})

	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}
	for _, m := range history[start:] {
		msgs = append(msgs, ChatMessage{Role: m.Role, Content: m.Content})
	}
	msgs = append(msgs, ChatMessage{Role: "user", Content: userMsg})

	reply, err := s.llm.CompleteMessages(ctx, msgs)
	if err != nil {
		log.Printf("[companion] completion failed, using fallback: %v", err)
		return companionFallback
	}
	return strings.TrimSpace(reply)
}

// crisisReply is the fixed message sent when a chat message signals urgent
// risk. Built from the same crisis list the community flow surfaces.
func crisisReply() string {
	var b strings.Builder
	b.WriteString("It sounds like you are going through something really serious right now, and I want you to talk to someone who can truly help:\n")
	for _, r := range CrisisResources() {
		fmt.Fprintf(&b, "\n- %s: %s", r.Name, r.Contact)
	}
	b.WriteString("\n\nYou deserve support from a real person, right now. I'll be here afterwards too.")
	return b.String()
}
