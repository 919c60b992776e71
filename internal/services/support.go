package services

import (
	"context"
	"log"
	"strings"
)

// SupportWriter produces the short empathetic acknowledgment shown alongside
// the "post anyway" choice on a support_needed verdict. It never fails the
// caller.
type SupportWriter interface {
	Generate(ctx context.Context, content string) string
}

// SupportService generates the acknowledgment with a second LLM call.
type SupportService struct {
	llm *LLMService
}

var supportService *SupportService

func GetSupportService() *SupportService {
	if supportService == nil {
		supportService = NewSupportService(GetLLMService())
	}
	return supportService
}

func NewSupportService(llm *LLMService) *SupportService {
	return &SupportService{llm: llm}
}

// SupportOpening is the required opening clause of every support message,
// generated or fallback.
const SupportOpening = "Thank you for sharing"

// supportFallback is used whenever generation fails or the model ignores the
// opening-clause requirement.
const supportFallback = SupportOpening + " this with us. Whatever you are carrying right now, you don't have to carry it alone - we're glad you're here."

const supportSystem = `You write for a peer-support community for young people. Reply with 1-2 warm, plain sentences acknowledging what the person wrote. You must begin with exactly "` + SupportOpening + `". Do not give advice, do not diagnose, do not mention that you are an AI.`

// Generate returns the empathetic acknowledgment for content. On any failure
// it returns the fixed fallback; callers never see an error.
func (s *SupportService) Generate(ctx context.Context, content string) string {
	reply, err := s.llm.Complete(ctx, supportSystem, content)
	if err != nil {
		log.Printf("[support] generation failed, using fallback: %v", err)
		return supportFallback
	}

	reply = strings.TrimSpace(reply)
	if !strings.HasPrefix(reply, SupportOpening) {
		log.Printf("[support] reply missing required opening clause, using fallback")
		return supportFallback
	}
	return reply
}
