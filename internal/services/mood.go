package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// MoodReading is the AI mood estimate attached to a journal entry.
type MoodReading struct {
	Score      int    `json:"score"` // 1 (very low) .. 10 (very bright)
	Label      string `json:"label"`
	Reflection string `json:"reflection"`
}

// MoodService scores journal entries with an LLM call. Scoring is an
// enrichment, never a gate: when it fails the entry is saved unscored.
type MoodService struct {
	llm *LLMService
}

var moodService *MoodService

func GetMoodService() *MoodService {
	if moodService == nil {
		moodService = NewMoodService(GetLLMService())
	}
	return moodService
}

func NewMoodService(llm *LLMService) *MoodService {
	return &MoodService{llm: llm}
}

const moodSystem = `You read one private journal entry from a young person and estimate its overall mood. Answer with a single JSON object and nothing else:
{"score": 1-10, "label": "one or two words", "reflection": "one gentle sentence reflecting the entry back, no advice"}
1 means very low, 10 means very bright.`

// Score returns the mood reading for content, or (nil, false) when the call
// or the parse failed.
func (s *MoodService) Score(ctx context.Context, content string) (*MoodReading, bool) {
	raw, err := s.llm.Complete(ctx, moodSystem, content)
	if err != nil {
		log.Printf("[mood] scoring call failed, saving entry unscored: %v", err)
		return nil, false
	}

	reading, err := parseMoodResponse(raw)
	if err != nil {
		log.Printf("[mood] unusable scoring response, saving entry unscored: %v", err)
		return nil, false
	}
	return reading, true
}

func parseMoodResponse(raw string) (*MoodReading, error) {
	obj, ok := extractJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var reading MoodReading
	dec := json.NewDecoder(strings.NewReader(obj))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&reading); err != nil {
		return nil, fmt.Errorf("invalid mood payload: %w", err)
	}

	if reading.Score < 1 || reading.Score > 10 {
		return nil, fmt.Errorf("score %d out of range", reading.Score)
	}
	return &reading, nil
}
