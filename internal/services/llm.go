package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// LLMService is a thin client for an OpenAI-compatible chat-completions
// endpoint. Everything AI-shaped in the app (moderation, support messages,
// mood scoring, the companion) goes through this one call path.
type LLMService struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
}

var llmService *LLMService

// GetLLMService returns the singleton client, configured from LLM_BASE_URL,
// LLM_TOKEN and LLM_MODEL.
func GetLLMService() *LLMService {
	if llmService == nil {
		llmService = NewLLMService()
	}
	return llmService
}

func NewLLMService() *LLMService {
	return &LLMService{
		baseURL: os.Getenv("LLM_BASE_URL"),
		token:   os.Getenv("LLM_TOKEN"),
		model:   os.Getenv("LLM_MODEL"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a single system+user exchange and returns the raw reply text.
func (s *LLMService) Complete(ctx context.Context, system, user string) (string, error) {
	msgs := []ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
	return s.CompleteMessages(ctx, msgs)
}

// CompleteMessages sends a full message history and returns the raw reply
// text of the first choice.
func (s *LLMService) CompleteMessages(ctx context.Context, msgs []ChatMessage) (string, error) {
	if s.token == "" {
		return "", fmt.Errorf("LLM_TOKEN is not configured")
	}
	if s.baseURL == "" {
		return "", fmt.Errorf("LLM_BASE_URL is not configured")
	}

	reqBody := ChatRequest{
		Model:       s.model,
		Messages:    msgs,
		Temperature: 0.7,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
