package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"study_buddy_backend/internal/config"
	"study_buddy_backend/pkg/monitoring"
	"study_buddy_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ChatCompleter sends one chat exchange to a language model and returns the
// assistant's reply text.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []AIChatMessage, opts CompletionOptions) (string, error)
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionOptions tune one request. Zero values are omitted from the payload.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
	JSON        bool
	// Purpose labels metrics and spans.
	Purpose string
}

type responseFormat struct {
	Type string `json:"type"`
}

type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []AIChatMessage `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// AIService talks to an OpenAI-compatible /chat/completions endpoint.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return NewAIServiceWithClient(cfg, &http.Client{Timeout: cfg.Timeout() + 5*time.Second})
}

func NewAIServiceWithClient(cfg config.AIConfig, client *http.Client) *AIService {
	return &AIService{config: cfg, client: client}
}

// ApplyConfig swaps endpoint, key and model for subsequent calls.
func (s *AIService) ApplyConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *AIService) settings() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *AIService) Complete(ctx context.Context, messages []AIChatMessage, opts CompletionOptions) (string, error) {
	cfg := s.settings()

	ctx, span := tracing.Tracer().Start(ctx, "ai.chat_completion")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.model", cfg.Model),
		attribute.String("ai.purpose", opts.Purpose),
	)

	start := time.Now()
	content, err := s.do(ctx, cfg, messages, opts)
	monitoring.GenerationDuration.WithLabelValues(opts.Purpose).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return content, nil
}

func (s *AIService) do(ctx context.Context, cfg config.AIConfig, messages []AIChatMessage, opts CompletionOptions) (string, error) {
	reqBody := ChatCompletionRequest{
		Model:       cfg.Model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.JSON {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, truncate(string(body), 512))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode AI response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
