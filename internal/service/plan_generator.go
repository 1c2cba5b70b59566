package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"study_buddy_backend/internal/config"
	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/util"
	"study_buddy_backend/pkg/logger"
	"study_buddy_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const (
	InsightEmptyFallback = "Great job on your learning journey! Keep up the excellent work."
	InsightErrorFallback = "You're making excellent progress! Stay consistent with your daily studies and you'll achieve your goals."
)

// GenerationSettings are the model parameters that can change at runtime.
type GenerationSettings struct {
	PlanTemperature    float64
	InsightTemperature float64
	InsightMaxTokens   int
	Timeout            time.Duration
}

func SettingsFromConfig(cfg config.AIConfig) GenerationSettings {
	s := GenerationSettings{
		PlanTemperature:    cfg.PlanTemperature,
		InsightTemperature: cfg.InsightTemperature,
		InsightMaxTokens:   cfg.InsightMaxTokens,
		Timeout:            cfg.Timeout(),
	}
	if s.PlanTemperature <= 0 {
		s.PlanTemperature = 0.7
	}
	if s.InsightTemperature <= 0 {
		s.InsightTemperature = 0.8
	}
	if s.InsightMaxTokens <= 0 {
		s.InsightMaxTokens = 150
	}
	return s
}

// PlanGenerator turns goal requests into study plans and progress into
// motivational text. It does not retry.
type PlanGenerator struct {
	completer ChatCompleter

	mu       sync.RWMutex
	settings GenerationSettings
}

func NewPlanGenerator(completer ChatCompleter, settings GenerationSettings) *PlanGenerator {
	return &PlanGenerator{completer: completer, settings: settings}
}

// ApplySettings takes effect for the next call.
func (g *PlanGenerator) ApplySettings(s GenerationSettings) {
	g.mu.Lock()
	g.settings = s
	g.mu.Unlock()
}

func (g *PlanGenerator) current() GenerationSettings {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.settings
}

func (g *PlanGenerator) GeneratePlan(ctx context.Context, req model.GoalRequest) (*model.PlanResult, error) {
	s := g.current()
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	content, err := g.completer.Complete(ctx, []AIChatMessage{
		{Role: "system", Content: planSystemPrompt},
		{Role: "user", Content: buildPlanPrompt(req)},
	}, CompletionOptions{
		Temperature: s.PlanTemperature,
		JSON:        true,
		Purpose:     "plan",
	})
	if err != nil {
		monitoring.PlanGenerations.WithLabelValues(monitoring.OutcomeFailed).Inc()
		return nil, &GenerationError{Cause: err}
	}

	plan, err := parsePlan(content)
	if err != nil {
		monitoring.PlanGenerations.WithLabelValues(monitoring.OutcomeMalformed).Inc()
		return nil, &GenerationError{Cause: err}
	}

	monitoring.PlanGenerations.WithLabelValues(monitoring.OutcomeOK).Inc()
	return plan, nil
}

// GenerateInsight never fails; problems are answered with a fixed message.
func (g *PlanGenerator) GenerateInsight(ctx context.Context, progress model.ProgressSnapshot) (string, bool) {
	s := g.current()
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	content, err := g.completer.Complete(ctx, []AIChatMessage{
		{Role: "system", Content: insightSystemPrompt},
		{Role: "user", Content: buildInsightPrompt(progress)},
	}, CompletionOptions{
		Temperature: s.InsightTemperature,
		MaxTokens:   s.InsightMaxTokens,
		Purpose:     "insight",
	})
	if err != nil {
		monitoring.InsightFallbacks.Inc()
		logger.Log.Warn("Failed to generate motivational insight", zap.Error(err))
		return InsightErrorFallback, false
	}
	content = strings.TrimSpace(content)
	if content == "" {
		monitoring.InsightFallbacks.Inc()
		logger.Log.Warn("Model returned an empty insight")
		return InsightEmptyFallback, false
	}
	return content, true
}

// IsMalformed reports whether err came from unusable model output.
func IsMalformed(err error) bool {
	return errors.Is(err, util.ErrMalformedGenerationResponse)
}
