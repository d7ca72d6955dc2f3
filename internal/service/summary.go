package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"serein/internal/logger"
	"serein/internal/model"
	"serein/internal/service/ai"
)

// WeeklySummarizer turns a window of journal entries into a prose summary.
// The model output is returned verbatim; there is no structured parsing here.
type WeeklySummarizer interface {
	Summarize(ctx context.Context, entries []model.Journal, username string) (string, error)
}

type weeklySummarizer struct {
	provider ai.Provider
	limiter  *ai.RateLimiter
	timeout  time.Duration
}

// NewWeeklySummarizer creates a summarizer on top of an AI provider.
func NewWeeklySummarizer(provider ai.Provider, limiter *ai.RateLimiter, timeout time.Duration) WeeklySummarizer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &weeklySummarizer{
		provider: provider,
		limiter:  limiter,
		timeout:  timeout,
	}
}

func (s *weeklySummarizer) Summarize(ctx context.Context, entries []model.Journal, username string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	summary, err := s.provider.Complete(ctx, ai.GetWeeklySummaryPrompt(username), formatEntries(entries))
	if err != nil {
		logger.Warn("weekly summary call failed", "module", "service", "action", "summarize", "resource", "ai", "result", "failed", "provider", s.provider.Name(), "error", err)
		return "", fmt.Errorf("generate summary: %w", err)
	}

	logger.Info("weekly summary generated", "module", "service", "action", "summarize", "resource", "ai", "result", "ok", "entries", len(entries))
	return summary, nil
}

// formatEntries serializes entries as one dated line each, oldest first, so
// the model sees the week in order.
func formatEntries(entries []model.Journal) string {
	var b strings.Builder
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(&b, "[%s] (%s) %s\n", e.CreatedAt.UTC().Format("2006-01-02"), e.Sentiment, e.Content)
	}
	return b.String()
}
