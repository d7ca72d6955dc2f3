package service

import (
	"context"
	"encoding/json"
	"time"

	"serein/internal/logger"
	"serein/internal/model"
	"serein/internal/service/ai"
)

// Fallback judgment values. Entries always carry a populated triple, even
// when the model is down or replies with garbage.
const (
	DefaultSentiment = "Neutral"
	DefaultScore     = 0.5
	DefaultFeedback  = "Thank you for sharing."
)

// DefaultJudgment returns the fallback triple used for new entries.
func DefaultJudgment() model.Judgment {
	return model.Judgment{
		Sentiment: DefaultSentiment,
		Score:     DefaultScore,
		Feedback:  DefaultFeedback,
	}
}

// SentimentAnalyzer derives a sentiment judgment from journal text.
//
// Analyze never fails: any model or parse error degrades to base, and
// fields missing from an otherwise valid reply fall back to base
// individually. base is DefaultJudgment for new entries and the stored
// judgment when re-analyzing an edit.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, content, username string, base model.Judgment) model.Judgment
}

type sentimentAnalyzer struct {
	provider ai.Provider
	limiter  *ai.RateLimiter
	timeout  time.Duration
}

// NewSentimentAnalyzer creates a sentiment analyzer on top of an AI provider.
// The provider is injected so tests can substitute a fake.
func NewSentimentAnalyzer(provider ai.Provider, limiter *ai.RateLimiter, timeout time.Duration) SentimentAnalyzer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &sentimentAnalyzer{
		provider: provider,
		limiter:  limiter,
		timeout:  timeout,
	}
}

func (s *sentimentAnalyzer) Analyze(ctx context.Context, content, username string, base model.Judgment) model.Judgment {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		logger.Warn("sentiment rate limit wait failed", "module", "service", "action", "analyze", "resource", "ai", "result", "failed", "error", err)
		return base
	}

	// Single attempt. A failed call must never block the journal write.
	raw, err := s.provider.Complete(ctx, ai.GetSentimentPrompt(username), content)
	if err != nil {
		logger.Warn("sentiment analysis call failed", "module", "service", "action", "analyze", "resource", "ai", "result", "failed", "provider", s.provider.Name(), "error", err)
		return base
	}

	span, ok := extractJSONObject(raw)
	if !ok {
		logger.Warn("sentiment reply had no parseable JSON", "module", "service", "action", "analyze", "resource", "ai", "result", "failed", "provider", s.provider.Name())
		return base
	}

	return mergeJudgment(span, base)
}

// mergeJudgment reads the three expected fields out of a JSON object span.
// Fallback is per-field and type-based: a field missing or of the wrong JSON
// type takes the base value, while falsy-but-valid values (score 0, empty
// strings) are kept.
func mergeJudgment(span string, base model.Judgment) model.Judgment {
	var fields map[string]any
	if err := json.Unmarshal([]byte(span), &fields); err != nil {
		return base
	}

	judgment := base
	if v, ok := fields["sentiment"].(string); ok {
		judgment.Sentiment = v
	}
	if v, ok := fields["sentimentScore"].(float64); ok {
		// Stored as-is, no clamping to [0,1].
		judgment.Score = v
	}
	if v, ok := fields["aiFeedback"].(string); ok {
		judgment.Feedback = v
	}
	return judgment
}

// extractJSONObject locates the first balanced-brace span in free text that
// parses as a JSON object. Models wrap their JSON in prose and markdown
// fences often enough that decoding the raw reply directly is hopeless.
func extractJSONObject(s string) (string, bool) {
	for start := 0; start < len(s); start++ {
		if s[start] != '{' {
			continue
		}
		end, ok := matchBrace(s, start)
		if !ok {
			continue
		}
		span := s[start : end+1]
		if json.Valid([]byte(span)) {
			return span, true
		}
	}
	return "", false
}

// matchBrace returns the index of the brace closing the one at start,
// ignoring braces inside JSON strings.
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
