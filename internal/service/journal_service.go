package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"serein/internal/logger"
	"serein/internal/model"
	"serein/internal/repository"
)

// DefaultTitle is used when an entry is added without one.
const DefaultTitle = "Daily Journal"

// NoEntriesSummary is returned for an empty 7-day window. No model call is
// made in that case.
const NoEntriesSummary = "No entries in the last 7 days to analyze. Start journaling today!"

// summaryWindow is the trailing range covered by WeeklySummary.
const summaryWindow = 7 * 24 * time.Hour

type JournalService interface {
	Add(ctx context.Context, userID int64, username, title, content string) (model.Journal, error)
	List(ctx context.Context, userID int64) ([]model.Journal, error)
	Update(ctx context.Context, userID, id int64, username, title, content string) (model.Journal, error)
	Delete(ctx context.Context, userID, id int64) error
	WeeklySummary(ctx context.Context, userID int64, username string) (string, error)
}

type journalService struct {
	journals   repository.JournalRepository
	analyzer   SentimentAnalyzer
	summarizer WeeklySummarizer
}

func NewJournalService(
	journals repository.JournalRepository,
	analyzer SentimentAnalyzer,
	summarizer WeeklySummarizer,
) JournalService {
	return &journalService{
		journals:   journals,
		analyzer:   analyzer,
		summarizer: summarizer,
	}
}

func (s *journalService) Add(ctx context.Context, userID int64, username, title, content string) (model.Journal, error) {
	if content == "" {
		return model.Journal{}, ErrInvalid
	}
	if title == "" {
		title = DefaultTitle
	}

	journal := model.Journal{
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	journal.ApplyJudgment(s.analyzer.Analyze(ctx, content, username, DefaultJudgment()))

	created, err := s.journals.Create(ctx, journal)
	if err != nil {
		return model.Journal{}, err
	}

	logger.Info("journal entry added", "module", "service", "action", "create", "resource", "journal", "result", "ok", "entry_id", created.ID, "sentiment", created.Sentiment)
	return created, nil
}

func (s *journalService) List(ctx context.Context, userID int64) ([]model.Journal, error) {
	return s.journals.ListByUser(ctx, userID)
}

func (s *journalService) Update(ctx context.Context, userID, id int64, username, title, content string) (model.Journal, error) {
	entry, err := s.journals.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Journal{}, ErrNotFound
		}
		return model.Journal{}, err
	}

	if title != "" {
		entry.Title = title
	}

	// Re-analysis happens only when the content actually changed; an edit
	// that touches just the title keeps the stored judgment byte-identical.
	if content != "" && content != entry.Content {
		entry.Content = content
		entry.ApplyJudgment(s.analyzer.Analyze(ctx, content, username, entry.Judgment()))
	}

	if err := s.journals.Update(ctx, entry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Journal{}, ErrNotFound
		}
		return model.Journal{}, err
	}

	return entry, nil
}

func (s *journalService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.journals.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	logger.Info("journal entry deleted", "module", "service", "action", "delete", "resource", "journal", "result", "ok", "entry_id", id)
	return nil
}

func (s *journalService) WeeklySummary(ctx context.Context, userID int64, username string) (string, error) {
	since := time.Now().Add(-summaryWindow)

	entries, err := s.journals.ListSince(ctx, userID, since)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return NoEntriesSummary, nil
	}

	return s.summarizer.Summarize(ctx, entries, username)
}
