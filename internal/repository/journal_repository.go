package repository

import (
	"context"
	"database/sql"
	"time"

	"serein/internal/model"
	"serein/internal/snowflake"
)

//go:generate mockgen -destination=mock/repository_mock.go -package=mock serein/internal/repository JournalRepository,UserRepository

// JournalRepository persists journal entries. Every lookup that names an
// entry is scoped to (id, user_id) jointly, so an entry owned by someone
// else is indistinguishable from a missing one.
type JournalRepository interface {
	Create(ctx context.Context, journal model.Journal) (model.Journal, error)
	GetByID(ctx context.Context, id, userID int64) (model.Journal, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Journal, error)
	ListSince(ctx context.Context, userID int64, since time.Time) ([]model.Journal, error)
	Update(ctx context.Context, journal model.Journal) error
	Delete(ctx context.Context, id, userID int64) error
}

type journalRepository struct {
	db dbtx
}

func NewJournalRepository(db dbtx) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Create(ctx context.Context, journal model.Journal) (model.Journal, error) {
	journal.ID = snowflake.NextID()
	now := time.Now().UTC()
	journal.CreatedAt = now
	journal.UpdatedAt = now

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO journals (id, user_id, title, content, sentiment, sentiment_score, ai_feedback, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		journal.ID,
		journal.UserID,
		journal.Title,
		journal.Content,
		journal.Sentiment,
		journal.SentimentScore,
		journal.AIFeedback,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return model.Journal{}, err
	}

	return journal, nil
}

func (r *journalRepository) GetByID(ctx context.Context, id, userID int64) (model.Journal, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, title, content, sentiment, sentiment_score, ai_feedback, created_at, updated_at
		 FROM journals WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanJournal(row)
}

func (r *journalRepository) ListByUser(ctx context.Context, userID int64) ([]model.Journal, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, title, content, sentiment, sentiment_score, ai_feedback, created_at, updated_at
		 FROM journals WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJournals(rows)
}

func (r *journalRepository) ListSince(ctx context.Context, userID int64, since time.Time) ([]model.Journal, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, title, content, sentiment, sentiment_score, ai_feedback, created_at, updated_at
		 FROM journals WHERE user_id = ? AND created_at >= ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
		formatTime(since),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJournals(rows)
}

func (r *journalRepository) Update(ctx context.Context, journal model.Journal) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE journals
		 SET title = ?, content = ?, sentiment = ?, sentiment_score = ?, ai_feedback = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		journal.Title,
		journal.Content,
		journal.Sentiment,
		journal.SentimentScore,
		journal.AIFeedback,
		formatTime(time.Now()),
		journal.ID,
		journal.UserID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *journalRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM journals WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func collectJournals(rows *sql.Rows) ([]model.Journal, error) {
	var journals []model.Journal
	for rows.Next() {
		journal, err := scanJournalRows(rows)
		if err != nil {
			return nil, err
		}
		journals = append(journals, journal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return journals, nil
}

func scanJournal(row *sql.Row) (model.Journal, error) {
	var j model.Journal
	var createdAt, updatedAt string

	err := row.Scan(
		&j.ID, &j.UserID, &j.Title, &j.Content, &j.Sentiment, &j.SentimentScore, &j.AIFeedback,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return model.Journal{}, err
	}

	j.CreatedAt, _ = parseTime(createdAt)
	j.UpdatedAt, _ = parseTime(updatedAt)

	return j, nil
}

func scanJournalRows(rows *sql.Rows) (model.Journal, error) {
	var j model.Journal
	var createdAt, updatedAt string

	err := rows.Scan(
		&j.ID, &j.UserID, &j.Title, &j.Content, &j.Sentiment, &j.SentimentScore, &j.AIFeedback,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return model.Journal{}, err
	}

	j.CreatedAt, _ = parseTime(createdAt)
	j.UpdatedAt, _ = parseTime(updatedAt)

	return j, nil
}
