package testutil

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"serein/internal/db"
	"serein/internal/model"
	"serein/internal/snowflake"

	"github.com/stretchr/testify/require"
)

var snowflakeOnce sync.Once

// NewTestDB opens a migrated sqlite database in a per-test temp dir.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	snowflakeOnce.Do(func() {
		if err := snowflake.Init(1); err != nil {
			t.Fatalf("init snowflake: %v", err)
		}
	})

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return database
}

// SeedUser inserts a user row and returns its ID.
func SeedUser(t *testing.T, database *sql.DB, username string) int64 {
	t.Helper()

	id := snowflake.NextID()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := database.Exec(
		`INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, username, username+"@example.com", "x", now, now,
	)
	require.NoError(t, err)
	return id
}

// SeedJournal inserts a journal row and returns its ID. A zero CreatedAt
// defaults to now; set it explicitly to seed entries inside or outside a
// time window.
func SeedJournal(t *testing.T, database *sql.DB, journal model.Journal) int64 {
	t.Helper()

	id := snowflake.NextID()
	createdAt := journal.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	title := journal.Title
	if title == "" {
		title = "Daily Journal"
	}
	sentiment := journal.Sentiment
	if sentiment == "" {
		sentiment = "Neutral"
	}
	feedback := journal.AIFeedback
	if feedback == "" {
		feedback = "Thank you for sharing."
	}

	_, err := database.Exec(
		`INSERT INTO journals (id, user_id, title, content, sentiment, sentiment_score, ai_feedback, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		journal.UserID,
		title,
		journal.Content,
		sentiment,
		journal.SentimentScore,
		feedback,
		createdAt.UTC().Format(time.RFC3339),
		createdAt.UTC().Format(time.RFC3339),
	)
	require.NoError(t, err)
	return id
}
