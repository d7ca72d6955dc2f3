package model

import "time"

// Judgment is the sentiment triple the extraction pipeline attaches to an
// entry: a label, a score meant to lie in [0,1], and short feedback text.
type Judgment struct {
	Sentiment string
	Score     float64
	Feedback  string
}

type Journal struct {
	ID             int64
	UserID         int64
	Title          string
	Content        string
	Sentiment      string
	SentimentScore float64
	AIFeedback     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Judgment returns the entry's stored sentiment triple.
func (j Journal) Judgment() Judgment {
	return Judgment{
		Sentiment: j.Sentiment,
		Score:     j.SentimentScore,
		Feedback:  j.AIFeedback,
	}
}

// ApplyJudgment writes a sentiment triple back onto the entry.
func (j *Journal) ApplyJudgment(judgment Judgment) {
	j.Sentiment = judgment.Sentiment
	j.SentimentScore = judgment.Score
	j.AIFeedback = judgment.Feedback
}
