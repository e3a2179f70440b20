// ABOUTME: Mood model and sentiment scale helpers.
// ABOUTME: Sentiment is an integer from 1 (worst) to 6 (best).
package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinSentiment = 1
	MaxSentiment = 6
)

// ClampSentiment forces a sentiment score into [MinSentiment, MaxSentiment].
func ClampSentiment(s int) int {
	return max(MinSentiment, min(MaxSentiment, s))
}

// SentimentLabels maps each sentiment score to a short label.
var SentimentLabels = map[int]string{
	1: "awful",
	2: "bad",
	3: "meh",
	4: "okay",
	5: "good",
	6: "great",
}

// Mood is a standalone sentiment check-in not tied to any habit.
type Mood struct {
	ID         uuid.UUID `json:"id"`
	Sentiment  int       `json:"sentiment"`
	Notes      *string   `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewMood creates a Mood with the sentiment clamped to [1,6].
func NewMood(sentiment int) *Mood {
	now := time.Now()
	return &Mood{
		ID:         uuid.New(),
		Sentiment:  ClampSentiment(sentiment),
		RecordedAt: now,
		CreatedAt:  now,
	}
}

// WithRecordedAt sets a custom recorded_at timestamp.
func (m *Mood) WithRecordedAt(t time.Time) *Mood {
	m.RecordedAt = t
	return m
}

// WithNotes sets notes on the mood.
func (m *Mood) WithNotes(notes string) *Mood {
	m.Notes = &notes
	return m
}
