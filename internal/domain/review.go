package domain

import (
	"errors"
	"time"
)

// Sentiment is the derived tone category of a review. It is set once at
// creation and never mutated independently of the review content.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ErrInvalidInput flags a request rejected before any store mutation.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Review is one piece of customer feedback tagged to a branch. Reviews are
// append-only apart from the respond and escalate transitions.
type Review struct {
	ID            string
	BranchID      string
	Rating        int
	Title         *string
	Content       string
	Source        string
	Category      *string
	Sentiment     Sentiment
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	StaffID       *string
	IsResponded   bool
	ResponseText  *string
	RespondedBy   *string
	RespondedAt   *time.Time
	IsEscalated   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreatedDay returns the UTC calendar day the review was created on, which is
// the day its rollup contribution belongs to.
func (r Review) CreatedDay() time.Time {
	return DayOf(r.CreatedAt)
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ReplyTemplate is a canned response staff can start from when responding.
type ReplyTemplate struct {
	ID            string
	Name          string
	TemplateText  string
	Category      *string
	SentimentType *Sentiment
	CreatedBy     *string
	IsActive      bool
	CreatedAt     time.Time
}
