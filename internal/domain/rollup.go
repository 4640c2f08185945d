package domain

import "time"

// DailyRollup is the derived per-(branch, UTC day) aggregate of that day's
// reviews. It is a cache: always recomputed from the review set for its key,
// never hand-edited, and safe to overwrite in place.
type DailyRollup struct {
	BranchID     string
	Day          time.Time
	TotalReviews int
	AvgRating    float64
	Positive     int
	Neutral      int
	Negative     int
	ResponseRate float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SentimentTally counts reviews per sentiment category.
type SentimentTally struct {
	Positive int
	Neutral  int
	Negative int
}

// ReviewTotals captures an all-time aggregate over a set of branches.
type ReviewTotals struct {
	TotalReviews int
	AvgRating    float64
	Responded    int
	Sentiments   SentimentTally
}

// BranchStat is one per-branch row of the dashboard breakdown.
type BranchStat struct {
	BranchID     string
	BranchName   string
	AvgRating    float64
	TotalReviews int
}

// TrendPoint is one day's bucket of the trends series.
type TrendPoint struct {
	Day       time.Time
	Total     int
	AvgRating float64
	Positive  int
	Neutral   int
	Negative  int
}
