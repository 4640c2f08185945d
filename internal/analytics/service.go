package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/aryansawant3579-cell/review-app/internal/access"
	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

// DefaultTrendDays is the trailing window applied when the caller does not
// supply one.
const DefaultTrendDays = 30

// ReviewAggregator is the read-side aggregation the query service consumes.
type ReviewAggregator interface {
	ReviewTotals(ctx context.Context, branchIDs []string) (domain.ReviewTotals, error)
	BranchStats(ctx context.Context, branchIDs []string) ([]domain.BranchStat, error)
	TrendPoints(ctx context.Context, branchIDs []string, since time.Time) ([]domain.TrendPoint, error)
}

// Dashboard is the all-time aggregate over an actor's visible branches.
type Dashboard struct {
	TotalReviews int
	AvgRating    float64
	ResponseRate float64
	Sentiments   domain.SentimentTally
	BranchStats  []domain.BranchStat
}

// TrendBucket is one day's slice of the trends series.
type TrendBucket struct {
	Total     int
	AvgRating float64
	Positive  int
	Neutral   int
	Negative  int
}

// Service answers the read-only analytics queries, always scoped through the
// access resolver first.
type Service struct {
	reviews  ReviewAggregator
	resolver *access.Resolver
	now      func() time.Time
}

// NewService constructs the query service.
func NewService(reviews ReviewAggregator, resolver *access.Resolver) *Service {
	return &Service{
		reviews:  reviews,
		resolver: resolver,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Dashboard aggregates every review in the actor's visible branch set. An
// empty scope yields an all-zero dashboard, not an error.
func (s *Service) Dashboard(ctx context.Context, actor domain.Actor) (Dashboard, error) {
	branchIDs, err := s.resolver.VisibleBranches(ctx, actor)
	if err != nil {
		return Dashboard{}, err
	}
	if len(branchIDs) == 0 {
		return Dashboard{BranchStats: []domain.BranchStat{}}, nil
	}

	totals, err := s.reviews.ReviewTotals(ctx, branchIDs)
	if err != nil {
		return Dashboard{}, fmt.Errorf("aggregate reviews: %w", err)
	}
	stats, err := s.reviews.BranchStats(ctx, branchIDs)
	if err != nil {
		return Dashboard{}, fmt.Errorf("aggregate branch stats: %w", err)
	}
	for i := range stats {
		stats[i].AvgRating = round2(stats[i].AvgRating)
	}

	responseRate := 0.0
	if totals.TotalReviews > 0 {
		responseRate = float64(totals.Responded) / float64(totals.TotalReviews) * 100
	}

	return Dashboard{
		TotalReviews: totals.TotalReviews,
		AvgRating:    round2(totals.AvgRating),
		ResponseRate: round2(responseRate),
		Sentiments:   totals.Sentiments,
		BranchStats:  stats,
	}, nil
}

// Trends buckets the actor's visible reviews from the trailing window by UTC
// creation day. Days with no reviews are omitted. A non-positive days value
// falls back to the default window.
func (s *Service) Trends(ctx context.Context, actor domain.Actor, days int) (map[string]TrendBucket, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}

	branchIDs, err := s.resolver.VisibleBranches(ctx, actor)
	if err != nil {
		return nil, err
	}
	trends := make(map[string]TrendBucket)
	if len(branchIDs) == 0 {
		return trends, nil
	}

	since := s.now().AddDate(0, 0, -days)
	points, err := s.reviews.TrendPoints(ctx, branchIDs, since)
	if err != nil {
		return nil, fmt.Errorf("aggregate trends: %w", err)
	}
	for _, point := range points {
		trends[point.Day.Format("2006-01-02")] = TrendBucket{
			Total:     point.Total,
			AvgRating: point.AvgRating,
			Positive:  point.Positive,
			Neutral:   point.Neutral,
			Negative:  point.Negative,
		}
	}
	return trends, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
