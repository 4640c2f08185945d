package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/aryansawant3579-cell/review-app/internal/access"
	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRollupFor(t *testing.T) {
	reviews := []domain.Review{
		{Rating: 5, Sentiment: domain.SentimentPositive, IsResponded: true},
		{Rating: 1, Sentiment: domain.SentimentNegative},
		{Rating: 3, Sentiment: domain.SentimentNeutral},
		{Rating: 3, Sentiment: domain.SentimentNeutral, IsResponded: true},
	}

	rollup := rollupFor("b1", day(2026, time.March, 5), reviews)
	if rollup.TotalReviews != 4 {
		t.Fatalf("TotalReviews = %d, want 4", rollup.TotalReviews)
	}
	if rollup.AvgRating != 3.0 {
		t.Fatalf("AvgRating = %v, want 3.0", rollup.AvgRating)
	}
	if rollup.Positive != 1 || rollup.Neutral != 2 || rollup.Negative != 1 {
		t.Fatalf("sentiment tally = %d/%d/%d, want 1/2/1", rollup.Positive, rollup.Neutral, rollup.Negative)
	}
	if rollup.ResponseRate != 50.0 {
		t.Fatalf("ResponseRate = %v, want 50", rollup.ResponseRate)
	}
	if !rollup.Day.Equal(day(2026, time.March, 5)) {
		t.Fatalf("Day = %v, want 2026-03-05", rollup.Day)
	}
}

func TestRollupForEmptyDay(t *testing.T) {
	rollup := rollupFor("b1", day(2026, time.March, 5), nil)
	if rollup.TotalReviews != 0 || rollup.AvgRating != 0 || rollup.ResponseRate != 0 {
		t.Fatalf("empty rollup not zeroed: %+v", rollup)
	}
}

func TestRollupForIdempotent(t *testing.T) {
	reviews := []domain.Review{
		{Rating: 4, Sentiment: domain.SentimentPositive},
		{Rating: 2, Sentiment: domain.SentimentNegative, IsResponded: true},
	}
	first := rollupFor("b1", day(2026, time.March, 5), reviews)
	second := rollupFor("b1", day(2026, time.March, 5), reviews)
	if first != second {
		t.Fatalf("recompute not idempotent: %+v vs %+v", first, second)
	}
}

type fakeAggregator struct {
	totals       domain.ReviewTotals
	stats        []domain.BranchStat
	points       []domain.TrendPoint
	gotBranchIDs []string
	gotSince     time.Time
}

func (f *fakeAggregator) ReviewTotals(ctx context.Context, branchIDs []string) (domain.ReviewTotals, error) {
	f.gotBranchIDs = branchIDs
	return f.totals, nil
}

func (f *fakeAggregator) BranchStats(ctx context.Context, branchIDs []string) ([]domain.BranchStat, error) {
	return f.stats, nil
}

func (f *fakeAggregator) TrendPoints(ctx context.Context, branchIDs []string, since time.Time) ([]domain.TrendPoint, error) {
	f.gotBranchIDs = branchIDs
	f.gotSince = since
	return f.points, nil
}

type staticDirectory struct {
	all     []string
	managed []string
}

func (d staticDirectory) AllBranchIDs(ctx context.Context) ([]string, error) { return d.all, nil }
func (d staticDirectory) BranchIDsManagedBy(ctx context.Context, actorID string) ([]string, error) {
	return d.managed, nil
}

func TestDashboardRoundsAndScopes(t *testing.T) {
	agg := &fakeAggregator{
		totals: domain.ReviewTotals{
			TotalReviews: 3,
			AvgRating:    3.333333,
			Responded:    1,
			Sentiments:   domain.SentimentTally{Positive: 1, Neutral: 1, Negative: 1},
		},
		stats: []domain.BranchStat{{BranchID: "b1", BranchName: "Downtown", AvgRating: 3.333333, TotalReviews: 3}},
	}
	svc := NewService(agg, access.NewResolver(staticDirectory{all: []string{"b1"}}))

	dash, err := svc.Dashboard(context.Background(), domain.Actor{ID: "a1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.AvgRating != 3.33 {
		t.Fatalf("AvgRating = %v, want 3.33", dash.AvgRating)
	}
	if dash.ResponseRate != 33.33 {
		t.Fatalf("ResponseRate = %v, want 33.33", dash.ResponseRate)
	}
	if len(dash.BranchStats) != 1 || dash.BranchStats[0].AvgRating != 3.33 {
		t.Fatalf("BranchStats not rounded: %+v", dash.BranchStats)
	}
	if len(agg.gotBranchIDs) != 1 || agg.gotBranchIDs[0] != "b1" {
		t.Fatalf("aggregator scoped to %v, want [b1]", agg.gotBranchIDs)
	}
}

func TestDashboardEmptyScope(t *testing.T) {
	agg := &fakeAggregator{totals: domain.ReviewTotals{TotalReviews: 99}}
	svc := NewService(agg, access.NewResolver(staticDirectory{all: []string{"b1"}}))

	// Manager with no branches resolves to an empty scope.
	dash, err := svc.Dashboard(context.Background(), domain.Actor{ID: "m1", Role: domain.RoleManager})
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.TotalReviews != 0 || dash.AvgRating != 0 || dash.ResponseRate != 0 {
		t.Fatalf("empty scope dashboard not zeroed: %+v", dash)
	}
	if dash.BranchStats == nil || len(dash.BranchStats) != 0 {
		t.Fatalf("empty scope should yield empty branch stats, got %+v", dash.BranchStats)
	}
	if agg.gotBranchIDs != nil {
		t.Fatalf("aggregator should not be queried for an empty scope")
	}
}

func TestTrendsBucketsByDay(t *testing.T) {
	agg := &fakeAggregator{
		points: []domain.TrendPoint{
			{Day: day(2026, time.February, 1), Total: 2, AvgRating: 4.5, Positive: 2},
			{Day: day(2026, time.February, 3), Total: 1, AvgRating: 1, Negative: 1},
		},
	}
	svc := NewService(agg, access.NewResolver(staticDirectory{all: []string{"b1", "b2"}}))
	svc.now = func() time.Time { return time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC) }

	trends, err := svc.Trends(context.Background(), domain.Actor{ID: "a1", Role: domain.RoleAdmin}, 0)
	if err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if len(trends) != 2 {
		t.Fatalf("trends size = %d, want sparse 2-day map", len(trends))
	}
	bucket, ok := trends["2026-02-01"]
	if !ok || bucket.Total != 2 || bucket.Positive != 2 {
		t.Fatalf("bucket 2026-02-01 = %+v, ok=%v", bucket, ok)
	}
	if _, ok := trends["2026-02-02"]; ok {
		t.Fatalf("empty day must be omitted, not zero-filled")
	}

	wantSince := time.Date(2026, time.January, 11, 12, 0, 0, 0, time.UTC)
	if !agg.gotSince.Equal(wantSince) {
		t.Fatalf("since = %v, want default 30-day window %v", agg.gotSince, wantSince)
	}
}

func TestTrendsEmptyScope(t *testing.T) {
	svc := NewService(&fakeAggregator{}, access.NewResolver(staticDirectory{}))

	trends, err := svc.Trends(context.Background(), domain.Actor{ID: "m1", Role: domain.RoleManager}, 7)
	if err != nil {
		t.Fatalf("Trends: %v", err)
	}
	if len(trends) != 0 {
		t.Fatalf("trends = %v, want empty map", trends)
	}
}
