// Package analytics maintains the per-(branch, day) rollups and answers the
// scoped dashboard and trends queries.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

// RollupStore is the slice of persistence the recompute step needs. Callers
// pass a transaction-scoped store so the rollup write commits or rolls back
// together with the review mutation that triggered it.
type RollupStore interface {
	ReviewsForBranchAndDay(ctx context.Context, branchID string, day time.Time) ([]domain.Review, error)
	UpsertDailyRollup(ctx context.Context, rollup domain.DailyRollup) error
}

// Recompute rebuilds the rollup row for one (branch, day) key from that day's
// reviews and upserts it. Running it twice with no intervening review change
// stores identical values.
func Recompute(ctx context.Context, store RollupStore, branchID string, day time.Time) error {
	reviews, err := store.ReviewsForBranchAndDay(ctx, branchID, day)
	if err != nil {
		return fmt.Errorf("load reviews for rollup: %w", err)
	}
	if err := store.UpsertDailyRollup(ctx, rollupFor(branchID, day, reviews)); err != nil {
		return fmt.Errorf("upsert rollup: %w", err)
	}
	return nil
}

func rollupFor(branchID string, day time.Time, reviews []domain.Review) domain.DailyRollup {
	rollup := domain.DailyRollup{
		BranchID: branchID,
		Day:      domain.DayOf(day),
	}

	total := len(reviews)
	rollup.TotalReviews = total
	if total == 0 {
		return rollup
	}

	ratingSum := 0
	responded := 0
	for _, review := range reviews {
		ratingSum += review.Rating
		if review.IsResponded {
			responded++
		}
		switch review.Sentiment {
		case domain.SentimentPositive:
			rollup.Positive++
		case domain.SentimentNeutral:
			rollup.Neutral++
		case domain.SentimentNegative:
			rollup.Negative++
		}
	}

	rollup.AvgRating = float64(ratingSum) / float64(total)
	rollup.ResponseRate = float64(responded) / float64(total) * 100
	return rollup
}
