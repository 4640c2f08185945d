package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

// RollupsRepository persists the derived per-(branch, day) aggregates.
type RollupsRepository struct {
	db DB
}

const rollupColumns = `
    branch_id,
    day,
    total_reviews,
    avg_rating,
    positive_count,
    neutral_count,
    negative_count,
    response_rate,
    created_at,
    updated_at
`

// Upsert writes the rollup row for its (branch, day) key, overwriting any
// existing values. The row is a cache, so last writer wins by design of the
// concurrency model: the values are always re-derivable from the review set.
func (r *RollupsRepository) Upsert(ctx context.Context, rollup domain.DailyRollup) error {
	const query = `
        INSERT INTO daily_rollups (branch_id, day, total_reviews, avg_rating,
                                   positive_count, neutral_count, negative_count, response_rate)
        VALUES ($1,$2::date,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (branch_id, day)
        DO UPDATE SET total_reviews = EXCLUDED.total_reviews,
                      avg_rating = EXCLUDED.avg_rating,
                      positive_count = EXCLUDED.positive_count,
                      neutral_count = EXCLUDED.neutral_count,
                      negative_count = EXCLUDED.negative_count,
                      response_rate = EXCLUDED.response_rate,
                      updated_at = now()
    `

	_, err := r.db.Exec(ctx, query,
		rollup.BranchID,
		rollup.Day.UTC().Format("2006-01-02"),
		rollup.TotalReviews,
		rollup.AvgRating,
		rollup.Positive,
		rollup.Neutral,
		rollup.Negative,
		rollup.ResponseRate,
	)
	if err != nil {
		return fmt.Errorf("upsert rollup: %w", err)
	}
	return nil
}

// Get fetches the rollup row for one (branch, day) key.
func (r *RollupsRepository) Get(ctx context.Context, branchID string, day time.Time) (domain.DailyRollup, error) {
	query := fmt.Sprintf(`SELECT %s FROM daily_rollups WHERE branch_id = $1 AND day = $2::date`, rollupColumns)

	var rollup domain.DailyRollup
	err := r.db.QueryRow(ctx, query, branchID, day.UTC().Format("2006-01-02")).Scan(
		&rollup.BranchID,
		&rollup.Day,
		&rollup.TotalReviews,
		&rollup.AvgRating,
		&rollup.Positive,
		&rollup.Neutral,
		&rollup.Negative,
		&rollup.ResponseRate,
		&rollup.CreatedAt,
		&rollup.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.DailyRollup{}, fmt.Errorf("rollup %s/%s: %w", branchID, day.Format("2006-01-02"), domain.ErrNotFound)
		}
		return domain.DailyRollup{}, err
	}
	rollup.Day = domain.DayOf(rollup.Day)
	return rollup, nil
}
