package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
	"github.com/aryansawant3579-cell/review-app/internal/review"
)

// ReviewsRepository provides persistence helpers for review entities.
type ReviewsRepository struct {
	db DB
}

const reviewColumns = `
    id,
    branch_id,
    rating,
    title,
    content,
    source,
    category,
    sentiment,
    customer_name,
    customer_email,
    customer_phone,
    staff_id,
    is_responded,
    response_text,
    responded_by,
    responded_at,
    is_escalated,
    created_at,
    updated_at
`

// Insert persists a classified draft and returns the stored review.
func (r *ReviewsRepository) Insert(ctx context.Context, params review.InsertParams) (domain.Review, error) {
	query := fmt.Sprintf(`
        INSERT INTO reviews (id, branch_id, rating, title, content, source, category, sentiment,
                             customer_name, customer_email, customer_phone, staff_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING %s
    `, reviewColumns)

	row := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		params.BranchID,
		params.Rating,
		params.Title,
		params.Content,
		params.Source,
		params.Category,
		string(params.Sentiment),
		params.CustomerName,
		params.CustomerEmail,
		params.CustomerPhone,
		params.StaffID,
	)
	rev, err := scanReview(row)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503 is a foreign key violation: the branch does not exist.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.Review{}, fmt.Errorf("branch %s: %w", params.BranchID, domain.ErrNotFound)
		}
		return domain.Review{}, err
	}
	return rev, nil
}

// GetByID fetches a review by its identifier.
func (r *ReviewsRepository) GetByID(ctx context.Context, id string) (domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1`, reviewColumns)
	rev, err := scanReview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
		}
		return domain.Review{}, err
	}
	return rev, nil
}

// SetResponse records the response fields in one statement. Responding again
// replaces the previous response wholesale.
func (r *ReviewsRepository) SetResponse(ctx context.Context, id, responseText, responderID string) (domain.Review, error) {
	query := fmt.Sprintf(`
        UPDATE reviews
        SET is_responded = true,
            response_text = $2,
            responded_by = $3,
            responded_at = now(),
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, reviewColumns)

	rev, err := scanReview(r.db.QueryRow(ctx, query, id, responseText, responderID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
		}
		return domain.Review{}, err
	}
	return rev, nil
}

// MarkEscalated flags the review for follow-up.
func (r *ReviewsRepository) MarkEscalated(ctx context.Context, id string) (domain.Review, error) {
	query := fmt.Sprintf(`
        UPDATE reviews
        SET is_escalated = true,
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, reviewColumns)

	rev, err := scanReview(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
		}
		return domain.Review{}, err
	}
	return rev, nil
}

// List returns one page of reviews matching the branch scope and facet
// filters, newest first, along with the total match count.
func (r *ReviewsRepository) List(ctx context.Context, branchIDs []string, filters review.ListFilters) ([]domain.Review, int64, error) {
	where := make([]string, 0)
	args := make([]any, 0)
	arg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if branchIDs != nil {
		where = append(where, fmt.Sprintf("branch_id = ANY(%s::uuid[])", arg(branchIDs)))
	}
	if filters.BranchID != nil {
		where = append(where, fmt.Sprintf("branch_id = %s", arg(*filters.BranchID)))
	}
	if filters.Sentiment != nil {
		where = append(where, fmt.Sprintf("sentiment = %s", arg(*filters.Sentiment)))
	}
	if filters.Category != nil {
		where = append(where, fmt.Sprintf("category = %s", arg(*filters.Category)))
	}
	if filters.Source != nil {
		where = append(where, fmt.Sprintf("source = %s", arg(*filters.Source)))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM reviews"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM reviews%s ORDER BY created_at DESC, id DESC LIMIT %s OFFSET %s",
		reviewColumns, clause, arg(filters.PageSize), arg((filters.Page-1)*filters.PageSize))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Review, 0)
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ForBranchAndDay returns every review created on the given UTC day for the
// branch. Used solely to recompute that day's rollup.
func (r *ReviewsRepository) ForBranchAndDay(ctx context.Context, branchID string, day time.Time) ([]domain.Review, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM reviews
        WHERE branch_id = $1 AND (created_at AT TIME ZONE 'UTC')::date = $2::date
        ORDER BY created_at, id
    `, reviewColumns)

	rows, err := r.db.Query(ctx, query, branchID, day.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("reviews for branch/day: %w", err)
	}
	defer rows.Close()

	var items []domain.Review
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rev)
	}
	return items, rows.Err()
}

// ReviewTotals aggregates the all-time counts across a set of branches.
func (r *ReviewsRepository) ReviewTotals(ctx context.Context, branchIDs []string) (domain.ReviewTotals, error) {
	const query = `
        SELECT COUNT(*)::int,
               COALESCE(AVG(rating), 0)::float8,
               COUNT(*) FILTER (WHERE is_responded)::int,
               COUNT(*) FILTER (WHERE sentiment = 'positive')::int,
               COUNT(*) FILTER (WHERE sentiment = 'neutral')::int,
               COUNT(*) FILTER (WHERE sentiment = 'negative')::int
        FROM reviews
        WHERE branch_id = ANY($1::uuid[])
    `

	var totals domain.ReviewTotals
	err := r.db.QueryRow(ctx, query, branchIDs).Scan(
		&totals.TotalReviews,
		&totals.AvgRating,
		&totals.Responded,
		&totals.Sentiments.Positive,
		&totals.Sentiments.Neutral,
		&totals.Sentiments.Negative,
	)
	if err != nil {
		return domain.ReviewTotals{}, fmt.Errorf("aggregate review totals: %w", err)
	}
	return totals, nil
}

// BranchStats returns one aggregate row per branch in the set; branches with
// no reviews still appear with zeros.
func (r *ReviewsRepository) BranchStats(ctx context.Context, branchIDs []string) ([]domain.BranchStat, error) {
	const query = `
        SELECT b.id, b.name,
               COALESCE(AVG(r.rating), 0)::float8,
               COUNT(r.id)::int
        FROM branches b
        LEFT JOIN reviews r ON r.branch_id = b.id
        WHERE b.id = ANY($1::uuid[])
        GROUP BY b.id, b.name
        ORDER BY b.name, b.id
    `

	rows, err := r.db.Query(ctx, query, branchIDs)
	if err != nil {
		return nil, fmt.Errorf("aggregate branch stats: %w", err)
	}
	defer rows.Close()

	stats := make([]domain.BranchStat, 0)
	for rows.Next() {
		var stat domain.BranchStat
		if err := rows.Scan(&stat.BranchID, &stat.BranchName, &stat.AvgRating, &stat.TotalReviews); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

// TrendPoints buckets reviews created since the cutoff by UTC day. Days with
// no reviews produce no row.
func (r *ReviewsRepository) TrendPoints(ctx context.Context, branchIDs []string, since time.Time) ([]domain.TrendPoint, error) {
	const query = `
        SELECT (created_at AT TIME ZONE 'UTC')::date AS day,
               COUNT(*)::int,
               COALESCE(AVG(rating), 0)::float8,
               COUNT(*) FILTER (WHERE sentiment = 'positive')::int,
               COUNT(*) FILTER (WHERE sentiment = 'neutral')::int,
               COUNT(*) FILTER (WHERE sentiment = 'negative')::int
        FROM reviews
        WHERE branch_id = ANY($1::uuid[]) AND created_at >= $2
        GROUP BY day
        ORDER BY day
    `

	rows, err := r.db.Query(ctx, query, branchIDs, since)
	if err != nil {
		return nil, fmt.Errorf("aggregate trends: %w", err)
	}
	defer rows.Close()

	var points []domain.TrendPoint
	for rows.Next() {
		var point domain.TrendPoint
		if err := rows.Scan(&point.Day, &point.Total, &point.AvgRating, &point.Positive, &point.Neutral, &point.Negative); err != nil {
			return nil, err
		}
		point.Day = domain.DayOf(point.Day)
		points = append(points, point)
	}
	return points, rows.Err()
}

func scanReview(row pgx.Row) (domain.Review, error) {
	var (
		rev       domain.Review
		sentiment string
	)
	err := row.Scan(
		&rev.ID,
		&rev.BranchID,
		&rev.Rating,
		&rev.Title,
		&rev.Content,
		&rev.Source,
		&rev.Category,
		&sentiment,
		&rev.CustomerName,
		&rev.CustomerEmail,
		&rev.CustomerPhone,
		&rev.StaffID,
		&rev.IsResponded,
		&rev.ResponseText,
		&rev.RespondedBy,
		&rev.RespondedAt,
		&rev.IsEscalated,
		&rev.CreatedAt,
		&rev.UpdatedAt,
	)
	if err != nil {
		return domain.Review{}, err
	}
	rev.Sentiment = domain.Sentiment(sentiment)
	return rev, nil
}
