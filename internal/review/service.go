// Package review implements the write path and the scoped listing of reviews.
package review

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aryansawant3579-cell/review-app/internal/access"
	"github.com/aryansawant3579-cell/review-app/internal/analytics"
	"github.com/aryansawant3579-cell/review-app/internal/domain"
	"github.com/aryansawant3579-cell/review-app/internal/sentiment"
)

const maxPageSize = 100

// CreateParams is the validated draft of a new review.
type CreateParams struct {
	BranchID      string
	Rating        int
	Title         *string
	Content       string
	Source        string
	Category      *string
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	StaffID       *string
}

// InsertParams is a draft plus its precomputed sentiment, ready to persist.
type InsertParams struct {
	CreateParams
	Sentiment domain.Sentiment
}

// ListFilters narrows a scoped review listing.
type ListFilters struct {
	BranchID  *string
	Sentiment *string
	Category  *string
	Source    *string
	Page      int
	PageSize  int
}

// Store is the persistence boundary the service drives. InTx hands back a
// transaction-scoped store; each mutating operation (including its rollup
// recompute) runs inside exactly one such transaction.
type Store interface {
	analytics.RollupStore

	InsertReview(ctx context.Context, params InsertParams) (domain.Review, error)
	GetReview(ctx context.Context, id string) (domain.Review, error)
	SetReviewResponse(ctx context.Context, id, responseText, responderID string) (domain.Review, error)
	MarkReviewEscalated(ctx context.Context, id string) (domain.Review, error)
	ListReviews(ctx context.Context, branchIDs []string, filters ListFilters) ([]domain.Review, int64, error)

	InTx(ctx context.Context, fn func(Store) error) error
}

// Service orchestrates the review lifecycle.
type Service struct {
	store    Store
	resolver *access.Resolver
	logger   *log.Logger
	now      func() time.Time
}

// NewService constructs the review service.
func NewService(store Store, resolver *access.Resolver, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		store:    store,
		resolver: resolver,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the draft, classifies it, and persists review plus rollup
// in one transaction.
func (s *Service) Create(ctx context.Context, params CreateParams) (domain.Review, error) {
	if strings.TrimSpace(params.BranchID) == "" {
		return domain.Review{}, fmt.Errorf("%w: branch id is required", domain.ErrInvalidInput)
	}
	category, err := sentiment.Classify(params.Rating, params.Content)
	if err != nil {
		return domain.Review{}, err
	}
	if params.Source == "" {
		params.Source = "internal"
	}

	var created domain.Review
	err = s.store.InTx(ctx, func(tx Store) error {
		rev, err := tx.InsertReview(ctx, InsertParams{CreateParams: params, Sentiment: category})
		if err != nil {
			return err
		}
		created = rev
		return analytics.Recompute(ctx, tx, rev.BranchID, rev.CreatedDay())
	})
	if err != nil {
		return domain.Review{}, err
	}
	s.logger.Printf("review %s created for branch %s (%s)", created.ID, created.BranchID, created.Sentiment)
	return created, nil
}

// Respond records a response on the review. Responding again overwrites the
// previous response; the last writer wins. The creation day's rollup is
// refreshed only when that day is today, matching the original analytics
// behavior; older days catch up on their next recompute.
func (s *Service) Respond(ctx context.Context, id, responseText, responderID string) (domain.Review, error) {
	if strings.TrimSpace(responseText) == "" {
		return domain.Review{}, fmt.Errorf("%w: response text is required", domain.ErrInvalidInput)
	}

	var updated domain.Review
	err := s.store.InTx(ctx, func(tx Store) error {
		rev, err := tx.SetReviewResponse(ctx, id, responseText, responderID)
		if err != nil {
			return err
		}
		updated = rev
		if rev.CreatedDay().Equal(domain.DayOf(s.now())) {
			return analytics.Recompute(ctx, tx, rev.BranchID, rev.CreatedDay())
		}
		return nil
	})
	if err != nil {
		return domain.Review{}, err
	}
	return updated, nil
}

// Escalate flags the review for follow-up. Escalation does not feed rollups.
func (s *Service) Escalate(ctx context.Context, id string) (domain.Review, error) {
	var updated domain.Review
	err := s.store.InTx(ctx, func(tx Store) error {
		rev, err := tx.MarkReviewEscalated(ctx, id)
		if err != nil {
			return err
		}
		updated = rev
		return nil
	})
	if err != nil {
		return domain.Review{}, err
	}
	return updated, nil
}

// Get fetches a single review by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Review, error) {
	return s.store.GetReview(ctx, id)
}

// List returns the actor's visible reviews, newest first, intersected with
// the optional facet filters. An empty scope yields an empty page.
func (s *Service) List(ctx context.Context, actor domain.Actor, filters ListFilters) ([]domain.Review, int64, error) {
	if filters.Page < 1 || filters.PageSize < 1 {
		return nil, 0, fmt.Errorf("%w: page and pageSize must be at least 1", domain.ErrInvalidInput)
	}
	if filters.PageSize > maxPageSize {
		filters.PageSize = maxPageSize
	}

	branchIDs, err := s.resolver.VisibleBranches(ctx, actor)
	if err != nil {
		return nil, 0, err
	}
	if len(branchIDs) == 0 {
		return []domain.Review{}, 0, nil
	}
	return s.store.ListReviews(ctx, branchIDs, filters)
}
