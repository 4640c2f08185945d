// Package repository implements the persistence boundaries the core consumes,
// backed by Postgres through pgx.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aryansawant3579-cell/review-app/internal/auth"
	"github.com/aryansawant3579-cell/review-app/internal/domain"
	"github.com/aryansawant3579-cell/review-app/internal/review"
	"github.com/aryansawant3579-cell/review-app/internal/store"
)

// DB is the querying behaviour shared by a pgx pool and a pgx transaction, so
// every repository works unchanged inside and outside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository aggregates all domain-specific repositories.
type Repository struct {
	pool *pgxpool.Pool // nil when transaction-scoped

	Users     *UsersRepository
	Branches  *BranchesRepository
	Reviews   *ReviewsRepository
	Rollups   *RollupsRepository
	Templates *TemplatesRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	r := newWithDB(pool)
	r.pool = pool
	return r
}

func newWithDB(db DB) *Repository {
	return &Repository{
		Users:     &UsersRepository{db: db},
		Branches:  &BranchesRepository{db: db},
		Reviews:   &ReviewsRepository{db: db},
		Rollups:   &RollupsRepository{db: db},
		Templates: &TemplatesRepository{db: db},
	}
}

// InTx runs fn against a transaction-scoped repository set. The transaction
// commits only if fn returns nil; any error rolls back every write, rollup
// upserts included.
func (r *Repository) InTx(ctx context.Context, fn func(review.Store) error) error {
	if r.pool == nil {
		return fmt.Errorf("repository: nested transactions are not supported")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(newWithDB(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// The delegates below let a *Repository satisfy the store interfaces the core
// packages define (review.Store, analytics.RollupStore, auth.UserStore).

func (r *Repository) InsertReview(ctx context.Context, params review.InsertParams) (domain.Review, error) {
	return r.Reviews.Insert(ctx, params)
}

func (r *Repository) GetReview(ctx context.Context, id string) (domain.Review, error) {
	return r.Reviews.GetByID(ctx, id)
}

func (r *Repository) SetReviewResponse(ctx context.Context, id, responseText, responderID string) (domain.Review, error) {
	return r.Reviews.SetResponse(ctx, id, responseText, responderID)
}

func (r *Repository) MarkReviewEscalated(ctx context.Context, id string) (domain.Review, error) {
	return r.Reviews.MarkEscalated(ctx, id)
}

func (r *Repository) ListReviews(ctx context.Context, branchIDs []string, filters review.ListFilters) ([]domain.Review, int64, error) {
	return r.Reviews.List(ctx, branchIDs, filters)
}

func (r *Repository) ReviewsForBranchAndDay(ctx context.Context, branchID string, day time.Time) ([]domain.Review, error) {
	return r.Reviews.ForBranchAndDay(ctx, branchID, day)
}

func (r *Repository) UpsertDailyRollup(ctx context.Context, rollup domain.DailyRollup) error {
	return r.Rollups.Upsert(ctx, rollup)
}

func (r *Repository) CreateUser(ctx context.Context, params auth.UserCreateParams) (domain.User, error) {
	return r.Users.Create(ctx, params)
}

func (r *Repository) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.Users.ByEmail(ctx, email)
}
