package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

// BranchesRepository provides persistence helpers for branches. It also
// serves as the branch-ownership directory the access resolver consumes.
type BranchesRepository struct {
	db DB
}

const branchColumns = `
    id,
    name,
    location,
    branch_code,
    manager_id,
    created_at,
    updated_at
`

// BranchCreateParams bundles the fields required to create a branch.
type BranchCreateParams struct {
	Name      string
	Location  string
	Code      string
	ManagerID *string
}

// Create inserts a new branch row and returns the stored entity.
func (r *BranchesRepository) Create(ctx context.Context, params BranchCreateParams) (domain.Branch, error) {
	query := fmt.Sprintf(`
        INSERT INTO branches (id, name, location, branch_code, manager_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING %s
    `, branchColumns)

	row := r.db.QueryRow(ctx, query, uuid.NewString(), params.Name, params.Location, params.Code, params.ManagerID)
	return scanBranch(row)
}

// GetByID fetches a branch by its identifier.
func (r *BranchesRepository) GetByID(ctx context.Context, id string) (domain.Branch, error) {
	query := fmt.Sprintf(`SELECT %s FROM branches WHERE id = $1`, branchColumns)
	branch, err := scanBranch(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Branch{}, fmt.Errorf("branch %s: %w", id, domain.ErrNotFound)
		}
		return domain.Branch{}, err
	}
	return branch, nil
}

// GetByCode fetches a branch by its unique code.
func (r *BranchesRepository) GetByCode(ctx context.Context, code string) (domain.Branch, error) {
	query := fmt.Sprintf(`SELECT %s FROM branches WHERE branch_code = $1`, branchColumns)
	branch, err := scanBranch(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Branch{}, fmt.Errorf("branch code %s: %w", code, domain.ErrNotFound)
		}
		return domain.Branch{}, err
	}
	return branch, nil
}

// List returns every branch ordered by name.
func (r *BranchesRepository) List(ctx context.Context) ([]domain.Branch, error) {
	query := fmt.Sprintf(`SELECT %s FROM branches ORDER BY name, id`, branchColumns)
	return r.queryBranches(ctx, query)
}

// ListByManager returns the branches managed by the given actor.
func (r *BranchesRepository) ListByManager(ctx context.Context, managerID string) ([]domain.Branch, error) {
	query := fmt.Sprintf(`SELECT %s FROM branches WHERE manager_id = $1 ORDER BY name, id`, branchColumns)
	return r.queryBranches(ctx, query, managerID)
}

// AllBranchIDs implements the access directory lookup for all-branch scopes.
func (r *BranchesRepository) AllBranchIDs(ctx context.Context) ([]string, error) {
	return r.queryIDs(ctx, `SELECT id FROM branches ORDER BY name, id`)
}

// BranchIDsManagedBy implements the access directory lookup for managers.
func (r *BranchesRepository) BranchIDsManagedBy(ctx context.Context, actorID string) ([]string, error) {
	return r.queryIDs(ctx, `SELECT id FROM branches WHERE manager_id = $1 ORDER BY name, id`, actorID)
}

func (r *BranchesRepository) queryBranches(ctx context.Context, query string, args ...any) ([]domain.Branch, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	branches := make([]domain.Branch, 0)
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	return branches, rows.Err()
}

func (r *BranchesRepository) queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list branch ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanBranch(row pgx.Row) (domain.Branch, error) {
	var branch domain.Branch
	err := row.Scan(
		&branch.ID,
		&branch.Name,
		&branch.Location,
		&branch.Code,
		&branch.ManagerID,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	)
	if err != nil {
		return domain.Branch{}, err
	}
	return branch, nil
}
