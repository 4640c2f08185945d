package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aryansawant3579-cell/review-app/internal/auth"
	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

// UsersRepository provides persistence helpers for user accounts.
type UsersRepository struct {
	db DB
}

const userColumns = `
    id,
    email,
    password_hash,
    full_name,
    role,
    branch_id,
    is_active,
    created_at,
    updated_at
`

// Create inserts a new user row and returns the stored entity.
func (r *UsersRepository) Create(ctx context.Context, params auth.UserCreateParams) (domain.User, error) {
	query := fmt.Sprintf(`
        INSERT INTO users (id, email, password_hash, full_name, role, branch_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING %s
    `, userColumns)

	row := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		params.Email,
		params.PasswordHash,
		params.FullName,
		string(params.Role),
		params.BranchID,
	)
	return scanUser(row)
}

// ByEmail fetches a user by email address.
func (r *UsersRepository) ByEmail(ctx context.Context, email string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		return domain.User{}, err
	}
	return user, nil
}

// ByID fetches a user by identifier.
func (r *UsersRepository) ByID(ctx context.Context, id string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return domain.User{}, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&role,
		&user.BranchID,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	user.Role = domain.Role(role)
	return user, nil
}
