package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

// ErrInvalidCredentials covers unknown emails and wrong passwords alike, so
// responses do not reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken flags a registration against an existing email.
var ErrEmailTaken = errors.New("email already registered")

// ErrInactiveUser flags a login against a deactivated account.
var ErrInactiveUser = errors.New("user account is inactive")

// UserStore is the account persistence the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, params UserCreateParams) (domain.User, error)
	UserByEmail(ctx context.Context, email string) (domain.User, error)
}

// UserCreateParams bundles the fields stored for a new account.
type UserCreateParams struct {
	Email        string
	PasswordHash string
	FullName     string
	Role         domain.Role
	BranchID     *string
}

// Result is a successful registration or login.
type Result struct {
	Token string
	User  domain.User
}

// Service registers and authenticates accounts and mints their tokens.
type Service struct {
	users    UserStore
	secret   []byte
	tokenTTL time.Duration
}

// NewService constructs the auth service.
func NewService(users UserStore, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{users: users, secret: secret, tokenTTL: tokenTTL}
}

// Register creates an account and returns a fresh token. Self-registration is
// restricted to the staff and owner roles; anything else is stored as staff.
func (s *Service) Register(ctx context.Context, email, password, fullName string, role domain.Role, branchID *string) (Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return Result{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}
	if role != domain.RoleStaff && role != domain.RoleOwner {
		role = domain.RoleStaff
	}

	if _, err := s.users.UserByEmail(ctx, email); err == nil {
		return Result{}, ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return Result{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, UserCreateParams{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
		BranchID:     branchID,
	})
	if err != nil {
		return Result{}, err
	}
	return s.issue(user)
}

// Login verifies credentials and returns a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Result{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Result{}, ErrInvalidCredentials
		}
		return Result{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Result{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return Result{}, ErrInactiveUser
	}
	return s.issue(user)
}

func (s *Service) issue(user domain.User) (Result, error) {
	token, err := SignToken(s.secret, user.Actor(), s.tokenTTL)
	if err != nil {
		return Result{}, err
	}
	return Result{Token: token, User: user}, nil
}
