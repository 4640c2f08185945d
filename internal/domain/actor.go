package domain

import "time"

// Role identifies the class of user making a request.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Known reports whether the role is one of the closed set. Unknown roles are
// treated like staff by the access policy, never rejected.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleManager, RoleStaff:
		return true
	}
	return false
}

// Actor is an authenticated caller for the duration of one request.
type Actor struct {
	ID       string
	Role     Role
	BranchID *string
}

// User is the stored account an Actor is derived from. Credentials and
// activation state live here; the core only ever reads them.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	BranchID     *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor projects the request-scoped identity out of a stored user.
func (u User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role, BranchID: u.BranchID}
}
