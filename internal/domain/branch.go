package domain

import "time"

// Branch is an organizational unit owning a set of reviews. A branch has at
// most one manager; a manager may own any number of branches.
type Branch struct {
	ID        string
	Name      string
	Location  string
	Code      string
	ManagerID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
