// Package access computes which branches an actor is allowed to query.
package access

import (
	"context"
	"fmt"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

// BranchDirectory is the branch-ownership lookup the resolver depends on.
type BranchDirectory interface {
	AllBranchIDs(ctx context.Context) ([]string, error)
	BranchIDsManagedBy(ctx context.Context, actorID string) ([]string, error)
}

// Resolver maps an actor's role and branch affiliation to a visible branch set.
type Resolver struct {
	branches BranchDirectory
}

// NewResolver constructs a Resolver over the given directory.
func NewResolver(branches BranchDirectory) *Resolver {
	return &Resolver{branches: branches}
}

// VisibleBranches returns the branch identifiers the actor may see.
//
// Admins and owners see every branch. Managers see exactly the branches they
// manage; a manager with none sees nothing. Every other role sees its home
// branch if it has one, and falls back to all branches if it does not. The
// asymmetry between the branch-less manager and the branch-less staff member
// is deliberate and preserved from the original access policy.
//
// An empty result means "no access" and is not an error.
func (r *Resolver) VisibleBranches(ctx context.Context, actor domain.Actor) ([]string, error) {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleOwner:
		ids, err := r.branches.AllBranchIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve all branches: %w", err)
		}
		return ids, nil
	case domain.RoleManager:
		ids, err := r.branches.BranchIDsManagedBy(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve managed branches: %w", err)
		}
		return ids, nil
	default:
		if actor.BranchID != nil && *actor.BranchID != "" {
			return []string{*actor.BranchID}, nil
		}
		ids, err := r.branches.AllBranchIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve all branches: %w", err)
		}
		return ids, nil
	}
}
