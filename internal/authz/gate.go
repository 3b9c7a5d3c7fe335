// Package authz holds the request authorization decisions: the route role gate
// and the per-operation ownership policies.
package authz

import (
	"context"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// RoleGateAllows evaluates a route's declared role requirement against the
// resolved principal. An empty requirement means the route is public. The gate
// runs before any resource lookup so unauthorized callers never learn whether
// a resource exists.
func RoleGateAllows(required []shared.Role, p *shared.Principal) bool {
	if len(required) == 0 {
		return true
	}
	if p == nil {
		return false
	}
	for _, role := range required {
		if p.Role == role {
			return true
		}
	}
	return false
}

// AuthorResolver fetches the owning user id of a resource. Implementations
// return shared.ErrNotFound when no resource with that id exists.
type AuthorResolver interface {
	AuthorOf(ctx context.Context, id int64) (int64, error)
}

// Authorize resolves the resource's author and applies the ownership policy.
// A missing resource surfaces as shared.ErrNotFound, distinct from the
// shared.ErrForbidden returned on a policy denial.
func Authorize(ctx context.Context, resolver AuthorResolver, policy OwnershipPolicy, p shared.Principal, resourceID int64) error {
	authorID, err := resolver.AuthorOf(ctx, resourceID)
	if err != nil {
		return err
	}
	if !policy(p, authorID) {
		return shared.ErrForbidden
	}
	return nil
}
