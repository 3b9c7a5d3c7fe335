package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inkwell-blog/inkwell/internal/shared"
	"github.com/inkwell-blog/inkwell/internal/users"
)

// SubjectStore confirms the continued existence of a token's subject. A
// deleted account must be rejected even while its token is still unexpired.
type SubjectStore interface {
	FindByID(ctx context.Context, id int64) (*users.User, error)
}

// RolePolicy picks the effective role for a resolved principal. The token
// payload embeds the role granted at issuance; whether that or the currently
// stored role wins is a policy decision isolated behind this seam.
type RolePolicy interface {
	EffectiveRole(claims *Claims, stored *users.User) shared.Role
}

// TokenRolePolicy trusts the role embedded in the token payload. Role changes
// therefore take effect at the next login, not immediately.
type TokenRolePolicy struct{}

// EffectiveRole returns the role carried by the token.
func (TokenRolePolicy) EffectiveRole(claims *Claims, _ *users.User) shared.Role {
	return claims.Role
}

// StoredRolePolicy re-reads the role from the user store on every request.
type StoredRolePolicy struct{}

// EffectiveRole returns the currently stored role.
func (StoredRolePolicy) EffectiveRole(_ *Claims, stored *users.User) shared.Role {
	return stored.Role
}

// Resolver turns a raw Authorization header into a verified principal.
type Resolver struct {
	codec  *TokenCodec
	store  SubjectStore
	policy RolePolicy
}

// NewResolver constructs a Resolver.
func NewResolver(codec *TokenCodec, store SubjectStore, policy RolePolicy) *Resolver {
	if policy == nil {
		policy = TokenRolePolicy{}
	}
	return &Resolver{codec: codec, store: store, policy: policy}
}

const bearerPrefix = "Bearer "

// Resolve verifies the bearer credential and confirms the subject still
// exists. Credential problems come back as a *Failure; a store fault comes
// back as an ordinary error and must not be reported as a denial.
func (r *Resolver) Resolve(ctx context.Context, authorization string) (*shared.Principal, error) {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return nil, &Failure{Reason: ReasonNoCredential}
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authorization, bearerPrefix))
	if raw == "" {
		return nil, &Failure{Reason: ReasonNoCredential}
	}

	claims, failure := r.codec.Verify(raw)
	if failure != nil {
		return nil, failure
	}

	stored, err := r.store.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &Failure{Reason: ReasonSubjectNotFound}
		}
		return nil, fmt.Errorf("auth: subject lookup: %w", err)
	}

	return &shared.Principal{
		ID:   claims.UserID,
		Name: claims.Name,
		Role: r.policy.EffectiveRole(claims, stored),
	}, nil
}
