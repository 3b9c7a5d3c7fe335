package shared

import "context"

type principalContextKey struct{}

// Principal is the verified identity attached to one request. It is built by
// the session resolver from the token payload, never persisted, and discarded
// when the request ends.
type Principal struct {
	ID   int64
	Name string
	Role Role
}

// ContextWithPrincipal stores the resolved principal in context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal from context. Returns nil for
// anonymous requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}
