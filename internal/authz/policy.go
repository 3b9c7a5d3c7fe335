package authz

import "github.com/inkwell-blog/inkwell/internal/shared"

// OwnershipPolicy decides whether a principal may act on a resource whose
// author is authorID.
type OwnershipPolicy func(p shared.Principal, authorID int64) bool

func authorOrAdmin(p shared.Principal, authorID int64) bool {
	if p.Role == shared.RoleAdmin {
		return true
	}
	return p.ID == authorID
}

func authorOnly(p shared.Principal, authorID int64) bool {
	return p.ID == authorID
}

// Post operations all allow the admin override.
var (
	PostReadPolicy   OwnershipPolicy = authorOrAdmin
	PostUpdatePolicy OwnershipPolicy = authorOrAdmin
	PostDeletePolicy OwnershipPolicy = authorOrAdmin
)

// Comment update and delete deliberately differ: update requires an exact
// author match while delete honors the admin override. The two are kept as
// separately named policies so the asymmetry stays visible and each rule can
// change on its own.
var (
	CommentUpdatePolicy OwnershipPolicy = authorOnly
	CommentDeletePolicy OwnershipPolicy = authorOrAdmin
)
