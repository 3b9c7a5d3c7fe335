package shared

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ValidRole reports whether the value is a member of the closed role set.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}
