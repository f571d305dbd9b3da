package authz

import "reviewhub/internal/api/models"

// Role is the closed set of requester categories. Every authorization
// decision matches on one of these four values; there are no derived
// boolean role properties anywhere else in the codebase.
type Role int

const (
	Anonymous Role = iota
	User
	Moderator
	Admin
)

func (r Role) String() string {
	switch r {
	case Anonymous:
		return "anonymous"
	case User:
		return "user"
	case Moderator:
		return "moderator"
	case Admin:
		return "admin"
	}
	return "unknown"
}

// ParseRole maps a stored role string to the closed enumeration.
// Unrecognized strings degrade to the plain authenticated role rather
// than granting anything.
func ParseRole(role string) Role {
	switch role {
	case models.RoleAdmin:
		return Admin
	case models.RoleModerator:
		return Moderator
	default:
		return User
	}
}

// Requester is the identity an authorization decision is made for.
// A zero Requester is the anonymous caller.
type Requester struct {
	UserID string
	Role   Role
}

// Authenticated reports whether the requester carries an identity.
func (r Requester) Authenticated() bool {
	return r.UserID != ""
}
