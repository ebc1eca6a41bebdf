// Package rbac defines the closed set of user roles and the allow-list check
// used by route guards.
package rbac

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCreator Role = "creator"
	RoleReader  Role = "reader"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleCreator, RoleReader}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCreator, RoleReader:
		return true
	default:
		return false
	}
}

// Policy is an allow-list of roles.
type Policy []Role

// Allow builds a policy from the given roles.
func Allow(roles ...Role) Policy {
	return Policy(roles)
}

// Permits reports whether role is in the allow-list. Unknown roles are never permitted.
func (p Policy) Permits(role Role) bool {
	if !role.Valid() {
		return false
	}
	for _, allowed := range p {
		if allowed == role {
			return true
		}
	}
	return false
}

// Common policies.
var (
	AdminOnly = Allow(RoleAdmin)
	AnyUser   = Allow(Roles...)
)
