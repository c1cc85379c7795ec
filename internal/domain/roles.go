package domain

import "strings"

// Role enumerates staff functions used for authorization decisions.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
	RoleWaiter  Role = "waiter"
	RoleKitchen Role = "kitchen"
	RoleBar     Role = "bar"
	RoleCafe    Role = "cafe"
	RoleBarista Role = "barista"
)

var knownRoles = map[Role]struct{}{
	RoleAdmin:   {},
	RoleManager: {},
	RoleCashier: {},
	RoleWaiter:  {},
	RoleKitchen: {},
	RoleBar:     {},
	RoleCafe:    {},
	RoleBarista: {},
}

// ParseRole normalizes a raw role string to a canonical Role.
// Matching is case-insensitive and ignores surrounding whitespace; the
// legacy "staff" synonym maps to waiter. Unknown values return false.
func ParseRole(raw string) (Role, bool) {
	candidate := Role(strings.ToLower(strings.TrimSpace(raw)))
	if candidate == "staff" {
		return RoleWaiter, true
	}
	if _, ok := knownRoles[candidate]; ok {
		return candidate, true
	}
	return "", false
}

// NormalizeRoles maps raw role strings through ParseRole, silently dropping
// anything outside the closed set. Order of the surviving roles is preserved.
func NormalizeRoles(raw []string) []Role {
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		if role, ok := ParseRole(r); ok {
			roles = append(roles, role)
		}
	}
	return roles
}

// HasRole reports membership of want in roles.
func HasRole(roles []Role, want Role) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether roles and want intersect.
func HasAnyRole(roles []Role, want ...Role) bool {
	for _, w := range want {
		if HasRole(roles, w) {
			return true
		}
	}
	return false
}
