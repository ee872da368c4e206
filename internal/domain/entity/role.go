// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleGuest is the default role granted at registration.
	RoleGuest Role = "guest"
	// RoleVendor may publish and manage its own adverts.
	RoleVendor Role = "vendor"
	// RoleAdmin is reserved for operators; it cannot be chosen at registration.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleVendor, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsSelfAssignable reports whether a user may pick this role when registering.
func (r Role) IsSelfAssignable() bool {
	return r == RoleGuest || r == RoleVendor
}

// ParseRole converts a stored or submitted value into a Role.
// The empty string maps to RoleGuest; any unknown value is rejected.
func ParseRole(s string) (Role, bool) {
	if s == "" {
		return RoleGuest, true
	}

	role := Role(s)

	return role, role.IsValid()
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for logging and error details.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
