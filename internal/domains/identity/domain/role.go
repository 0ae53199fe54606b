package domain

import (
	"errors"
	"strings"
)

// Role is the closed set of authorities an identity can hold.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleCustomer
	RoleGuest
)

var ErrInvalidRole = errors.New("role is invalid")

var roleNames = map[Role]string{
	RoleAdmin:    "ADMIN",
	RoleCustomer: "CUSTOMER",
	RoleGuest:    "GUEST",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole maps the textual role carried in tokens and config back to a Role.
func ParseRole(value string) (Role, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	for role, name := range roleNames {
		if name == value {
			return role, nil
		}
	}
	return RoleUnknown, ErrInvalidRole
}

// RoleSet is a bitmask of roles used by authorization rules.
type RoleSet uint8

// NewRoleSet builds a set from the given roles, ignoring unknown values.
func NewRoleSet(roles ...Role) RoleSet {
	var set RoleSet
	for _, role := range roles {
		if role.Valid() {
			set |= 1 << role
		}
	}
	return set
}

// Contains reports whether role is a member of the set.
func (s RoleSet) Contains(role Role) bool {
	if !role.Valid() {
		return false
	}
	return s&(1<<role) != 0
}

// Roles lists the members in declaration order.
func (s RoleSet) Roles() []Role {
	var out []Role
	for _, role := range []Role{RoleAdmin, RoleCustomer, RoleGuest} {
		if s.Contains(role) {
			out = append(out, role)
		}
	}
	return out
}

func (s RoleSet) String() string {
	roles := s.Roles()
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
