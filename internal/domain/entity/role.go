// Package entity contains the core business objects of the marketplace.
package entity

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Role is a capability carried in the caller's token. A user may hold
// several, e.g. a vendor who also shops as a customer.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	default:
		return false
	}
}

type Roles []Role

func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to the token claim form.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings keeps the valid, distinct roles of a token claim.
// Unknown roles are ignored so older tokens keep working.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() && !result.Contains(role) {
			result = append(result, role)
		}
	}

	return result
}

// ParseRoles parses a comma separated role list strictly: unknown roles are
// an error and at least one role is required.
func ParseRoles(raw string) (Roles, error) {
	var roles Roles
	for part := range strings.SplitSeq(raw, ",") {
		role := Role(strings.ToLower(strings.TrimSpace(part)))
		if role == "" {
			continue
		}
		if !role.IsValid() {
			return nil, fmt.Errorf("unknown role %q", role)
		}
		if !roles.Contains(role) {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		return nil, errors.New("at least one role is required")
	}

	return roles, nil
}
