package entity

import "github.com/google/uuid"

// Identity is the verified caller of an operation. It is resolved by the
// delivery layer and passed explicitly into every use case.
type Identity struct {
	UserID uuid.UUID
	Roles  Roles
}

// NewIdentity builds an Identity from a user ID and role names.
func NewIdentity(userID uuid.UUID, roles ...Role) Identity {
	return Identity{UserID: userID, Roles: roles}
}

// IsAuthenticated reports whether the identity refers to a user.
func (i Identity) IsAuthenticated() bool {
	return i.UserID != uuid.Nil
}

// HasRole reports whether the caller holds the given role.
func (i Identity) HasRole(role Role) bool {
	return i.Roles.Contains(role)
}

// IsAdmin is shorthand for HasRole(RoleAdmin).
func (i Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}
