package auth

import "growmate/internal/model"

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   model.Role
}

// IsAdmin reports whether the caller holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// CanAccess reports whether the caller may act on resources owned by ownerID.
func (a Actor) CanAccess(ownerID string) bool {
	return a.IsAdmin() || (a.UserID != "" && a.UserID == ownerID)
}
