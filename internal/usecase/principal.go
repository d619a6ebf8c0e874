package usecase

import (
	"event-marketplace/internal/data/entity"

	"github.com/google/uuid"
)

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin
}

// Owns reports whether the caller may act on a resource owned by userID.
func (p Principal) Owns(userID uuid.UUID) bool {
	switch p.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleCustomer, entity.RoleVendor:
		return p.UserID == userID
	default:
		return false
	}
}

// ClientInfo describes where a request came from.
type ClientInfo struct {
	UserAgent string
	IP        string
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseID parses a path or body identifier, reporting failures against field.
func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, newValidationError(field, "Must be a valid UUID")
	}
	return id, nil
}
