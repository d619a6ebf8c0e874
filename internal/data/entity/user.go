package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserRole is a closed set. Use ParseRole at the boundary and switch on the
// constants everywhere else.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleVendor   UserRole = "vendor"
	RoleAdmin    UserRole = "admin"
)

func ParseRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return UserRole(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// SelfRegistrable reports whether the role may be chosen at sign-up.
func (r UserRole) SelfRegistrable() bool {
	switch r {
	case RoleCustomer, RoleVendor:
		return true
	case RoleAdmin:
		return false
	default:
		return false
	}
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

func ParseUserStatus(s string) (UserStatus, error) {
	switch UserStatus(s) {
	case UserStatusActive, UserStatusSuspended:
		return UserStatus(s), nil
	default:
		return "", fmt.Errorf("unknown user status %q", s)
	}
}

type User struct {
	BaseNoDelete
	Name         string            `db:"name"`
	Email        string            `db:"email"`
	PasswordHash string            `db:"password_hash"`
	Phone        *string           `db:"phone"`
	Address      *string           `db:"address"`
	AvatarURL    *string           `db:"avatar_url"`
	Role         UserRole          `db:"role"`
	Status       UserStatus        `db:"status"`
	Metadata     map[string]string `db:"metadata"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
