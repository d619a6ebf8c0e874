package entity

import (
	"github.com/google/uuid"
)

const (
	NotificationBookingStatus = "booking_status"
	NotificationReviewPosted  = "review_posted"
)

type Notification struct {
	BaseNoDelete
	UserID  uuid.UUID      `db:"user_id"`
	Type    string         `db:"type"`
	Payload map[string]any `db:"payload"`
	Read    bool           `db:"read"`
}

// AdminAuditLog is append-only; there is no update or delete path.
type AdminAuditLog struct {
	BaseSimple
	AdminID uuid.UUID      `db:"admin_id"`
	Action  string         `db:"action"`
	Details map[string]any `db:"details"`
	IP      *string        `db:"ip"`
}
