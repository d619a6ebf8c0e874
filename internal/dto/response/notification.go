package response

import (
	"time"

	"event-marketplace/internal/data/entity"
)

type NotificationResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"created_at"`
}

type AuditLogResponse struct {
	ID        string         `json:"id"`
	AdminID   string         `json:"admin_id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	IP        *string        `json:"ip,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func NotificationToResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Type:      n.Type,
		Payload:   n.Payload,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func AuditLogToResponse(entry *entity.AdminAuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:        entry.ID.String(),
		AdminID:   entry.AdminID.String(),
		Action:    entry.Action,
		Details:   entry.Details,
		IP:        entry.IP,
		CreatedAt: entry.CreatedAt,
	}
}
