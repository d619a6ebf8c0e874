package request

type CreateNotificationRequest struct {
	UserID  string         `json:"user_id" validate:"required,uuid"`
	Type    string         `json:"type" validate:"required,max=50"`
	Payload map[string]any `json:"payload,omitempty"`
}
