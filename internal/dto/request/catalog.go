package request

import "time"

type CreateServiceRequest struct {
	Title       string   `json:"title" validate:"required,min=2,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	HourlyRate  float64  `json:"hourly_rate" validate:"gt=0"`
	MinHours    *int     `json:"min_hours,omitempty" validate:"omitempty,gte=1"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

type UpdateServiceRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gt=0"`
	MinHours    *int     `json:"min_hours,omitempty" validate:"omitempty,gte=1"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

type CreateMediaRequest struct {
	URL         string  `json:"url" validate:"required,url"`
	Type        string  `json:"type" validate:"required,oneof=image video"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type CreateAvailabilityRequest struct {
	StartAt        time.Time `json:"start_datetime" validate:"required"`
	EndAt          time.Time `json:"end_datetime" validate:"required,gtfield=StartAt"`
	RecurrenceRule *string   `json:"recurrence_rule,omitempty" validate:"omitempty,max=255"`
	IsBlocked      bool      `json:"is_blocked"`
}
