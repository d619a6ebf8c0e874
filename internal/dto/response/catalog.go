package response

import (
	"time"

	"event-marketplace/internal/data/entity"
)

type ServiceResponse struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendor_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	HourlyRate  float64   `json:"hourly_rate"`
	MinHours    int       `json:"min_hours"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MediaResponse struct {
	ID          string           `json:"id"`
	VendorID    string           `json:"vendor_id"`
	URL         string           `json:"url"`
	Type        entity.MediaType `json:"type"`
	Description *string          `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type AvailabilityResponse struct {
	ID             string    `json:"id"`
	VendorID       string    `json:"vendor_id"`
	StartAt        time.Time `json:"start_datetime"`
	EndAt          time.Time `json:"end_datetime"`
	RecurrenceRule *string   `json:"recurrence_rule,omitempty"`
	IsBlocked      bool      `json:"is_blocked"`
	CreatedAt      time.Time `json:"created_at"`
}

func ServiceToResponse(service *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:          service.ID.String(),
		VendorID:    service.VendorID.String(),
		Title:       service.Title,
		Description: service.Description,
		HourlyRate:  service.HourlyRate,
		MinHours:    service.MinHours,
		Images:      nonNil(service.Images),
		CreatedAt:   service.CreatedAt,
		UpdatedAt:   service.UpdatedAt,
	}
}

func MediaToResponse(media *entity.Media) MediaResponse {
	return MediaResponse{
		ID:          media.ID.String(),
		VendorID:    media.VendorID.String(),
		URL:         media.URL,
		Type:        media.Type,
		Description: media.Description,
		CreatedAt:   media.CreatedAt,
	}
}

func AvailabilityToResponse(slot *entity.AvailabilitySlot) AvailabilityResponse {
	return AvailabilityResponse{
		ID:             slot.ID.String(),
		VendorID:       slot.VendorID.String(),
		StartAt:        slot.StartAt,
		EndAt:          slot.EndAt,
		RecurrenceRule: slot.RecurrenceRule,
		IsBlocked:      slot.IsBlocked,
		CreatedAt:      slot.CreatedAt,
	}
}
