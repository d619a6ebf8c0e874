package entity

import (
	"time"

	"github.com/google/uuid"
)

// Service is an hourly-priced offering of a vendor.
type Service struct {
	BaseNoDelete
	VendorID    uuid.UUID `db:"vendor_id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	HourlyRate  float64   `db:"hourly_rate"`
	MinHours    int       `db:"min_hours"`
	Images      []string  `db:"images"`
}

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

type Media struct {
	BaseNoDelete
	VendorID    uuid.UUID `db:"vendor_id"`
	URL         string    `db:"url"`
	Type        MediaType `db:"type"`
	Description *string   `db:"description"`
}

type AvailabilitySlot struct {
	BaseNoDelete
	VendorID       uuid.UUID `db:"vendor_id"`
	StartAt        time.Time `db:"start_datetime"`
	EndAt          time.Time `db:"end_datetime"`
	RecurrenceRule *string   `db:"recurrence_rule"`
	IsBlocked      bool      `db:"is_blocked"`
}
