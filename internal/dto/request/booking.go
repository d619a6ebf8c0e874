package request

import "time"

type CreateBookingRequest struct {
	// CustomerID names the booking customer when an admin books on their
	// behalf. Customers may omit it or send their own id.
	CustomerID  string    `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	VendorID    string    `json:"vendor_id" validate:"required,uuid"`
	ServiceID   string    `json:"service_id" validate:"required,uuid"`
	StartAt     time.Time `json:"start_datetime" validate:"required"`
	EndAt       time.Time `json:"end_datetime" validate:"required,gtfield=StartAt"`
	Hours       int       `json:"hours" validate:"required,gte=1"`
	HourlyRate  float64   `json:"hourly_rate" validate:"gt=0"`
	TotalAmount float64   `json:"total_amount" validate:"gt=0"`
	Notes       *string   `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// UpdateBookingRequest is a partial update; at least one field must be set.
type UpdateBookingRequest struct {
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed rejected"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
