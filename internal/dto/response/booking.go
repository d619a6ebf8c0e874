package response

import (
	"time"

	"event-marketplace/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	CustomerID  string               `json:"customer_id"`
	VendorID    string               `json:"vendor_id"`
	ServiceID   string               `json:"service_id"`
	StartAt     time.Time            `json:"start_datetime"`
	EndAt       time.Time            `json:"end_datetime"`
	Hours       int                  `json:"hours"`
	HourlyRate  float64              `json:"hourly_rate"`
	TotalAmount float64              `json:"total_amount"`
	Status      entity.BookingStatus `json:"status"`
	PaymentID   *string              `json:"payment_id,omitempty"`
	Notes       *string              `json:"notes,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          booking.ID.String(),
		CustomerID:  booking.CustomerID.String(),
		VendorID:    booking.VendorID.String(),
		ServiceID:   booking.ServiceID.String(),
		StartAt:     booking.StartAt,
		EndAt:       booking.EndAt,
		Hours:       booking.Hours,
		HourlyRate:  booking.HourlyRate,
		TotalAmount: booking.TotalAmount,
		Status:      booking.Status,
		Notes:       booking.Notes,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}

	if booking.PaymentID != nil {
		id := booking.PaymentID.String()
		resp.PaymentID = &id
	}

	return resp
}
