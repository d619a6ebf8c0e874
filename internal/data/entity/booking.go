package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusRejected  BookingStatus = "rejected"
)

// bookingTransitions lists the allowed next states. Terminal states map to nil.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusRejected},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCancelled: nil,
	BookingStatusCompleted: nil,
	BookingStatusRejected:  nil,
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) IsTerminal() bool {
	next, ok := bookingTransitions[s]
	return ok && len(next) == 0
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Blocking reports whether a booking in this state holds its time range.
func (s BookingStatus) Blocking() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

type Booking struct {
	BaseNoDelete
	CustomerID  uuid.UUID     `db:"customer_id"`
	VendorID    uuid.UUID     `db:"vendor_id"`
	ServiceID   uuid.UUID     `db:"service_id"`
	StartAt     time.Time     `db:"start_datetime"`
	EndAt       time.Time     `db:"end_datetime"`
	Hours       int           `db:"hours"`
	HourlyRate  float64       `db:"hourly_rate"`
	TotalAmount float64       `db:"total_amount"`
	Status      BookingStatus `db:"status"`
	PaymentID   *uuid.UUID    `db:"payment_id"`
	Notes       *string       `db:"notes"`
}
