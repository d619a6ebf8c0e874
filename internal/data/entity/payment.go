package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCurrency = "USD"
	DefaultProvider = "Stripe"
)

// Payment records what the external provider reported for a booking.
// RefundedAmount only grows and never exceeds Amount.
type Payment struct {
	BaseNoDelete
	BookingID        uuid.UUID `db:"booking_id"`
	Amount           float64   `db:"amount"`
	Currency         string    `db:"currency"`
	Provider         string    `db:"provider"`
	ProviderChargeID *string   `db:"provider_charge_id"`
	Status           *string   `db:"status"`
	RefundedAmount   float64   `db:"refunded_amount"`
}

func (p *Payment) Refundable() float64 {
	return p.Amount - p.RefundedAmount
}

// Payout is a ledger row written by an administrative process.
type Payout struct {
	BaseNoDelete
	VendorID         uuid.UUID  `db:"vendor_id"`
	Amount           float64    `db:"amount"`
	ProviderPayoutID *string    `db:"provider_payout_id"`
	PeriodStart      *time.Time `db:"period_start"`
	PeriodEnd        *time.Time `db:"period_end"`
	Status           *string    `db:"status"`
}
