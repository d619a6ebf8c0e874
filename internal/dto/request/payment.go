package request

import "time"

type CreatePaymentRequest struct {
	BookingID        string  `json:"booking_id" validate:"required,uuid"`
	Amount           float64 `json:"amount" validate:"gt=0"`
	Currency         *string `json:"currency,omitempty" validate:"omitempty,len=3"`
	Provider         *string `json:"provider,omitempty" validate:"omitempty,max=50"`
	ProviderChargeID *string `json:"provider_charge_id,omitempty" validate:"omitempty,max=255"`
	Status           *string `json:"status,omitempty" validate:"omitempty,max=50"`
}

type UpdatePaymentRequest struct {
	Status           *string  `json:"status,omitempty" validate:"omitempty,max=50"`
	ProviderChargeID *string  `json:"provider_charge_id,omitempty" validate:"omitempty,max=255"`
	RefundedAmount   *float64 `json:"refunded_amount,omitempty" validate:"omitempty,gte=0"`
}

type RefundRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

type CreatePayoutRequest struct {
	VendorID         string     `json:"vendor_id" validate:"required,uuid"`
	Amount           float64    `json:"amount" validate:"gte=0"`
	ProviderPayoutID *string    `json:"provider_payout_id,omitempty" validate:"omitempty,max=255"`
	PeriodStart      *time.Time `json:"period_start,omitempty"`
	PeriodEnd        *time.Time `json:"period_end,omitempty"`
	Status           *string    `json:"status,omitempty" validate:"omitempty,max=50"`
}

type UpdatePayoutRequest struct {
	Amount           *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
	ProviderPayoutID *string  `json:"provider_payout_id,omitempty" validate:"omitempty,max=255"`
	Status           *string  `json:"status,omitempty" validate:"omitempty,max=50"`
}
