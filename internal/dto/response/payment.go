package response

import (
	"time"

	"event-marketplace/internal/data/entity"
)

type PaymentResponse struct {
	ID               string    `json:"id"`
	BookingID        string    `json:"booking_id"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	Provider         string    `json:"provider"`
	ProviderChargeID *string   `json:"provider_charge_id,omitempty"`
	Status           *string   `json:"status,omitempty"`
	RefundedAmount   float64   `json:"refunded_amount"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PayoutResponse struct {
	ID               string     `json:"id"`
	VendorID         string     `json:"vendor_id"`
	Amount           float64    `json:"amount"`
	ProviderPayoutID *string    `json:"provider_payout_id,omitempty"`
	PeriodStart      *time.Time `json:"period_start,omitempty"`
	PeriodEnd        *time.Time `json:"period_end,omitempty"`
	Status           *string    `json:"status,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               payment.ID.String(),
		BookingID:        payment.BookingID.String(),
		Amount:           payment.Amount,
		Currency:         payment.Currency,
		Provider:         payment.Provider,
		ProviderChargeID: payment.ProviderChargeID,
		Status:           payment.Status,
		RefundedAmount:   payment.RefundedAmount,
		CreatedAt:        payment.CreatedAt,
		UpdatedAt:        payment.UpdatedAt,
	}
}

func PayoutToResponse(payout *entity.Payout) PayoutResponse {
	return PayoutResponse{
		ID:               payout.ID.String(),
		VendorID:         payout.VendorID.String(),
		Amount:           payout.Amount,
		ProviderPayoutID: payout.ProviderPayoutID,
		PeriodStart:      payout.PeriodStart,
		PeriodEnd:        payout.PeriodEnd,
		Status:           payout.Status,
		CreatedAt:        payout.CreatedAt,
		UpdatedAt:        payout.UpdatedAt,
	}
}
