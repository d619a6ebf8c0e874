package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/dto/request"
	"event-marketplace/internal/dto/response"
	"event-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	Create(ctx context.Context, actor Principal, req *request.CreatePaymentRequest) (*response.PaymentResponse, error)
	Get(ctx context.Context, actor Principal, paymentID string) (*response.PaymentResponse, error)
	List(ctx context.Context, actor Principal, filter repository.Filter) (*response.ListResponse[response.PaymentResponse], error)
	Update(ctx context.Context, actor Principal, paymentID string, req *request.UpdatePaymentRequest) (*UpdateResult[response.PaymentResponse], error)
	// Refund raises the refunded amount; it is rejected when the total
	// would exceed what was paid.
	Refund(ctx context.Context, actor Principal, paymentID string, req *request.RefundRequest) (*UpdateResult[response.PaymentResponse], error)
}

type paymentService struct {
	repo   *repository.Repository
	config utils.BookingConfig
	log    *zap.Logger
}

func NewPaymentService(repo *repository.Repository, config utils.BookingConfig, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) Create(ctx context.Context, actor Principal, req *request.CreatePaymentRequest) (*response.PaymentResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	bookingID, err := parseID("booking_id", req.BookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, newValidationError("booking_id", "Booking does not exist")
	}
	if !actor.Owns(booking.CustomerID) {
		return nil, ErrForbidden
	}
	if booking.Status == entity.BookingStatusCancelled || booking.Status == entity.BookingStatusRejected {
		return nil, fmt.Errorf("%w: booking is %s", ErrConflict, booking.Status)
	}

	payment := &entity.Payment{
		BaseNoDelete:     entity.NewBase(time.Now()),
		BookingID:        bookingID,
		Amount:           req.Amount,
		Currency:         s.currency(req.Currency),
		Provider:         s.provider(req.Provider),
		ProviderChargeID: req.ProviderChargeID,
		Status:           req.Status,
	}

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.Payment.FindByBookingID(ctx, bookingID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: booking %s already has payment %s", ErrConflict, bookingID, existing.ID)
		}
		if err := s.repo.Payment.Create(ctx, payment); err != nil {
			return err
		}
		return s.repo.Booking.SetPaymentID(ctx, bookingID, payment.ID)
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			s.log.Warn("Duplicate payment rejected", zap.String("booking_id", req.BookingID))
			return nil, err
		}
		s.log.Error("Failed to record payment", zap.Error(err), zap.String("booking_id", req.BookingID))
		return nil, mapRepoError(err)
	}

	s.log.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", req.BookingID),
		zap.Float64("amount", payment.Amount),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) currency(requested *string) string {
	if requested != nil && *requested != "" {
		return strings.ToUpper(*requested)
	}
	if s.config.DefaultCurrency != "" {
		return s.config.DefaultCurrency
	}
	return entity.DefaultCurrency
}

func (s *paymentService) provider(requested *string) string {
	if requested != nil && *requested != "" {
		return *requested
	}
	if s.config.DefaultProvider != "" {
		return s.config.DefaultProvider
	}
	return entity.DefaultProvider
}

func (s *paymentService) Get(ctx context.Context, actor Principal, paymentID string) (*response.PaymentResponse, error) {
	id, err := parseID("id", paymentID)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		return nil, ErrNotFound
	}

	if !actor.IsAdmin() {
		booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
		if err != nil {
			return nil, fmt.Errorf("find payment booking: %w", err)
		}
		if booking == nil || !actor.Owns(booking.CustomerID) {
			return nil, ErrForbidden
		}
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) List(ctx context.Context, actor Principal, filter repository.Filter) (*response.ListResponse[response.PaymentResponse], error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	payments, err := s.repo.Payment.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return response.NewListResponse(response.MapList(payments, response.PaymentToResponse), filter.Limit, filter.Offset), nil
}

func (s *paymentService) Update(ctx context.Context, actor Principal, paymentID string, req *request.UpdatePaymentRequest) (*UpdateResult[response.PaymentResponse], error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	id, err := parseID("id", paymentID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	current, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if current == nil {
		return notFound[response.PaymentResponse](), nil
	}

	if req.RefundedAmount != nil {
		switch {
		case *req.RefundedAmount < current.RefundedAmount:
			return rejected[response.PaymentResponse]("refunded amount cannot decrease"), nil
		case *req.RefundedAmount > current.Amount:
			return rejected[response.PaymentResponse]("refunded amount cannot exceed the paid amount"), nil
		}
	}

	patch := repository.PaymentPatch{
		Status:           req.Status,
		ProviderChargeID: req.ProviderChargeID,
		RefundedAmount:   req.RefundedAmount,
	}
	applied, err := s.repo.Payment.Update(ctx, id, patch)
	if err != nil {
		s.log.Error("Failed to update payment", zap.Error(err), zap.String("payment_id", paymentID))
		return nil, mapRepoError(err)
	}

	return s.settle(ctx, id, applied, "refunded amount changed concurrently")
}

func (s *paymentService) Refund(ctx context.Context, actor Principal, paymentID string, req *request.RefundRequest) (*UpdateResult[response.PaymentResponse], error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	id, err := parseID("id", paymentID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	applied, err := s.repo.Payment.Refund(ctx, id, req.Amount)
	if err != nil {
		s.log.Error("Failed to refund payment", zap.Error(err), zap.String("payment_id", paymentID))
		return nil, mapRepoError(err)
	}

	result, err := s.settle(ctx, id, applied, "")
	if err != nil {
		return nil, err
	}
	if result.Outcome == OutcomeUpdated {
		s.log.Info("Payment refunded",
			zap.String("payment_id", paymentID),
			zap.Float64("amount", req.Amount),
			zap.Float64("refunded_total", result.Value.RefundedAmount),
		)
	}
	return result, nil
}

// settle re-reads the payment after a guarded write and classifies it.
func (s *paymentService) settle(ctx context.Context, id uuid.UUID, applied bool, reason string) (*UpdateResult[response.PaymentResponse], error) {
	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload payment: %w", err)
	}
	if payment == nil {
		return notFound[response.PaymentResponse](), nil
	}
	if !applied {
		if reason == "" {
			reason = fmt.Sprintf("refund exceeds refundable balance %.2f", payment.Refundable())
		}
		return rejected[response.PaymentResponse](reason), nil
	}
	return updated(response.PaymentToResponse(payment)), nil
}
