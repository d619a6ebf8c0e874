package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/dto/request"
	"event-marketplace/internal/dto/response"
	"event-marketplace/pkg/metrics"
	"event-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	Create(ctx context.Context, actor Principal, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	Get(ctx context.Context, actor Principal, bookingID string) (*response.BookingResponse, error)
	List(ctx context.Context, actor Principal, filter repository.Filter) (*response.ListResponse[response.BookingResponse], error)
	// Update applies a partial update. Status changes follow the booking
	// state machine and lose to a concurrent change of the same booking.
	Update(ctx context.Context, actor Principal, bookingID string, req *request.UpdateBookingRequest) (*UpdateResult[response.BookingResponse], error)
}

// party is the relation of the caller to a booking.
type party int

const (
	partyNone party = iota
	partyCustomer
	partyVendor
	partyAdmin
)

type bookingService struct {
	repo    *repository.Repository
	config  utils.BookingConfig
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewBookingService(repo *repository.Repository, config utils.BookingConfig, m *metrics.Metrics, log *zap.Logger) BookingService {
	return &bookingService{
		repo:    repo,
		config:  config,
		metrics: m,
		log:     log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context, actor Principal, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	switch actor.Role {
	case entity.RoleCustomer, entity.RoleAdmin:
	case entity.RoleVendor:
		return nil, fmt.Errorf("%w: vendors cannot place bookings", ErrForbidden)
	default:
		return nil, ErrForbidden
	}

	if err := validate(req); err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	customerID, err := s.resolveCustomer(ctx, actor, req.CustomerID)
	if err != nil {
		return nil, err
	}
	vendorID, err := parseID("vendor_id", req.VendorID)
	if err != nil {
		return nil, err
	}
	serviceID, err := parseID("service_id", req.ServiceID)
	if err != nil {
		return nil, err
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil {
		return nil, newValidationError("service_id", "Service does not exist")
	}
	if service.VendorID != vendorID {
		return nil, newValidationError("service_id", "Service does not belong to vendor")
	}
	if req.Hours < service.MinHours {
		return nil, newValidationError("hours", fmt.Sprintf("Minimum is %d", service.MinHours))
	}
	if req.EndAt.Sub(req.StartAt) != time.Duration(req.Hours)*time.Hour {
		return nil, newValidationError("hours", "Must match the booked time range")
	}
	if math.Abs(req.HourlyRate-service.HourlyRate) > s.tolerance() {
		return nil, newValidationError("hourly_rate", fmt.Sprintf("Must equal the service rate (%.2f)", service.HourlyRate))
	}

	expected := float64(req.Hours) * req.HourlyRate
	if math.Abs(expected-req.TotalAmount) > s.tolerance() {
		return nil, newValidationError("total_amount", fmt.Sprintf("Must equal hours x hourly_rate (%.2f)", expected))
	}

	booking := &entity.Booking{
		BaseNoDelete: entity.NewBase(time.Now()),
		CustomerID:   customerID,
		VendorID:     vendorID,
		ServiceID:    serviceID,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		Hours:        req.Hours,
		HourlyRate:   req.HourlyRate,
		TotalAmount:  req.TotalAmount,
		Status:       entity.BookingStatusPending,
		Notes:        req.Notes,
	}

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if s.config.EnforceOverlap {
			if err := s.checkAvailability(ctx, booking); err != nil {
				return err
			}
		}
		return s.repo.Booking.Create(ctx, booking)
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, err
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("service_id", req.ServiceID),
		)
		return nil, mapRepoError(err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("vendor_id", booking.VendorID.String()),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// resolveCustomer decides whose booking is being placed. Admins must name an
// existing customer; customers always book for themselves.
func (s *bookingService) resolveCustomer(ctx context.Context, actor Principal, requested string) (uuid.UUID, error) {
	switch actor.Role {
	case entity.RoleCustomer:
		if requested != "" && requested != actor.UserID.String() {
			return uuid.Nil, fmt.Errorf("%w: customers book for themselves", ErrForbidden)
		}
		return actor.UserID, nil
	case entity.RoleAdmin:
		if requested == "" {
			return uuid.Nil, newValidationError("customer_id", "This field is required")
		}
		id, err := parseID("customer_id", requested)
		if err != nil {
			return uuid.Nil, err
		}
		customer, err := s.repo.User.FindByID(ctx, id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("find customer: %w", err)
		}
		if customer == nil {
			return uuid.Nil, newValidationError("customer_id", "User does not exist")
		}
		if customer.Role != entity.RoleCustomer {
			return uuid.Nil, newValidationError("customer_id", "User is not a customer")
		}
		return id, nil
	case entity.RoleVendor:
		return uuid.Nil, ErrForbidden
	default:
		return uuid.Nil, ErrForbidden
	}
}

func (s *bookingService) tolerance() float64 {
	if s.config.AmountTolerance > 0 {
		return s.config.AmountTolerance
	}
	return 0.01
}

func (s *bookingService) checkAvailability(ctx context.Context, booking *entity.Booking) error {
	blocked, err := s.repo.Availability.HasBlockedOverlap(ctx, booking.VendorID, booking.StartAt, booking.EndAt)
	if err != nil {
		return err
	}
	if blocked {
		return fmt.Errorf("%w: vendor is unavailable in the requested time range", ErrConflict)
	}

	taken, err := s.repo.Booking.HasOverlap(ctx, booking.VendorID, booking.ServiceID, booking.StartAt, booking.EndAt)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: service is already booked in the requested time range", ErrConflict)
	}

	return nil
}

func (s *bookingService) Get(ctx context.Context, actor Principal, bookingID string) (*response.BookingResponse, error) {
	id, err := parseID("id", bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrNotFound
	}

	p, err := s.partyOf(ctx, actor, booking)
	if err != nil {
		return nil, err
	}
	if p == partyNone {
		return nil, ErrForbidden
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) List(ctx context.Context, actor Principal, filter repository.Filter) (*response.ListResponse[response.BookingResponse], error) {
	switch actor.Role {
	case entity.RoleAdmin:
	case entity.RoleCustomer:
		filter = filter.With("customer_id", actor.UserID)
	case entity.RoleVendor:
		ids, err := vendorIDsOf(ctx, s.repo.Vendor, actor.UserID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return response.NewListResponse([]response.BookingResponse{}, filter.Limit, filter.Offset), nil
		}
		filter = filter.WithAnyOf("vendor_id", ids)
	default:
		return nil, ErrForbidden
	}

	bookings, err := s.repo.Booking.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return response.NewListResponse(response.MapList(bookings, response.BookingToResponse), filter.Limit, filter.Offset), nil
}

func (s *bookingService) Update(ctx context.Context, actor Principal, bookingID string, req *request.UpdateBookingRequest) (*UpdateResult[response.BookingResponse], error) {
	id, err := parseID("id", bookingID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Status == nil && req.Notes == nil {
		return nil, newValidationError("_", "Nothing to update")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return notFound[response.BookingResponse](), nil
	}

	p, err := s.partyOf(ctx, actor, booking)
	if err != nil {
		return nil, err
	}
	if p == partyNone {
		return nil, ErrForbidden
	}

	from := booking.Status
	var to entity.BookingStatus
	if req.Status != nil {
		to = entity.BookingStatus(*req.Status)
		if !from.CanTransitionTo(to) {
			s.log.Warn("Rejected booking transition",
				zap.String("booking_id", bookingID),
				zap.String("from", string(from)),
				zap.String("to", string(to)),
			)
			return rejected[response.BookingResponse](fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, from, to)), nil
		}
		if !mayTransition(p, to) {
			return nil, fmt.Errorf("%w: cannot move booking to %s", ErrForbidden, to)
		}
	}

	var outcome *UpdateResult[response.BookingResponse]
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if req.Status != nil {
			applied, err := s.repo.Booking.TransitionStatus(ctx, id, from, to)
			if err != nil {
				return err
			}
			if !applied {
				outcome, err = s.lostRace(ctx, id)
				return err
			}
		}
		if req.Notes != nil {
			if err := s.repo.Booking.UpdateNotes(ctx, id, *req.Notes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound[response.BookingResponse](), nil
		}
		s.log.Error("Failed to update booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, mapRepoError(err)
	}
	if outcome != nil {
		return outcome, nil
	}

	if req.Status != nil {
		s.metrics.BookingTransition(string(from), string(to))
		s.notifyTransition(ctx, booking, from, to)
		s.log.Info("Booking status changed",
			zap.String("booking_id", bookingID),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
	}

	fresh, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload booking: %w", err)
	}
	if fresh == nil {
		return notFound[response.BookingResponse](), nil
	}
	return updated(response.BookingToResponse(fresh)), nil
}

// lostRace classifies a compare-and-set that matched no row.
func (s *bookingService) lostRace(ctx context.Context, id uuid.UUID) (*UpdateResult[response.BookingResponse], error) {
	current, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload booking: %w", err)
	}
	if current == nil {
		return notFound[response.BookingResponse](), nil
	}
	return rejected[response.BookingResponse](fmt.Sprintf("booking status changed concurrently to %s", current.Status)), nil
}

func (s *bookingService) partyOf(ctx context.Context, actor Principal, booking *entity.Booking) (party, error) {
	switch actor.Role {
	case entity.RoleAdmin:
		return partyAdmin, nil
	case entity.RoleCustomer:
		if booking.CustomerID == actor.UserID {
			return partyCustomer, nil
		}
		return partyNone, nil
	case entity.RoleVendor:
		vendor, err := s.repo.Vendor.FindByID(ctx, booking.VendorID)
		if err != nil {
			return partyNone, fmt.Errorf("find booking vendor: %w", err)
		}
		if vendor != nil && vendor.UserID == actor.UserID {
			return partyVendor, nil
		}
		return partyNone, nil
	default:
		return partyNone, nil
	}
}

// mayTransition: customers may only cancel; vendors drive the rest.
func mayTransition(p party, to entity.BookingStatus) bool {
	switch p {
	case partyAdmin:
		return true
	case partyVendor:
		return to != entity.BookingStatusPending
	case partyCustomer:
		return to == entity.BookingStatusCancelled
	default:
		return false
	}
}

func (s *bookingService) notifyTransition(ctx context.Context, booking *entity.Booking, from, to entity.BookingStatus) {
	n := &entity.Notification{
		BaseNoDelete: entity.NewBase(time.Now()),
		UserID:       booking.CustomerID,
		Type:         entity.NotificationBookingStatus,
		Payload: map[string]any{
			"booking_id": booking.ID.String(),
			"from":       string(from),
			"to":         string(to),
		},
	}

	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.log.Warn("Failed to record booking notification",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}
}
