package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/dto/request"
	"event-marketplace/internal/dto/response"

	"go.uber.org/zap"
)

// PayoutService keeps the payout ledger. Totals come from the external
// payout process; nothing here aggregates bookings.
type PayoutService interface {
	Create(ctx context.Context, actor Principal, req *request.CreatePayoutRequest) (*response.PayoutResponse, error)
	Get(ctx context.Context, actor Principal, payoutID string) (*response.PayoutResponse, error)
	List(ctx context.Context, actor Principal, filter repository.Filter) (*response.ListResponse[response.PayoutResponse], error)
	Update(ctx context.Context, actor Principal, payoutID string, req *request.UpdatePayoutRequest) (*UpdateResult[response.PayoutResponse], error)
}

type payoutService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPayoutService(repo *repository.Repository, log *zap.Logger) PayoutService {
	return &payoutService{
		repo: repo,
		log:  log.With(zap.String("service", "payout")),
	}
}

func (s *payoutService) Create(ctx context.Context, actor Principal, req *request.CreatePayoutRequest) (*response.PayoutResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	vendorID, err := parseID("vendor_id", req.VendorID)
	if err != nil {
		return nil, err
	}
	if req.PeriodStart != nil && req.PeriodEnd != nil && req.PeriodEnd.Before(*req.PeriodStart) {
		return nil, newValidationError("period_end", "Must not be before period_start")
	}

	vendor, err := s.repo.Vendor.FindByID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	if vendor == nil {
		return nil, newValidationError("vendor_id", "Vendor does not exist")
	}

	payout := &entity.Payout{
		BaseNoDelete:     entity.NewBase(time.Now()),
		VendorID:         vendorID,
		Amount:           req.Amount,
		ProviderPayoutID: req.ProviderPayoutID,
		PeriodStart:      req.PeriodStart,
		PeriodEnd:        req.PeriodEnd,
		Status:           req.Status,
	}

	if err := s.repo.Payout.Create(ctx, payout); err != nil {
		s.log.Error("Failed to record payout", zap.Error(err), zap.String("vendor_id", req.VendorID))
		return nil, mapRepoError(err)
	}

	resp := response.PayoutToResponse(payout)
	return &resp, nil
}

func (s *payoutService) Get(ctx context.Context, actor Principal, payoutID string) (*response.PayoutResponse, error) {
	id, err := parseID("id", payoutID)
	if err != nil {
		return nil, err
	}

	payout, err := s.repo.Payout.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find payout: %w", err)
	}
	if payout == nil {
		return nil, ErrNotFound
	}

	if !actor.IsAdmin() {
		vendor, err := s.repo.Vendor.FindByID(ctx, payout.VendorID)
		if err != nil {
			return nil, fmt.Errorf("find payout vendor: %w", err)
		}
		if vendor == nil || !actor.Owns(vendor.UserID) {
			return nil, ErrForbidden
		}
	}

	resp := response.PayoutToResponse(payout)
	return &resp, nil
}

func (s *payoutService) List(ctx context.Context, actor Principal, filter repository.Filter) (*response.ListResponse[response.PayoutResponse], error) {
	switch actor.Role {
	case entity.RoleAdmin:
	case entity.RoleVendor:
		ids, err := vendorIDsOf(ctx, s.repo.Vendor, actor.UserID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return response.NewListResponse([]response.PayoutResponse{}, filter.Limit, filter.Offset), nil
		}
		filter = filter.WithAnyOf("vendor_id", ids)
	case entity.RoleCustomer:
		return nil, ErrForbidden
	default:
		return nil, ErrForbidden
	}

	payouts, err := s.repo.Payout.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	return response.NewListResponse(response.MapList(payouts, response.PayoutToResponse), filter.Limit, filter.Offset), nil
}

func (s *payoutService) Update(ctx context.Context, actor Principal, payoutID string, req *request.UpdatePayoutRequest) (*UpdateResult[response.PayoutResponse], error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	id, err := parseID("id", payoutID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	patch := repository.PayoutPatch{
		Amount:           req.Amount,
		ProviderPayoutID: req.ProviderPayoutID,
		Status:           req.Status,
	}
	if err := s.repo.Payout.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound[response.PayoutResponse](), nil
		}
		return nil, mapRepoError(err)
	}

	payout, err := s.repo.Payout.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload payout: %w", err)
	}
	if payout == nil {
		return notFound[response.PayoutResponse](), nil
	}
	return updated(response.PayoutToResponse(payout)), nil
}
