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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	CreateService(ctx context.Context, actor Principal, vendorID string, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error)
	ListServices(ctx context.Context, filter repository.Filter) (*response.ListResponse[response.ServiceResponse], error)
	UpdateService(ctx context.Context, actor Principal, serviceID string, req *request.UpdateServiceRequest) (*UpdateResult[response.ServiceResponse], error)

	AddMedia(ctx context.Context, actor Principal, vendorID string, req *request.CreateMediaRequest) (*response.MediaResponse, error)
	ListMedia(ctx context.Context, filter repository.Filter) (*response.ListResponse[response.MediaResponse], error)
	DeleteMedia(ctx context.Context, actor Principal, mediaID string) error

	AddAvailability(ctx context.Context, actor Principal, vendorID string, req *request.CreateAvailabilityRequest) (*response.AvailabilityResponse, error)
	ListAvailability(ctx context.Context, filter repository.Filter) (*response.ListResponse[response.AvailabilityResponse], error)
	DeleteAvailability(ctx context.Context, actor Principal, slotID string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

// requireVendor loads a vendor the caller may manage and turns a missing
// vendor into ErrNotFound.
func (s *catalogService) requireVendor(ctx context.Context, actor Principal, field, vendorID string) (*entity.VendorProfile, error) {
	id, err := parseID(field, vendorID)
	if err != nil {
		return nil, err
	}
	return s.requireVendorID(ctx, actor, id)
}

func (s *catalogService) requireVendorID(ctx context.Context, actor Principal, id uuid.UUID) (*entity.VendorProfile, error) {
	vendor, err := s.repo.Vendor.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	if vendor == nil {
		return nil, fmt.Errorf("%w: vendor %s", ErrNotFound, id.String())
	}
	if !actor.Owns(vendor.UserID) {
		return nil, ErrForbidden
	}
	return vendor, nil
}

func (s *catalogService) CreateService(ctx context.Context, actor Principal, vendorID string, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	vendor, err := s.requireVendor(ctx, actor, "vendor_id", vendorID)
	if err != nil {
		return nil, err
	}

	minHours := 1
	if req.MinHours != nil {
		minHours = *req.MinHours
	}

	service := &entity.Service{
		BaseNoDelete: entity.NewBase(time.Now()),
		VendorID:     vendor.ID,
		Title:        req.Title,
		Description:  req.Description,
		HourlyRate:   req.HourlyRate,
		MinHours:     minHours,
		Images:       req.Images,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		s.log.Error("Failed to create service", zap.Error(err), zap.String("vendor_id", vendorID))
		return nil, mapRepoError(err)
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string) (*response.ServiceResponse, error) {
	id, err := parseID("id", serviceID)
	if err != nil {
		return nil, err
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil {
		return nil, ErrNotFound
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *catalogService) ListServices(ctx context.Context, filter repository.Filter) (*response.ListResponse[response.ServiceResponse], error) {
	services, err := s.repo.Service.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}
	return response.NewListResponse(response.MapList(services, response.ServiceToResponse), filter.Limit, filter.Offset), nil
}

func (s *catalogService) UpdateService(ctx context.Context, actor Principal, serviceID string, req *request.UpdateServiceRequest) (*UpdateResult[response.ServiceResponse], error) {
	id, err := parseID("id", serviceID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	if service == nil {
		return notFound[response.ServiceResponse](), nil
	}
	if _, err := s.requireVendorID(ctx, actor, service.VendorID); err != nil {
		return nil, err
	}

	patch := repository.ServicePatch{
		Title:       req.Title,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
		MinHours:    req.MinHours,
		Images:      req.Images,
	}
	if err := s.repo.Service.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound[response.ServiceResponse](), nil
		}
		return nil, mapRepoError(err)
	}

	fresh, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload service: %w", err)
	}
	if fresh == nil {
		return notFound[response.ServiceResponse](), nil
	}
	return updated(response.ServiceToResponse(fresh)), nil
}

func (s *catalogService) AddMedia(ctx context.Context, actor Principal, vendorID string, req *request.CreateMediaRequest) (*response.MediaResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	vendor, err := s.requireVendor(ctx, actor, "vendor_id", vendorID)
	if err != nil {
		return nil, err
	}

	media := &entity.Media{
		BaseNoDelete: entity.NewBase(time.Now()),
		VendorID:     vendor.ID,
		URL:          req.URL,
		Type:         entity.MediaType(req.Type),
		Description:  req.Description,
	}

	if err := s.repo.Media.Create(ctx, media); err != nil {
		return nil, mapRepoError(err)
	}

	resp := response.MediaToResponse(media)
	return &resp, nil
}

func (s *catalogService) ListMedia(ctx context.Context, filter repository.Filter) (*response.ListResponse[response.MediaResponse], error) {
	items, err := s.repo.Media.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return response.NewListResponse(response.MapList(items, response.MediaToResponse), filter.Limit, filter.Offset), nil
}

func (s *catalogService) DeleteMedia(ctx context.Context, actor Principal, mediaID string) error {
	id, err := parseID("id", mediaID)
	if err != nil {
		return err
	}

	media, err := s.repo.Media.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find media: %w", err)
	}
	if media == nil {
		return ErrNotFound
	}
	if _, err := s.requireVendorID(ctx, actor, media.VendorID); err != nil {
		return err
	}

	return mapRepoError(s.repo.Media.Delete(ctx, id))
}

func (s *catalogService) AddAvailability(ctx context.Context, actor Principal, vendorID string, req *request.CreateAvailabilityRequest) (*response.AvailabilityResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	vendor, err := s.requireVendor(ctx, actor, "vendor_id", vendorID)
	if err != nil {
		return nil, err
	}

	slot := &entity.AvailabilitySlot{
		BaseNoDelete:   entity.NewBase(time.Now()),
		VendorID:       vendor.ID,
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		RecurrenceRule: req.RecurrenceRule,
		IsBlocked:      req.IsBlocked,
	}

	if err := s.repo.Availability.Create(ctx, slot); err != nil {
		return nil, mapRepoError(err)
	}

	resp := response.AvailabilityToResponse(slot)
	return &resp, nil
}

func (s *catalogService) ListAvailability(ctx context.Context, filter repository.Filter) (*response.ListResponse[response.AvailabilityResponse], error) {
	slots, err := s.repo.Availability.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return response.NewListResponse(response.MapList(slots, response.AvailabilityToResponse), filter.Limit, filter.Offset), nil
}

func (s *catalogService) DeleteAvailability(ctx context.Context, actor Principal, slotID string) error {
	id, err := parseID("id", slotID)
	if err != nil {
		return err
	}

	slot, err := s.repo.Availability.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find availability slot: %w", err)
	}
	if slot == nil {
		return ErrNotFound
	}
	if _, err := s.requireVendorID(ctx, actor, slot.VendorID); err != nil {
		return err
	}

	return mapRepoError(s.repo.Availability.Delete(ctx, id))
}
