package usecase

import (
	"context"
	"fmt"

	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/dto/response"

	"go.uber.org/zap"
)

// AuditService reads the admin audit trail. Writes go through the audit
// dispatcher.
type AuditService interface {
	Get(ctx context.Context, actor Principal, entryID string) (*response.AuditLogResponse, error)
	List(ctx context.Context, actor Principal, filter repository.Filter) (*response.ListResponse[response.AuditLogResponse], error)
}

type auditService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAuditService(repo *repository.Repository, log *zap.Logger) AuditService {
	return &auditService{
		repo: repo,
		log:  log.With(zap.String("service", "audit")),
	}
}

func (s *auditService) Get(ctx context.Context, actor Principal, entryID string) (*response.AuditLogResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	id, err := parseID("id", entryID)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.AuditLog.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find audit log: %w", err)
	}
	if entry == nil {
		return nil, ErrNotFound
	}

	resp := response.AuditLogToResponse(entry)
	return &resp, nil
}

func (s *auditService) List(ctx context.Context, actor Principal, filter repository.Filter) (*response.ListResponse[response.AuditLogResponse], error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	entries, err := s.repo.AuditLog.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list audit logs", zap.Error(err))
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return response.NewListResponse(response.MapList(entries, response.AuditLogToResponse), filter.Limit, filter.Offset), nil
}
