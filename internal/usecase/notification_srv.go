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

type NotificationService interface {
	Create(ctx context.Context, actor Principal, req *request.CreateNotificationRequest) (*response.NotificationResponse, error)
	ListOwn(ctx context.Context, actor Principal, filter repository.Filter) (*response.ListResponse[response.NotificationResponse], error)
	MarkRead(ctx context.Context, actor Principal, notificationID string) error
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) Create(ctx context.Context, actor Principal, req *request.CreateNotificationRequest) (*response.NotificationResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	userID, err := parseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}

	n := &entity.Notification{
		BaseNoDelete: entity.NewBase(time.Now()),
		UserID:       userID,
		Type:         req.Type,
		Payload:      req.Payload,
	}

	if err := s.repo.Notification.Create(ctx, n); err != nil {
		return nil, mapRepoError(err)
	}

	resp := response.NotificationToResponse(n)
	return &resp, nil
}

func (s *notificationService) ListOwn(ctx context.Context, actor Principal, filter repository.Filter) (*response.ListResponse[response.NotificationResponse], error) {
	filter = filter.With("user_id", actor.UserID)

	items, err := s.repo.Notification.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list notifications", zap.Error(err))
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return response.NewListResponse(response.MapList(items, response.NotificationToResponse), filter.Limit, filter.Offset), nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor Principal, notificationID string) error {
	id, err := parseID("id", notificationID)
	if err != nil {
		return err
	}

	if err := s.repo.Notification.MarkRead(ctx, id, actor.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
