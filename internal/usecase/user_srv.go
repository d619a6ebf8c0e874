package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-marketplace/internal/audit"
	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/dto/request"
	"event-marketplace/internal/dto/response"
	"event-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	Create(ctx context.Context, actor Principal, req *request.CreateUserRequest) (*response.UserResponse, error)
	Get(ctx context.Context, actor Principal, userID string) (*response.UserResponse, error)
	List(ctx context.Context, actor Principal, filter repository.Filter) (*response.ListResponse[response.UserResponse], error)
	Update(ctx context.Context, actor Principal, userID string, req *request.UpdateUserRequest) (*UpdateResult[response.UserResponse], error)
	UpdateStatus(ctx context.Context, actor Principal, userID string, req *request.UpdateUserStatusRequest, client ClientInfo) (*UpdateResult[response.UserResponse], error)
	Delete(ctx context.Context, actor Principal, userID string, client ClientInfo) error
}

type userService struct {
	repo  *repository.Repository
	audit audit.Recorder
	log   *zap.Logger
}

func NewUserService(repo *repository.Repository, recorder audit.Recorder, log *zap.Logger) UserService {
	return &userService{
		repo:  repo,
		audit: recorder,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) Create(ctx context.Context, actor Principal, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, newValidationError("role", err.Error())
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	user := &entity.User{
		BaseNoDelete: entity.NewBase(time.Now()),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashed,
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         role,
		Status:       entity.UserStatusActive,
		Metadata:     metadata,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, mapRepoError(err)
	}

	s.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("admin_id", actor.UserID.String()),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Get(ctx context.Context, actor Principal, userID string) (*response.UserResponse, error) {
	id, err := parseID("id", userID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(id) {
		return nil, ErrForbidden
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, actor Principal, filter repository.Filter) (*response.ListResponse[response.UserResponse], error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	users, err := s.repo.User.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	return response.NewListResponse(response.MapList(users, response.UserToResponse), filter.Limit, filter.Offset), nil
}

func (s *userService) Update(ctx context.Context, actor Principal, userID string, req *request.UpdateUserRequest) (*UpdateResult[response.UserResponse], error) {
	id, err := parseID("id", userID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(id) {
		return nil, ErrForbidden
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	patch := repository.UserPatch{
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		AvatarURL: req.AvatarURL,
		Metadata:  req.Metadata,
	}

	if err := s.repo.User.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound[response.UserResponse](), nil
		}
		return nil, mapRepoError(err)
	}

	return s.reload(ctx, id)
}

func (s *userService) UpdateStatus(ctx context.Context, actor Principal, userID string, req *request.UpdateUserStatusRequest, client ClientInfo) (*UpdateResult[response.UserResponse], error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	id, err := parseID("id", userID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	status, err := entity.ParseUserStatus(req.Status)
	if err != nil {
		return nil, newValidationError("status", err.Error())
	}
	if id == actor.UserID && status == entity.UserStatusSuspended {
		return rejected[response.UserResponse]("admins cannot suspend themselves"), nil
	}

	if err := s.repo.User.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound[response.UserResponse](), nil
		}
		return nil, mapRepoError(err)
	}

	if status == entity.UserStatusSuspended {
		if err := s.repo.Session.RevokeAllUserSessions(ctx, id); err != nil {
			s.log.Warn("Failed to revoke sessions of suspended user", zap.Error(err), zap.String("user_id", userID))
		}
	}

	s.audit.Dispatch(audit.Event{
		AdminID: actor.UserID,
		Action:  "user.status_changed",
		Details: map[string]any{"user_id": id.String(), "status": string(status)},
		IP:      optional(client.IP),
	})

	return s.reload(ctx, id)
}

func (s *userService) Delete(ctx context.Context, actor Principal, userID string, client ClientInfo) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	id, err := parseID("id", userID)
	if err != nil {
		return err
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return fmt.Errorf("%w: user still has bookings, reviews or a vendor profile", ErrConflict)
		}
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", userID))
		return mapRepoError(err)
	}

	s.audit.Dispatch(audit.Event{
		AdminID: actor.UserID,
		Action:  "user.deleted",
		Details: map[string]any{"user_id": id.String()},
		IP:      optional(client.IP),
	})

	s.log.Info("User deleted", zap.String("user_id", userID), zap.String("admin_id", actor.UserID.String()))
	return nil
}

func (s *userService) reload(ctx context.Context, id uuid.UUID) (*UpdateResult[response.UserResponse], error) {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	if user == nil {
		return notFound[response.UserResponse](), nil
	}
	return updated(response.UserToResponse(user)), nil
}
