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

type ReviewService interface {
	// Create attaches a review to a completed booking of the caller. A
	// booking carries at most one review.
	Create(ctx context.Context, actor Principal, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	Get(ctx context.Context, reviewID string) (*response.ReviewResponse, error)
	List(ctx context.Context, filter repository.Filter) (*response.ListResponse[response.ReviewResponse], error)
	// Update revises rating or comment. Only the reviewing customer, or an
	// admin, may do so.
	Update(ctx context.Context, actor Principal, reviewID string, req *request.UpdateReviewRequest) (*UpdateResult[response.ReviewResponse], error)

	// Stats
	VendorRating(ctx context.Context, vendorID string) (*response.VendorRatingResponse, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) Create(ctx context.Context, actor Principal, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create review validation failed", zap.Error(err))
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
	if booking.CustomerID != actor.UserID {
		return nil, fmt.Errorf("%w: only the booking customer can review it", ErrForbidden)
	}
	if req.CustomerID != "" && req.CustomerID != booking.CustomerID.String() {
		return nil, newValidationError("customer_id", "Does not match the booking")
	}
	if req.VendorID != "" && req.VendorID != booking.VendorID.String() {
		return nil, newValidationError("vendor_id", "Does not match the booking")
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, fmt.Errorf("%w: booking is %s, reviews need a completed booking", ErrConflict, booking.Status)
	}

	existing, err := s.repo.Review.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: booking already reviewed", ErrConflict)
	}

	review := &entity.Review{
		BaseNoDelete: entity.NewBase(time.Now()),
		BookingID:    bookingID,
		CustomerID:   booking.CustomerID,
		VendorID:     booking.VendorID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: booking already reviewed", ErrConflict)
		}
		s.log.Error("Failed to create review", zap.Error(err), zap.String("booking_id", req.BookingID))
		return nil, mapRepoError(err)
	}

	s.notifyVendor(ctx, review)

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("vendor_id", review.VendorID.String()),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) notifyVendor(ctx context.Context, review *entity.Review) {
	vendor, err := s.repo.Vendor.FindByID(ctx, review.VendorID)
	if err != nil || vendor == nil {
		s.log.Warn("Skipping review notification", zap.Error(err), zap.String("vendor_id", review.VendorID.String()))
		return
	}

	n := &entity.Notification{
		BaseNoDelete: entity.NewBase(time.Now()),
		UserID:       vendor.UserID,
		Type:         entity.NotificationReviewPosted,
		Payload: map[string]any{
			"review_id":  review.ID.String(),
			"booking_id": review.BookingID.String(),
			"rating":     review.Rating,
		},
	}
	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.log.Warn("Failed to record review notification", zap.Error(err))
	}
}

func (s *reviewService) Get(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	id, err := parseID("id", reviewID)
	if err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, ErrNotFound
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) List(ctx context.Context, filter repository.Filter) (*response.ListResponse[response.ReviewResponse], error) {
	reviews, err := s.repo.Review.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err))
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return response.NewListResponse(response.MapList(reviews, response.ReviewToResponse), filter.Limit, filter.Offset), nil
}

func (s *reviewService) Update(ctx context.Context, actor Principal, reviewID string, req *request.UpdateReviewRequest) (*UpdateResult[response.ReviewResponse], error) {
	id, err := parseID("id", reviewID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Rating == nil && req.Comment == nil {
		return nil, newValidationError("_", "Nothing to update")
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return notFound[response.ReviewResponse](), nil
	}
	if !actor.Owns(review.CustomerID) {
		return nil, ErrForbidden
	}

	patch := repository.ReviewPatch{Rating: req.Rating, Comment: req.Comment}
	if err := s.repo.Review.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound[response.ReviewResponse](), nil
		}
		return nil, mapRepoError(err)
	}

	fresh, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload review: %w", err)
	}
	if fresh == nil {
		return notFound[response.ReviewResponse](), nil
	}

	s.log.Info("Review updated",
		zap.String("review_id", id.String()),
		zap.Int("rating", fresh.Rating),
	)
	return updated(response.ReviewToResponse(fresh)), nil
}

func (s *reviewService) VendorRating(ctx context.Context, vendorID string) (*response.VendorRatingResponse, error) {
	id, err := parseID("vendor_id", vendorID)
	if err != nil {
		return nil, err
	}

	vendor, err := s.repo.Vendor.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	if vendor == nil {
		return nil, ErrNotFound
	}

	average, count, err := s.repo.Review.VendorSummary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("summarize reviews: %w", err)
	}

	return &response.VendorRatingResponse{
		VendorID:      vendorID,
		AverageRating: average,
		ReviewCount:   count,
	}, nil
}
