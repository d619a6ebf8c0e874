package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-marketplace/internal/data/entity"
	"event-marketplace/pkg/database"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error)
	List(ctx context.Context, filter Filter) ([]*entity.Review, error)
	Update(ctx context.Context, id uuid.UUID, patch ReviewPatch) error

	// Statistics
	VendorSummary(ctx context.Context, vendorID uuid.UUID) (average float64, count int64, err error)
}

type ReviewPatch struct {
	Rating  *int
	Comment *string
}

func (p ReviewPatch) setMap() map[string]any {
	m := map[string]any{}
	if p.Rating != nil {
		m["rating"] = *p.Rating
	}
	if p.Comment != nil {
		m["comment"] = *p.Comment
	}
	return m
}

var reviewColumns = []string{
	"id", "booking_id", "customer_id", "vendor_id", "rating", "comment", "created_at", "updated_at",
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func scanReview(row rowScanner) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.BookingID,
		&review.CustomerID,
		&review.VendorID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, booking_id, customer_id, vendor_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		review.ID,
		review.BookingID,
		review.CustomerID,
		review.VendorID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("booking_id", review.BookingID.String()),
			zap.String("customer_id", review.CustomerID.String()),
		)
		return fmt.Errorf("create review for booking %s: %w", review.BookingID.String(), translate(err))
	}

	return nil
}

func (r *reviewRepository) findOne(ctx context.Context, column, value string) (*entity.Review, error) {
	query, args, err := psql.Select(reviewColumns...).From("reviews").
		Where(squirrel.Eq{column: value}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: find review: %v", ErrBuildQuery, err)
	}

	review, err := scanReview(database.Executor(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review",
			zap.Error(err),
			zap.String(column, value),
		)
		return nil, fmt.Errorf("find review by %s %s: %w", column, value, err)
	}

	return review, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, "id", id.String())
}

func (r *reviewRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	return r.findOne(ctx, "booking_id", bookingID.String())
}

func (r *reviewRepository) List(ctx context.Context, filter Filter) ([]*entity.Review, error) {
	query, args, err := selectList("reviews", reviewColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list reviews", zap.Error(err))
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*entity.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

func (r *reviewRepository) Update(ctx context.Context, id uuid.UUID, patch ReviewPatch) error {
	set := patch.setMap()
	set["updated_at"] = time.Now()
	return execUpdate(ctx, r.db, r.log, "reviews", id, set)
}

func (r *reviewRepository) VendorSummary(ctx context.Context, vendorID uuid.UUID) (float64, int64, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*)
		FROM reviews
		WHERE vendor_id = $1
	`

	var (
		average float64
		count   int64
	)
	if err := database.Executor(ctx, r.db).QueryRow(ctx, query, vendorID).Scan(&average, &count); err != nil {
		r.log.Error("Failed to summarize vendor reviews",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
		)
		return 0, 0, fmt.Errorf("summarize reviews for vendor %s: %w", vendorID.String(), err)
	}

	return average, count, nil
}
