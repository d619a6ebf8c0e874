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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	List(ctx context.Context, filter Filter) ([]*entity.Booking, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
	SetPaymentID(ctx context.Context, id, paymentID uuid.UUID) error

	// Business queries
	// TransitionStatus moves the booking from one status to another only
	// if it is still in from. It reports false when no row matched.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error)
	HasOverlap(ctx context.Context, vendorID, serviceID uuid.UUID, start, end time.Time) (bool, error)
}

var bookingColumns = []string{
	"id", "customer_id", "vendor_id", "service_id", "start_datetime", "end_datetime",
	"hours", "hourly_rate", "total_amount", "status", "payment_id", "notes",
	"created_at", "updated_at",
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func scanBooking(row rowScanner) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.VendorID,
		&booking.ServiceID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Hours,
		&booking.HourlyRate,
		&booking.TotalAmount,
		&booking.Status,
		&booking.PaymentID,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, customer_id, vendor_id, service_id, start_datetime, end_datetime,
		                      hours, hourly_rate, total_amount, status, payment_id, notes,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		booking.ID,
		booking.CustomerID,
		booking.VendorID,
		booking.ServiceID,
		booking.StartAt,
		booking.EndAt,
		booking.Hours,
		booking.HourlyRate,
		booking.TotalAmount,
		booking.Status,
		booking.PaymentID,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("customer_id", booking.CustomerID.String()),
			zap.String("service_id", booking.ServiceID.String()),
		)
		return fmt.Errorf("create booking: %w", translate(err))
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query, args, err := psql.Select(bookingColumns...).From("bookings").
		Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: find booking: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(database.Executor(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter Filter) ([]*entity.Booking, error) {
	query, args, err := selectList("bookings", bookingColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*entity.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	return execUpdate(ctx, r.db, r.log, "bookings", id, map[string]any{
		"notes":      notes,
		"updated_at": time.Now(),
	})
}

func (r *bookingRepository) SetPaymentID(ctx context.Context, id, paymentID uuid.UUID) error {
	return execUpdate(ctx, r.db, r.log, "bookings", id, map[string]any{
		"payment_id": paymentID.String(),
		"updated_at": time.Now(),
	})
}

func (r *bookingRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`

	result, err := database.Executor(ctx, r.db).Exec(ctx, query, id, from, to, time.Now())
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update booking status: %w", translate(err))
	}

	return result.RowsAffected() == 1, nil
}

func (r *bookingRepository) HasOverlap(ctx context.Context, vendorID, serviceID uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE vendor_id = $1 AND service_id = $2
			  AND status IN ('pending', 'confirmed')
			  AND start_datetime < $4 AND end_datetime > $3
		)
	`

	var exists bool
	err := database.Executor(ctx, r.db).QueryRow(ctx, query, vendorID, serviceID, start, end).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check booking overlap",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
			zap.String("service_id", serviceID.String()),
		)
		return false, fmt.Errorf("check booking overlap: %w", err)
	}

	return exists, nil
}
