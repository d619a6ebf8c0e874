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

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context, filter Filter) ([]*entity.Payment, error)
	// Update applies the patch and reports false when the row is missing or
	// the new refunded amount would shrink or exceed the paid amount.
	Update(ctx context.Context, id uuid.UUID, patch PaymentPatch) (bool, error)
	// Refund adds amount to refunded_amount unless the total would exceed
	// the paid amount.
	Refund(ctx context.Context, id uuid.UUID, amount float64) (bool, error)
}

type PaymentPatch struct {
	Status           *string
	ProviderChargeID *string
	RefundedAmount   *float64
}

var paymentColumns = []string{
	"id", "booking_id", "amount", "currency", "provider", "provider_charge_id", "status",
	"refunded_amount", "created_at", "updated_at",
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func scanPayment(row rowScanner) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.Currency,
		&payment.Provider,
		&payment.ProviderChargeID,
		&payment.Status,
		&payment.RefundedAmount,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, currency, provider, provider_charge_id, status,
		                      refunded_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.Amount,
		payment.Currency,
		payment.Provider,
		payment.ProviderChargeID,
		payment.Status,
		payment.RefundedAmount,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), translate(err))
	}

	return nil
}

func (r *paymentRepository) findOne(ctx context.Context, column string, value string) (*entity.Payment, error) {
	query, args, err := psql.Select(paymentColumns...).From("payments").
		Where(squirrel.Eq{column: value}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: find payment: %v", ErrBuildQuery, err)
	}

	payment, err := scanPayment(database.Executor(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment",
			zap.Error(err),
			zap.String(column, value),
		)
		return nil, fmt.Errorf("find payment by %s %s: %w", column, value, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	return r.findOne(ctx, "id", id.String())
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	return r.findOne(ctx, "booking_id", bookingID.String())
}

func (r *paymentRepository) List(ctx context.Context, filter Filter) ([]*entity.Payment, error) {
	query, args, err := selectList("payments", paymentColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := []*entity.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func (r *paymentRepository) Update(ctx context.Context, id uuid.UUID, patch PaymentPatch) (bool, error) {
	b := psql.Update("payments").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id.String()})

	if patch.Status != nil {
		b = b.Set("status", *patch.Status)
	}
	if patch.ProviderChargeID != nil {
		b = b.Set("provider_charge_id", *patch.ProviderChargeID)
	}
	if patch.RefundedAmount != nil {
		b = b.Set("refunded_amount", *patch.RefundedAmount).
			Where(squirrel.LtOrEq{"refunded_amount": *patch.RefundedAmount}).
			Where(squirrel.GtOrEq{"amount": *patch.RefundedAmount})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: update payment: %v", ErrBuildQuery, err)
	}

	result, err := database.Executor(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to update payment",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return false, fmt.Errorf("update payment %s: %w", id.String(), translate(err))
	}

	return result.RowsAffected() == 1, nil
}

func (r *paymentRepository) Refund(ctx context.Context, id uuid.UUID, amount float64) (bool, error) {
	query := `
		UPDATE payments
		SET refunded_amount = refunded_amount + $2, updated_at = $3
		WHERE id = $1 AND refunded_amount + $2 <= amount
	`

	result, err := database.Executor(ctx, r.db).Exec(ctx, query, id, amount, time.Now())
	if err != nil {
		r.log.Error("Failed to refund payment",
			zap.Error(err),
			zap.String("payment_id", id.String()),
			zap.Float64("amount", amount),
		)
		return false, fmt.Errorf("refund payment %s: %w", id.String(), translate(err))
	}

	return result.RowsAffected() == 1, nil
}
