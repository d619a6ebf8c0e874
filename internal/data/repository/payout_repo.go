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

type PayoutRepository interface {
	Create(ctx context.Context, payout *entity.Payout) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payout, error)
	List(ctx context.Context, filter Filter) ([]*entity.Payout, error)
	Update(ctx context.Context, id uuid.UUID, patch PayoutPatch) error
}

type PayoutPatch struct {
	Amount           *float64
	ProviderPayoutID *string
	Status           *string
}

func (p PayoutPatch) setMap() map[string]any {
	m := map[string]any{}
	if p.Amount != nil {
		m["amount"] = *p.Amount
	}
	if p.ProviderPayoutID != nil {
		m["provider_payout_id"] = *p.ProviderPayoutID
	}
	if p.Status != nil {
		m["status"] = *p.Status
	}
	return m
}

var payoutColumns = []string{
	"id", "vendor_id", "amount", "provider_payout_id", "period_start", "period_end", "status",
	"created_at", "updated_at",
}

type payoutRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPayoutRepository(db database.PgxIface, log *zap.Logger) PayoutRepository {
	return &payoutRepository{
		db:  db,
		log: log.With(zap.String("repository", "payout")),
	}
}

func scanPayout(row rowScanner) (*entity.Payout, error) {
	var payout entity.Payout
	err := row.Scan(
		&payout.ID,
		&payout.VendorID,
		&payout.Amount,
		&payout.ProviderPayoutID,
		&payout.PeriodStart,
		&payout.PeriodEnd,
		&payout.Status,
		&payout.CreatedAt,
		&payout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

func (r *payoutRepository) Create(ctx context.Context, payout *entity.Payout) error {
	query := `
		INSERT INTO payouts (id, vendor_id, amount, provider_payout_id, period_start, period_end, status,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		payout.ID,
		payout.VendorID,
		payout.Amount,
		payout.ProviderPayoutID,
		payout.PeriodStart,
		payout.PeriodEnd,
		payout.Status,
		payout.CreatedAt,
		payout.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payout",
			zap.Error(err),
			zap.String("vendor_id", payout.VendorID.String()),
		)
		return fmt.Errorf("create payout: %w", translate(err))
	}

	return nil
}

func (r *payoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payout, error) {
	query, args, err := psql.Select(payoutColumns...).From("payouts").
		Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: find payout: %v", ErrBuildQuery, err)
	}

	payout, err := scanPayout(database.Executor(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find payout by ID %s: %w", id.String(), err)
	}

	return payout, nil
}

func (r *payoutRepository) List(ctx context.Context, filter Filter) ([]*entity.Payout, error) {
	query, args, err := selectList("payouts", payoutColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list payouts", zap.Error(err))
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	defer rows.Close()

	payouts := []*entity.Payout{}
	for rows.Next() {
		payout, err := scanPayout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payout row: %w", err)
		}
		payouts = append(payouts, payout)
	}

	return payouts, rows.Err()
}

func (r *payoutRepository) Update(ctx context.Context, id uuid.UUID, patch PayoutPatch) error {
	set := patch.setMap()
	set["updated_at"] = time.Now()
	return execUpdate(ctx, r.db, r.log, "payouts", id, set)
}
