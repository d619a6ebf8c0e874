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

type AvailabilityRepository interface {
	Create(ctx context.Context, slot *entity.AvailabilitySlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error)
	List(ctx context.Context, filter Filter) ([]*entity.AvailabilitySlot, error)
	Update(ctx context.Context, id uuid.UUID, patch AvailabilityPatch) error
	Delete(ctx context.Context, id uuid.UUID) error
	// HasBlockedOverlap reports whether a blocked slot of the vendor
	// intersects [start, end).
	HasBlockedOverlap(ctx context.Context, vendorID uuid.UUID, start, end time.Time) (bool, error)
}

type AvailabilityPatch struct {
	StartAt        *time.Time
	EndAt          *time.Time
	RecurrenceRule *string
	IsBlocked      *bool
}

func (p AvailabilityPatch) setMap() map[string]any {
	m := map[string]any{}
	if p.StartAt != nil {
		m["start_datetime"] = *p.StartAt
	}
	if p.EndAt != nil {
		m["end_datetime"] = *p.EndAt
	}
	if p.RecurrenceRule != nil {
		m["recurrence_rule"] = *p.RecurrenceRule
	}
	if p.IsBlocked != nil {
		m["is_blocked"] = *p.IsBlocked
	}
	return m
}

var availabilityColumns = []string{
	"id", "vendor_id", "start_datetime", "end_datetime", "recurrence_rule", "is_blocked",
	"created_at", "updated_at",
}

type availabilityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAvailabilityRepository(db database.PgxIface, log *zap.Logger) AvailabilityRepository {
	return &availabilityRepository{
		db:  db,
		log: log.With(zap.String("repository", "availability")),
	}
}

func scanSlot(row rowScanner) (*entity.AvailabilitySlot, error) {
	var slot entity.AvailabilitySlot
	err := row.Scan(
		&slot.ID,
		&slot.VendorID,
		&slot.StartAt,
		&slot.EndAt,
		&slot.RecurrenceRule,
		&slot.IsBlocked,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *availabilityRepository) Create(ctx context.Context, slot *entity.AvailabilitySlot) error {
	query := `
		INSERT INTO availability_slots (id, vendor_id, start_datetime, end_datetime, recurrence_rule,
		                                is_blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		slot.ID,
		slot.VendorID,
		slot.StartAt,
		slot.EndAt,
		slot.RecurrenceRule,
		slot.IsBlocked,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create availability slot",
			zap.Error(err),
			zap.String("vendor_id", slot.VendorID.String()),
		)
		return fmt.Errorf("create availability slot: %w", translate(err))
	}

	return nil
}

func (r *availabilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	query, args, err := psql.Select(availabilityColumns...).From("availability_slots").
		Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: find availability slot: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(database.Executor(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find availability slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *availabilityRepository) List(ctx context.Context, filter Filter) ([]*entity.AvailabilitySlot, error) {
	query, args, err := selectList("availability_slots", availabilityColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list availability slots", zap.Error(err))
		return nil, fmt.Errorf("list availability slots: %w", err)
	}
	defer rows.Close()

	slots := []*entity.AvailabilitySlot{}
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan availability slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

func (r *availabilityRepository) Update(ctx context.Context, id uuid.UUID, patch AvailabilityPatch) error {
	set := patch.setMap()
	set["updated_at"] = time.Now()
	return execUpdate(ctx, r.db, r.log, "availability_slots", id, set)
}

func (r *availabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Executor(ctx, r.db).Exec(ctx, `DELETE FROM availability_slots WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete availability slot", zap.Error(err), zap.String("slot_id", id.String()))
		return fmt.Errorf("delete availability slot %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("availability slot %s: %w", id.String(), ErrNotFound)
	}
	return nil
}

func (r *availabilityRepository) HasBlockedOverlap(ctx context.Context, vendorID uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM availability_slots
			WHERE vendor_id = $1 AND is_blocked
			  AND start_datetime < $3 AND end_datetime > $2
		)
	`

	var exists bool
	if err := database.Executor(ctx, r.db).QueryRow(ctx, query, vendorID, start, end).Scan(&exists); err != nil {
		r.log.Error("Failed to check blocked slots",
			zap.Error(err),
			zap.String("vendor_id", vendorID.String()),
		)
		return false, fmt.Errorf("check blocked slots: %w", err)
	}

	return exists, nil
}
