package repository

import (
	"context"
	"errors"
	"fmt"

	"event-marketplace/internal/data/entity"
	"event-marketplace/pkg/database"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuditLogRepository interface {
	Create(ctx context.Context, entry *entity.AdminAuditLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminAuditLog, error)
	List(ctx context.Context, filter Filter) ([]*entity.AdminAuditLog, error)
}

var auditLogColumns = []string{"id", "admin_id", "action", "details", "ip", "created_at"}

type auditLogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditLogRepository(db database.PgxIface, log *zap.Logger) AuditLogRepository {
	return &auditLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit_log")),
	}
}

func scanAuditLog(row rowScanner) (*entity.AdminAuditLog, error) {
	var entry entity.AdminAuditLog
	err := row.Scan(
		&entry.ID,
		&entry.AdminID,
		&entry.Action,
		&entry.Details,
		&entry.IP,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *auditLogRepository) Create(ctx context.Context, entry *entity.AdminAuditLog) error {
	query := `
		INSERT INTO admin_audit_logs (id, admin_id, action, details, ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	details := entry.Details
	if details == nil {
		details = map[string]any{}
	}

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		entry.ID,
		entry.AdminID,
		entry.Action,
		details,
		entry.IP,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to write audit log",
			zap.Error(err),
			zap.String("admin_id", entry.AdminID.String()),
			zap.String("action", entry.Action),
		)
		return fmt.Errorf("create audit log: %w", translate(err))
	}

	return nil
}

func (r *auditLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminAuditLog, error) {
	query, args, err := psql.Select(auditLogColumns...).From("admin_audit_logs").
		Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: find audit log: %v", ErrBuildQuery, err)
	}

	entry, err := scanAuditLog(database.Executor(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find audit log by ID %s: %w", id.String(), err)
	}

	return entry, nil
}

func (r *auditLogRepository) List(ctx context.Context, filter Filter) ([]*entity.AdminAuditLog, error) {
	query, args, err := selectList("admin_audit_logs", auditLogColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list audit logs", zap.Error(err))
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	entries := []*entity.AdminAuditLog{}
	for rows.Next() {
		entry, err := scanAuditLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit log row: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
