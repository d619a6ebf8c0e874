package repository

import (
	"context"
	"fmt"
	"time"

	"event-marketplace/internal/data/entity"
	"event-marketplace/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	List(ctx context.Context, filter Filter) ([]*entity.Notification, error)
	// MarkRead only touches notifications owned by userID.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

var notificationColumns = []string{
	"id", "user_id", "type", "payload", "read", "created_at", "updated_at",
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

func scanNotification(row rowScanner) (*entity.Notification, error) {
	var n entity.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.Type,
		&n.Payload,
		&n.Read,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, payload, read, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	payload := n.Payload
	if payload == nil {
		payload = map[string]any{}
	}

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		n.ID,
		n.UserID,
		n.Type,
		payload,
		n.Read,
		n.CreatedAt,
		n.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create notification",
			zap.Error(err),
			zap.String("user_id", n.UserID.String()),
			zap.String("type", n.Type),
		)
		return fmt.Errorf("create notification: %w", translate(err))
	}

	return nil
}

func (r *notificationRepository) List(ctx context.Context, filter Filter) ([]*entity.Notification, error) {
	query, args, err := selectList("notifications", notificationColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list notifications", zap.Error(err))
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	items := []*entity.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		items = append(items, n)
	}

	return items, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET read = TRUE, updated_at = $3
		WHERE id = $1 AND user_id = $2
	`

	result, err := database.Executor(ctx, r.db).Exec(ctx, query, id, userID, time.Now())
	if err != nil {
		r.log.Error("Failed to mark notification read",
			zap.Error(err),
			zap.String("notification_id", id.String()),
		)
		return fmt.Errorf("mark notification %s read: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", id.String(), ErrNotFound)
	}

	return nil
}
