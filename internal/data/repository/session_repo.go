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

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// FindValidSession returns nil when the token is unknown, revoked or
	// expired.
	FindValidSession(ctx context.Context, token string) (*entity.Session, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

// Expired sessions are kept this long before the janitor removes them.
const sessionRetention = 7 * 24 * time.Hour

var sessionColumns = []string{
	"id", "user_id", "token", "user_agent", "ip_address", "expires_at", "revoked_at", "created_at",
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
	now func() time.Time
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
		now: time.Now,
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query, args, err := psql.Insert("sessions").SetMap(map[string]any{
		"id":         session.ID,
		"user_id":    session.UserID,
		"token":      session.Token,
		"user_agent": session.UserAgent,
		"ip_address": session.IPAddress,
		"expires_at": session.ExpiresAt,
		"created_at": session.CreatedAt,
	}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: insert session: %v", ErrBuildQuery, err)
	}

	if _, err := database.Executor(ctx, r.db).Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", session.UserID.String()),
		)
		return fmt.Errorf("create session: %w", translate(err))
	}

	return nil
}

func (r *sessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, nil
	}

	query, args, err := psql.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"token": token, "revoked_at": nil}).
		Where(squirrel.Gt{"expires_at": r.now()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: select session: %v", ErrBuildQuery, err)
	}

	var session entity.Session
	err = database.Executor(ctx, r.db).QueryRow(ctx, query, args...).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find valid session", zap.Error(err))
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &session, nil
}

func (r *sessionRepository) revoke(ctx context.Context, where squirrel.Eq) (int64, error) {
	where["revoked_at"] = nil
	query, args, err := psql.Update("sessions").Set("revoked_at", r.now()).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: revoke session: %v", ErrBuildQuery, err)
	}

	result, err := database.Executor(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *sessionRepository) Revoke(ctx context.Context, token string) error {
	n, err := r.revoke(ctx, squirrel.Eq{"token": token})
	if err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session: %w", ErrNotFound)
	}
	return nil
}

func (r *sessionRepository) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	n, err := r.revoke(ctx, squirrel.Eq{"user_id": userID})
	if err != nil {
		r.log.Error("Failed to revoke user sessions",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("revoke sessions of %s: %w", userID, err)
	}

	r.log.Info("User sessions revoked", zap.String("user_id", userID.String()), zap.Int64("count", n))
	return nil
}

func (r *sessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	query, args, err := psql.Delete("sessions").
		Where(squirrel.Lt{"expires_at": r.now().Add(-sessionRetention)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: delete sessions: %v", ErrBuildQuery, err)
	}

	result, err := database.Executor(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to clean expired sessions", zap.Error(err))
		return 0, fmt.Errorf("clean sessions: %w", err)
	}

	return result.RowsAffected(), nil
}
