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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, filter Filter) ([]*entity.User, error)
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserPatch carries the profile fields a user may change. Nil means unchanged.
type UserPatch struct {
	Name      *string
	Phone     *string
	Address   *string
	AvatarURL *string
	Metadata  map[string]string
}

func (p UserPatch) setMap() map[string]any {
	m := map[string]any{}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.Phone != nil {
		m["phone"] = *p.Phone
	}
	if p.Address != nil {
		m["address"] = *p.Address
	}
	if p.AvatarURL != nil {
		m["avatar_url"] = *p.AvatarURL
	}
	if p.Metadata != nil {
		m["metadata"] = p.Metadata
	}
	return m
}

var userColumns = []string{
	"id", "name", "email", "password_hash", "phone", "address", "avatar_url",
	"role", "status", "metadata", "created_at", "updated_at",
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Address,
		&user.AvatarURL,
		&user.Role,
		&user.Status,
		&user.Metadata,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record into the database
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, phone, address, avatar_url,
		                   role, status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Address,
		user.AvatarURL,
		user.Role,
		user.Status,
		user.Metadata,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, translate(err))
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "id", id.String())
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *userRepository) findOne(ctx context.Context, column string, value any) (*entity.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(squirrel.Eq{column: value}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", ErrBuildQuery, err)
	}

	user, err := scanUser(database.Executor(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user",
			zap.Error(err),
			zap.String("by", column),
		)
		return nil, fmt.Errorf("find user by %s: %w", column, err)
	}

	return user, nil
}

func (r *userRepository) List(ctx context.Context, filter Filter) ([]*entity.User, error) {
	query, args, err := selectList("users", userColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []*entity.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			r.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, patch UserPatch) error {
	set := patch.setMap()
	if len(set) == 0 {
		return r.touch(ctx, "users", id)
	}
	set["updated_at"] = time.Now()

	return execUpdate(ctx, r.db, r.log, "users", id, set)
}

func (r *userRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error {
	return execUpdate(ctx, r.db, r.log, "users", id, map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	})
}

func (r *userRepository) touch(ctx context.Context, table string, id uuid.UUID) error {
	return execUpdate(ctx, r.db, r.log, table, id, map[string]any{"updated_at": time.Now()})
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := database.Executor(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("delete user %s: %w", id.String(), translate(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}
