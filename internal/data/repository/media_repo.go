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

type MediaRepository interface {
	Create(ctx context.Context, media *entity.Media) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Media, error)
	List(ctx context.Context, filter Filter) ([]*entity.Media, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var mediaColumns = []string{
	"id", "vendor_id", "url", "type", "description", "created_at", "updated_at",
}

type mediaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMediaRepository(db database.PgxIface, log *zap.Logger) MediaRepository {
	return &mediaRepository{
		db:  db,
		log: log.With(zap.String("repository", "media")),
	}
}

func scanMedia(row rowScanner) (*entity.Media, error) {
	var media entity.Media
	err := row.Scan(
		&media.ID,
		&media.VendorID,
		&media.URL,
		&media.Type,
		&media.Description,
		&media.CreatedAt,
		&media.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) Create(ctx context.Context, media *entity.Media) error {
	query := `
		INSERT INTO media (id, vendor_id, url, type, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		media.ID,
		media.VendorID,
		media.URL,
		media.Type,
		media.Description,
		media.CreatedAt,
		media.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create media",
			zap.Error(err),
			zap.String("vendor_id", media.VendorID.String()),
		)
		return fmt.Errorf("create media: %w", translate(err))
	}

	return nil
}

func (r *mediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Media, error) {
	query, args, err := psql.Select(mediaColumns...).From("media").
		Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: find media: %v", ErrBuildQuery, err)
	}

	media, err := scanMedia(database.Executor(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by ID %s: %w", id.String(), err)
	}

	return media, nil
}

func (r *mediaRepository) List(ctx context.Context, filter Filter) ([]*entity.Media, error) {
	query, args, err := selectList("media", mediaColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list media", zap.Error(err))
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	items := []*entity.Media{}
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media row: %w", err)
		}
		items = append(items, media)
	}

	return items, rows.Err()
}

func (r *mediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Executor(ctx, r.db).Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete media", zap.Error(err), zap.String("media_id", id.String()))
		return fmt.Errorf("delete media %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("media %s: %w", id.String(), ErrNotFound)
	}
	return nil
}
