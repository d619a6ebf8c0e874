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

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	List(ctx context.Context, filter Filter) ([]*entity.Service, error)
	Update(ctx context.Context, id uuid.UUID, patch ServicePatch) error
}

type ServicePatch struct {
	Title       *string
	Description *string
	HourlyRate  *float64
	MinHours    *int
	Images      []string
}

func (p ServicePatch) setMap() map[string]any {
	m := map[string]any{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.HourlyRate != nil {
		m["hourly_rate"] = *p.HourlyRate
	}
	if p.MinHours != nil {
		m["min_hours"] = *p.MinHours
	}
	if p.Images != nil {
		m["images"] = p.Images
	}
	return m
}

var serviceColumns = []string{
	"id", "vendor_id", "title", "description", "hourly_rate", "min_hours", "images",
	"created_at", "updated_at",
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

func scanService(row rowScanner) (*entity.Service, error) {
	var service entity.Service
	err := row.Scan(
		&service.ID,
		&service.VendorID,
		&service.Title,
		&service.Description,
		&service.HourlyRate,
		&service.MinHours,
		&service.Images,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (id, vendor_id, title, description, hourly_rate, min_hours, images,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		service.ID,
		service.VendorID,
		service.Title,
		service.Description,
		service.HourlyRate,
		service.MinHours,
		nonNilStrings(service.Images),
		service.CreatedAt,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("title", service.Title),
			zap.String("vendor_id", service.VendorID.String()),
		)
		return fmt.Errorf("create service %q: %w", service.Title, translate(err))
	}

	return nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query, args, err := psql.Select(serviceColumns...).From("services").
		Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: find service: %v", ErrBuildQuery, err)
	}

	service, err := scanService(database.Executor(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return service, nil
}

func (r *serviceRepository) List(ctx context.Context, filter Filter) ([]*entity.Service, error) {
	query, args, err := selectList("services", serviceColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	services := []*entity.Service{}
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}

	return services, rows.Err()
}

func (r *serviceRepository) Update(ctx context.Context, id uuid.UUID, patch ServicePatch) error {
	set := patch.setMap()
	set["updated_at"] = time.Now()
	return execUpdate(ctx, r.db, r.log, "services", id, set)
}
