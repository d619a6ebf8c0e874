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

type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.VendorProfile) error
	// CreateWithPackages inserts the profile and every package in one
	// transaction. Nothing is left behind when any insert fails.
	CreateWithPackages(ctx context.Context, vendor *entity.VendorProfile, packages []*entity.Package) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.VendorProfile, error)
	List(ctx context.Context, filter Filter) ([]*entity.VendorProfile, error)
	Update(ctx context.Context, id uuid.UUID, patch VendorPatch) error
}

type VendorPatch struct {
	BusinessName *string
	Description  *string
	City         *string
	State        *string
	Country      *string
	Geo          *entity.GeoPoint
	Categories   []string
	ServiceTags  []string
}

func (p VendorPatch) setMap() map[string]any {
	m := map[string]any{}
	if p.BusinessName != nil {
		m["business_name"] = *p.BusinessName
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.City != nil {
		m["city"] = *p.City
	}
	if p.State != nil {
		m["state"] = *p.State
	}
	if p.Country != nil {
		m["country"] = *p.Country
	}
	if p.Geo != nil {
		m["geo_lat"] = p.Geo.Lat
		m["geo_lng"] = p.Geo.Lng
	}
	if p.Categories != nil {
		m["categories"] = p.Categories
	}
	if p.ServiceTags != nil {
		m["service_tags"] = p.ServiceTags
	}
	return m
}

var vendorColumns = []string{
	"id", "user_id", "business_name", "description", "city", "state", "country",
	"geo_lat", "geo_lng", "categories", "service_tags", "created_at", "updated_at",
}

type vendorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVendorRepository(db database.PgxIface, log *zap.Logger) VendorRepository {
	return &vendorRepository{
		db:  db,
		log: log.With(zap.String("repository", "vendor")),
	}
}

func scanVendor(row rowScanner) (*entity.VendorProfile, error) {
	var (
		vendor   entity.VendorProfile
		lat, lng *float64
	)
	err := row.Scan(
		&vendor.ID,
		&vendor.UserID,
		&vendor.BusinessName,
		&vendor.Description,
		&vendor.City,
		&vendor.State,
		&vendor.Country,
		&lat,
		&lng,
		&vendor.Categories,
		&vendor.ServiceTags,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		vendor.Geo = &entity.GeoPoint{Lat: *lat, Lng: *lng}
	}
	return &vendor, nil
}

func (r *vendorRepository) Create(ctx context.Context, vendor *entity.VendorProfile) error {
	query := `
		INSERT INTO vendor_profiles (id, user_id, business_name, description, city, state, country,
		                             geo_lat, geo_lng, categories, service_tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var lat, lng *float64
	if vendor.Geo != nil {
		lat, lng = &vendor.Geo.Lat, &vendor.Geo.Lng
	}

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		vendor.ID,
		vendor.UserID,
		vendor.BusinessName,
		vendor.Description,
		vendor.City,
		vendor.State,
		vendor.Country,
		lat,
		lng,
		nonNilStrings(vendor.Categories),
		nonNilStrings(vendor.ServiceTags),
		vendor.CreatedAt,
		vendor.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create vendor profile",
			zap.Error(err),
			zap.String("business_name", vendor.BusinessName),
			zap.String("user_id", vendor.UserID.String()),
		)
		return fmt.Errorf("create vendor profile %q: %w", vendor.BusinessName, translate(err))
	}

	return nil
}

func (r *vendorRepository) CreateWithPackages(ctx context.Context, vendor *entity.VendorProfile, packages []*entity.Package) error {
	return database.WithTx(ctx, r.db, func(ctx context.Context) error {
		if err := r.Create(ctx, vendor); err != nil {
			return err
		}

		for i, pkg := range packages {
			pkg.VendorID = vendor.ID
			if err := insertPackage(ctx, r.db, pkg); err != nil {
				r.log.Warn("Vendor onboarding aborted",
					zap.String("vendor_id", vendor.ID.String()),
					zap.Int("package_index", i),
					zap.Error(err),
				)
				return fmt.Errorf("package %d: %w", i, err)
			}
		}

		return nil
	})
}

func (r *vendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VendorProfile, error) {
	query, args, err := psql.Select(vendorColumns...).From("vendor_profiles").
		Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: find vendor: %v", ErrBuildQuery, err)
	}

	vendor, err := scanVendor(database.Executor(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vendor by ID",
			zap.Error(err),
			zap.String("vendor_id", id.String()),
		)
		return nil, fmt.Errorf("find vendor by ID %s: %w", id.String(), err)
	}

	return vendor, nil
}

func (r *vendorRepository) List(ctx context.Context, filter Filter) ([]*entity.VendorProfile, error) {
	query, args, err := selectList("vendor_profiles", vendorColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list vendors", zap.Error(err))
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	vendors := []*entity.VendorProfile{}
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			r.log.Error("Failed to scan vendor row", zap.Error(err))
			return nil, fmt.Errorf("scan vendor row: %w", err)
		}
		vendors = append(vendors, vendor)
	}

	return vendors, rows.Err()
}

func (r *vendorRepository) Update(ctx context.Context, id uuid.UUID, patch VendorPatch) error {
	set := patch.setMap()
	set["updated_at"] = time.Now()
	return execUpdate(ctx, r.db, r.log, "vendor_profiles", id, set)
}

// nonNilStrings keeps NOT NULL text[] columns from receiving NULL.
func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
