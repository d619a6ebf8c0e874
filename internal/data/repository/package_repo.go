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

type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Package, error)
	List(ctx context.Context, filter Filter) ([]*entity.Package, error)
	Update(ctx context.Context, id uuid.UUID, patch PackagePatch) error
}

type PackagePatch struct {
	Name            *string
	Description     *string
	Price           *float64
	DurationMinutes *int
	Features        []string
}

func (p PackagePatch) setMap() map[string]any {
	m := map[string]any{}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.Price != nil {
		m["price"] = *p.Price
	}
	if p.DurationMinutes != nil {
		m["duration_minutes"] = *p.DurationMinutes
	}
	if p.Features != nil {
		m["features"] = p.Features
	}
	return m
}

var packageColumns = []string{
	"id", "vendor_id", "name", "description", "price", "duration_minutes", "features",
	"created_at", "updated_at",
}

type packageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPackageRepository(db database.PgxIface, log *zap.Logger) PackageRepository {
	return &packageRepository{
		db:  db,
		log: log.With(zap.String("repository", "package")),
	}
}

func scanPackage(row rowScanner) (*entity.Package, error) {
	var pkg entity.Package
	err := row.Scan(
		&pkg.ID,
		&pkg.VendorID,
		&pkg.Name,
		&pkg.Description,
		&pkg.Price,
		&pkg.DurationMinutes,
		&pkg.Features,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// insertPackage is shared with vendor onboarding so both paths write the
// same columns through whatever executor ctx carries.
func insertPackage(ctx context.Context, db database.Querier, pkg *entity.Package) error {
	query := `
		INSERT INTO packages (id, vendor_id, name, description, price, duration_minutes, features,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := database.Executor(ctx, db).Exec(ctx, query,
		pkg.ID,
		pkg.VendorID,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.DurationMinutes,
		nonNilStrings(pkg.Features),
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create package %q: %w", pkg.Name, translate(err))
	}
	return nil
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.Package) error {
	if err := insertPackage(ctx, r.db, pkg); err != nil {
		r.log.Error("Failed to create package",
			zap.Error(err),
			zap.String("vendor_id", pkg.VendorID.String()),
		)
		return err
	}
	return nil
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Package, error) {
	query, args, err := psql.Select(packageColumns...).From("packages").
		Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: find package: %v", ErrBuildQuery, err)
	}

	pkg, err := scanPackage(database.Executor(ctx, r.db).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find package by ID",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return nil, fmt.Errorf("find package by ID %s: %w", id.String(), err)
	}

	return pkg, nil
}

func (r *packageRepository) List(ctx context.Context, filter Filter) ([]*entity.Package, error) {
	query, args, err := selectList("packages", packageColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list packages", zap.Error(err))
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	packages := []*entity.Package{}
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			r.log.Error("Failed to scan package row", zap.Error(err))
			return nil, fmt.Errorf("scan package row: %w", err)
		}
		packages = append(packages, pkg)
	}

	return packages, rows.Err()
}

func (r *packageRepository) Update(ctx context.Context, id uuid.UUID, patch PackagePatch) error {
	set := patch.setMap()
	set["updated_at"] = time.Now()
	return execUpdate(ctx, r.db, r.log, "packages", id, set)
}
