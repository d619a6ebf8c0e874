package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"event-marketplace/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newVendorFixture() (*entity.VendorProfile, []*entity.Package) {
	now := time.Now()
	vendor := &entity.VendorProfile{
		UserID:       uuid.New(),
		BusinessName: "Golden Hour Studio",
		Categories:   []string{"photography"},
	}
	vendor.ID = uuid.New()
	vendor.CreatedAt, vendor.UpdatedAt = now, now

	packages := make([]*entity.Package, 2)
	for i, name := range []string{"Half day", "Full day"} {
		pkg := &entity.Package{Name: name, Price: float64(500 * (i + 1)), DurationMinutes: 240 * (i + 1)}
		pkg.ID = uuid.New()
		pkg.CreatedAt, pkg.UpdatedAt = now, now
		packages[i] = pkg
	}
	return vendor, packages
}

// vendorArgs matches the thirteen vendor_profiles columns, pinning the keys.
func vendorArgs(vendor *entity.VendorProfile) []any {
	args := []any{vendor.ID, vendor.UserID, vendor.BusinessName}
	for len(args) < len(vendorColumns) {
		args = append(args, pgxmock.AnyArg())
	}
	return args
}

func packageArgs(vendorID uuid.UUID, pkg *entity.Package) []any {
	return []any{
		pkg.ID, vendorID, pkg.Name,
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
	}
}

func TestCreateWithPackages_Commits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVendorRepository(mock, zap.NewNop())
	vendor, packages := newVendorFixture()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO vendor_profiles").
		WithArgs(vendorArgs(vendor)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, pkg := range packages {
		mock.ExpectExec("INSERT INTO packages").
			WithArgs(packageArgs(vendor.ID, pkg)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	err = repo.CreateWithPackages(context.Background(), vendor, packages)

	require.NoError(t, err)
	for _, pkg := range packages {
		assert.Equal(t, vendor.ID, pkg.VendorID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithPackages_RollsBackOnPackageFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVendorRepository(mock, zap.NewNop())
	vendor, packages := newVendorFixture()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO vendor_profiles").
		WithArgs(vendorArgs(vendor)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO packages").
		WithArgs(packageArgs(vendor.ID, packages[0])...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO packages").
		WithArgs(packageArgs(vendor.ID, packages[1])...).
		WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "packages_price_check"})
	mock.ExpectRollback()

	err = repo.CreateWithPackages(context.Background(), vendor, packages)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraint)
	assert.Contains(t, err.Error(), "package 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorCreate_OwnerHoldsSeveralProfiles(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVendorRepository(mock, zap.NewNop())
	first, _ := newVendorFixture()
	second, _ := newVendorFixture()
	second.UserID = first.UserID
	second.BusinessName = "Golden Hour Films"

	for _, vendor := range []*entity.VendorProfile{first, second} {
		mock.ExpectExec("INSERT INTO vendor_profiles").
			WithArgs(vendorArgs(vendor)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	require.NoError(t, repo.Create(context.Background(), first))
	require.NoError(t, repo.Create(context.Background(), second))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorCreate_UnknownOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVendorRepository(mock, zap.NewNop())
	vendor, _ := newVendorFixture()

	mock.ExpectExec("INSERT INTO vendor_profiles").
		WithArgs(vendorArgs(vendor)...).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "vendor_profiles_user_id_fkey"})

	err = repo.Create(context.Background(), vendor)

	assert.ErrorIs(t, err, ErrForeignKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorFindByID_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewVendorRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM vendor_profiles").
		WithArgs(id.String()).
		WillReturnError(pgx.ErrNoRows)

	vendor, err := repo.FindByID(context.Background(), id)

	assert.NoError(t, err)
	assert.Nil(t, vendor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslate(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Same(t, plain, translate(plain))

	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23505"}), ErrDuplicate)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23503"}), ErrForeignKey)
	assert.ErrorIs(t, translate(&pgconn.PgError{Code: "23502"}), ErrConstraint)
}
