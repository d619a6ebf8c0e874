package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/dto/request"
	"event-marketplace/internal/dto/response"
	"event-marketplace/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func init() {
	utils.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return entity.IsVendorCategory(fl.Field().String())
	})
}

type VendorService interface {
	Onboard(ctx context.Context, actor Principal, req *request.CreateVendorRequest) (*response.VendorResponse, error)
	// BulkOnboard is all-or-nothing: one invalid organisation fails the batch.
	BulkOnboard(ctx context.Context, actor Principal, req *request.BulkCreateVendorRequest) ([]response.VendorResponse, error)
	Get(ctx context.Context, vendorID string) (*response.VendorResponse, error)
	List(ctx context.Context, filter repository.Filter) (*response.ListResponse[response.VendorResponse], error)
	Update(ctx context.Context, actor Principal, vendorID string, req *request.UpdateVendorRequest) (*UpdateResult[response.VendorResponse], error)

	AddPackage(ctx context.Context, actor Principal, vendorID string, req *request.PackageRequest) (*response.PackageResponse, error)
	UpdatePackage(ctx context.Context, actor Principal, packageID string, req *request.UpdatePackageRequest) (*UpdateResult[response.PackageResponse], error)
	ListPackages(ctx context.Context, filter repository.Filter) (*response.ListResponse[response.PackageResponse], error)
}

type vendorService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVendorService(repo *repository.Repository, log *zap.Logger) VendorService {
	return &vendorService{
		repo: repo,
		log:  log.With(zap.String("service", "vendor")),
	}
}

func (s *vendorService) Onboard(ctx context.Context, actor Principal, req *request.CreateVendorRequest) (*response.VendorResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Vendor onboarding validation failed", zap.Error(err))
		return nil, err
	}

	vendor, packages, err := s.buildVendor(ctx, actor, req, "")
	if err != nil {
		return nil, err
	}

	if err := s.repo.Vendor.CreateWithPackages(ctx, vendor, packages); err != nil {
		s.log.Error("Failed to onboard vendor",
			zap.Error(err),
			zap.String("business_name", vendor.BusinessName),
		)
		return nil, mapRepoError(err)
	}

	s.log.Info("Vendor onboarded",
		zap.String("vendor_id", vendor.ID.String()),
		zap.Int("packages", len(packages)),
	)

	resp := response.VendorToResponse(vendor, packages)
	return &resp, nil
}

func (s *vendorService) BulkOnboard(ctx context.Context, actor Principal, req *request.BulkCreateVendorRequest) ([]response.VendorResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validate(req); err != nil {
		s.log.Warn("Bulk onboarding rejected", zap.Error(err))
		return nil, err
	}

	results := make([]response.VendorResponse, 0, len(req.Vendors))
	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		for i := range req.Vendors {
			prefix := fmt.Sprintf("vendors[%d].", i)
			vendor, packages, err := s.buildVendor(ctx, actor, &req.Vendors[i], prefix)
			if err != nil {
				return err
			}
			if err := s.repo.Vendor.CreateWithPackages(ctx, vendor, packages); err != nil {
				return fmt.Errorf("vendor %d: %w", i, err)
			}
			results = append(results, response.VendorToResponse(vendor, packages))
		}
		return nil
	})
	if err != nil {
		s.log.Error("Bulk onboarding rolled back", zap.Error(err), zap.Int("vendors", len(req.Vendors)))
		return nil, mapRepoError(err)
	}

	s.log.Info("Bulk onboarding committed", zap.Int("vendors", len(results)))
	return results, nil
}

// buildVendor resolves the owner and turns a request into entities. prefix
// scopes validation messages inside a batch.
func (s *vendorService) buildVendor(ctx context.Context, actor Principal, req *request.CreateVendorRequest, prefix string) (*entity.VendorProfile, []*entity.Package, error) {
	ownerID, err := s.resolveOwner(actor, req.UserID, prefix)
	if err != nil {
		return nil, nil, err
	}

	owner, err := s.repo.User.FindByID(ctx, ownerID)
	if err != nil {
		return nil, nil, fmt.Errorf("find vendor owner: %w", err)
	}
	if owner == nil {
		return nil, nil, newValidationError(prefix+"user_id", "User does not exist")
	}
	if owner.Role != entity.RoleVendor {
		return nil, nil, newValidationError(prefix+"user_id", "User is not a vendor")
	}

	geo, err := geoPoint(req.Latitude, req.Longitude, prefix)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	vendor := &entity.VendorProfile{
		BaseNoDelete: entity.NewBase(now),
		UserID:       ownerID,
		BusinessName: req.BusinessName,
		Description:  req.Description,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		Geo:          geo,
		Categories:   req.Categories,
		ServiceTags:  req.ServiceTags,
	}

	packages := make([]*entity.Package, 0, len(req.Packages))
	for _, p := range req.Packages {
		packages = append(packages, newPackage(vendor.ID, &p, now))
	}

	return vendor, packages, nil
}

func (s *vendorService) resolveOwner(actor Principal, requested, prefix string) (uuid.UUID, error) {
	switch actor.Role {
	case entity.RoleAdmin:
		if requested == "" {
			return uuid.Nil, newValidationError(prefix+"user_id", "This field is required")
		}
		return parseID(prefix+"user_id", requested)
	case entity.RoleVendor:
		if requested != "" && requested != actor.UserID.String() {
			return uuid.Nil, ErrForbidden
		}
		return actor.UserID, nil
	case entity.RoleCustomer:
		return uuid.Nil, fmt.Errorf("%w: customers cannot create vendor profiles", ErrForbidden)
	default:
		return uuid.Nil, ErrForbidden
	}
}

func geoPoint(lat, lng *float64, prefix string) (*entity.GeoPoint, error) {
	switch {
	case lat == nil && lng == nil:
		return nil, nil
	case lat == nil:
		return nil, newValidationError(prefix+"latitude", "Required together with longitude")
	case lng == nil:
		return nil, newValidationError(prefix+"longitude", "Required together with latitude")
	default:
		return &entity.GeoPoint{Lat: *lat, Lng: *lng}, nil
	}
}

func newPackage(vendorID uuid.UUID, req *request.PackageRequest, now time.Time) *entity.Package {
	return &entity.Package{
		BaseNoDelete:    entity.NewBase(now),
		VendorID:        vendorID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Features:        req.Features,
	}
}

func (s *vendorService) Get(ctx context.Context, vendorID string) (*response.VendorResponse, error) {
	id, err := parseID("id", vendorID)
	if err != nil {
		return nil, err
	}

	vendor, err := s.repo.Vendor.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find vendor", zap.Error(err), zap.String("vendor_id", vendorID))
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	if vendor == nil {
		return nil, ErrNotFound
	}

	packages, err := s.repo.Package.List(ctx, repository.NewFilter().With("vendor_id", id))
	if err != nil {
		return nil, fmt.Errorf("list vendor packages: %w", err)
	}

	resp := response.VendorToResponse(vendor, packages)
	return &resp, nil
}

func (s *vendorService) List(ctx context.Context, filter repository.Filter) (*response.ListResponse[response.VendorResponse], error) {
	vendors, err := s.repo.Vendor.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list vendors", zap.Error(err))
		return nil, fmt.Errorf("list vendors: %w", err)
	}

	data := response.MapList(vendors, func(v *entity.VendorProfile) response.VendorResponse {
		return response.VendorToResponse(v, nil)
	})
	return response.NewListResponse(data, filter.Limit, filter.Offset), nil
}

func (s *vendorService) Update(ctx context.Context, actor Principal, vendorID string, req *request.UpdateVendorRequest) (*UpdateResult[response.VendorResponse], error) {
	id, err := parseID("id", vendorID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	vendor, err := s.ownedVendor(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return notFound[response.VendorResponse](), nil
	}

	geo, err := geoPoint(req.Latitude, req.Longitude, "")
	if err != nil {
		return nil, err
	}

	patch := repository.VendorPatch{
		BusinessName: req.BusinessName,
		Description:  req.Description,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		Geo:          geo,
		Categories:   req.Categories,
		ServiceTags:  req.ServiceTags,
	}

	if err := s.repo.Vendor.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound[response.VendorResponse](), nil
		}
		return nil, mapRepoError(err)
	}

	fresh, err := s.repo.Vendor.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload vendor: %w", err)
	}
	if fresh == nil {
		return notFound[response.VendorResponse](), nil
	}
	return updated(response.VendorToResponse(fresh, nil)), nil
}

// vendorIDsOf returns every vendor profile id owned by userID.
func vendorIDsOf(ctx context.Context, vendors repository.VendorRepository, userID uuid.UUID) ([]uuid.UUID, error) {
	owned, err := vendors.List(ctx, repository.NewFilter().With("user_id", userID))
	if err != nil {
		return nil, fmt.Errorf("find vendors of caller: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(owned))
	for _, v := range owned {
		ids = append(ids, v.ID)
	}
	return ids, nil
}

// ownedVendor loads the vendor and checks the caller may manage it. A nil
// vendor with a nil error means it does not exist.
func (s *vendorService) ownedVendor(ctx context.Context, actor Principal, id uuid.UUID) (*entity.VendorProfile, error) {
	vendor, err := s.repo.Vendor.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	if vendor == nil {
		return nil, nil
	}
	if !actor.Owns(vendor.UserID) {
		return nil, ErrForbidden
	}
	return vendor, nil
}

func (s *vendorService) AddPackage(ctx context.Context, actor Principal, vendorID string, req *request.PackageRequest) (*response.PackageResponse, error) {
	id, err := parseID("vendor_id", vendorID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	vendor, err := s.ownedVendor(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, ErrNotFound
	}

	pkg := newPackage(vendor.ID, req, time.Now())
	if err := s.repo.Package.Create(ctx, pkg); err != nil {
		return nil, mapRepoError(err)
	}

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *vendorService) UpdatePackage(ctx context.Context, actor Principal, packageID string, req *request.UpdatePackageRequest) (*UpdateResult[response.PackageResponse], error) {
	id, err := parseID("id", packageID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	pkg, err := s.repo.Package.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find package: %w", err)
	}
	if pkg == nil {
		return notFound[response.PackageResponse](), nil
	}
	if _, err := s.ownedVendor(ctx, actor, pkg.VendorID); err != nil {
		return nil, err
	}

	patch := repository.PackagePatch{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Features:        req.Features,
	}
	if err := s.repo.Package.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound[response.PackageResponse](), nil
		}
		return nil, mapRepoError(err)
	}

	fresh, err := s.repo.Package.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload package: %w", err)
	}
	if fresh == nil {
		return notFound[response.PackageResponse](), nil
	}
	return updated(response.PackageToResponse(fresh)), nil
}

func (s *vendorService) ListPackages(ctx context.Context, filter repository.Filter) (*response.ListResponse[response.PackageResponse], error) {
	packages, err := s.repo.Package.List(ctx, filter)
	if err != nil {
		s.log.Error("Failed to list packages", zap.Error(err))
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return response.NewListResponse(response.MapList(packages, response.PackageToResponse), filter.Limit, filter.Offset), nil
}
