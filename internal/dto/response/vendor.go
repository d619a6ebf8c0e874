package response

import (
	"time"

	"event-marketplace/internal/data/entity"
)

type PackageResponse struct {
	ID              string    `json:"id"`
	VendorID        string    `json:"vendor_id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	Features        []string  `json:"features"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type VendorResponse struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	BusinessName string            `json:"business_name"`
	Description  *string           `json:"description,omitempty"`
	City         *string           `json:"city,omitempty"`
	State        *string           `json:"state,omitempty"`
	Country      *string           `json:"country,omitempty"`
	Geo          *entity.GeoPoint  `json:"geo,omitempty"`
	Categories   []string          `json:"categories"`
	ServiceTags  []string          `json:"service_tags"`
	Packages     []PackageResponse `json:"packages,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type VendorRatingResponse struct {
	VendorID      string  `json:"vendor_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

func PackageToResponse(pkg *entity.Package) PackageResponse {
	return PackageResponse{
		ID:              pkg.ID.String(),
		VendorID:        pkg.VendorID.String(),
		Name:            pkg.Name,
		Description:     pkg.Description,
		Price:           pkg.Price,
		DurationMinutes: pkg.DurationMinutes,
		Features:        nonNil(pkg.Features),
		CreatedAt:       pkg.CreatedAt,
		UpdatedAt:       pkg.UpdatedAt,
	}
}

func VendorToResponse(vendor *entity.VendorProfile, packages []*entity.Package) VendorResponse {
	resp := VendorResponse{
		ID:           vendor.ID.String(),
		UserID:       vendor.UserID.String(),
		BusinessName: vendor.BusinessName,
		Description:  vendor.Description,
		City:         vendor.City,
		State:        vendor.State,
		Country:      vendor.Country,
		Geo:          vendor.Geo,
		Categories:   nonNil(vendor.Categories),
		ServiceTags:  nonNil(vendor.ServiceTags),
		CreatedAt:    vendor.CreatedAt,
		UpdatedAt:    vendor.UpdatedAt,
	}
	if packages != nil {
		resp.Packages = MapList(packages, PackageToResponse)
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
