package entity

import (
	"github.com/google/uuid"
)

// Categories a vendor profile may be tagged with.
var VendorCategories = []string{
	"venue",
	"catering",
	"photography",
	"videography",
	"music",
	"decoration",
	"planning",
	"florist",
	"makeup",
	"transport",
	"entertainment",
	"rentals",
}

func IsVendorCategory(s string) bool {
	for _, c := range VendorCategories {
		if c == s {
			return true
		}
	}
	return false
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type VendorProfile struct {
	BaseNoDelete
	UserID       uuid.UUID `db:"user_id"`
	BusinessName string    `db:"business_name"`
	Description  *string   `db:"description"`
	City         *string   `db:"city"`
	State        *string   `db:"state"`
	Country      *string   `db:"country"`
	Geo          *GeoPoint `db:"-"`
	Categories   []string  `db:"categories"`
	ServiceTags  []string  `db:"service_tags"`
}

// Package is a fixed-price bundle. It never exists without its vendor.
type Package struct {
	BaseNoDelete
	VendorID        uuid.UUID `db:"vendor_id"`
	Name            string    `db:"name"`
	Description     *string   `db:"description"`
	Price           float64   `db:"price"`
	DurationMinutes int       `db:"duration_minutes"`
	Features        []string  `db:"features"`
}
