package request

type PackageRequest struct {
	Name            string   `json:"name" validate:"required,min=2,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price           float64  `json:"price" validate:"gte=0"`
	DurationMinutes int      `json:"duration_minutes" validate:"gte=0"`
	Features        []string `json:"features,omitempty" validate:"omitempty,dive,min=1,max=200"`
}

type UpdatePackageRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,gte=0"`
	Features        []string `json:"features,omitempty" validate:"omitempty,dive,min=1,max=200"`
}

// CreateVendorRequest onboards a vendor profile together with its packages.
// UserID is only honoured for admins; vendors always onboard themselves.
type CreateVendorRequest struct {
	UserID       string           `json:"user_id,omitempty" validate:"omitempty,uuid"`
	BusinessName string           `json:"business_name" validate:"required,min=2,max=200"`
	Description  *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	City         *string          `json:"city,omitempty" validate:"omitempty,max=100"`
	State        *string          `json:"state,omitempty" validate:"omitempty,max=100"`
	Country      *string          `json:"country,omitempty" validate:"omitempty,max=100"`
	Latitude     *float64         `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64         `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Categories   []string         `json:"categories" validate:"required,min=1,dive,category"`
	ServiceTags  []string         `json:"service_tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	Packages     []PackageRequest `json:"packages,omitempty" validate:"omitempty,dive"`
}

type BulkCreateVendorRequest struct {
	Vendors []CreateVendorRequest `json:"vendors" validate:"required,min=1,max=100,dive"`
}

type UpdateVendorRequest struct {
	BusinessName *string  `json:"business_name,omitempty" validate:"omitempty,min=2,max=200"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	City         *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	State        *string  `json:"state,omitempty" validate:"omitempty,max=100"`
	Country      *string  `json:"country,omitempty" validate:"omitempty,max=100"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Categories   []string `json:"categories,omitempty" validate:"omitempty,min=1,dive,category"`
	ServiceTags  []string `json:"service_tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
}
