package adaptor

import (
	"net/http"

	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/dto/request"
	"event-marketplace/internal/usecase"
	"event-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VendorHandler struct {
	service usecase.VendorService
	log     *zap.Logger
}

func NewVendorHandler(service usecase.VendorService, log *zap.Logger) *VendorHandler {
	return &VendorHandler{
		service: service,
		log:     log.With(zap.String("handler", "vendor")),
	}
}

// Onboard handles POST /api/vendors
func (h *VendorHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.CreateVendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vendor, err := h.service.Onboard(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "onboard vendor")
		return
	}

	utils.ResponseCreated(w, "Vendor onboarded successfully", vendor)
}

// BulkOnboard handles POST /api/vendors/bulk (admin only)
func (h *VendorHandler) BulkOnboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.BulkCreateVendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vendors, err := h.service.BulkOnboard(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "bulk onboard vendors")
		return
	}

	utils.ResponseCreated(w, "Vendors onboarded successfully", vendors)
}

// Get handles GET /api/vendors/{id}
func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get vendor")
		return
	}

	utils.ResponseSuccess(w, "Vendor retrieved successfully", vendor)
}

// List handles GET /api/vendors?city=...&country=...
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := listFilter(w, r, repository.VendorColumns)
	if !ok {
		return
	}

	vendors, err := h.service.List(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list vendors")
		return
	}

	utils.ResponseSuccess(w, "Vendors retrieved successfully", vendors)
}

// Update handles PATCH /api/vendors/{id}
func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.UpdateVendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update vendor")
		return
	}

	writeUpdateResult(w, result, "Vendor updated successfully")
}

// AddPackage handles POST /api/vendors/{id}/packages
func (h *VendorHandler) AddPackage(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.PackageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pkg, err := h.service.AddPackage(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add package")
		return
	}

	utils.ResponseCreated(w, "Package created successfully", pkg)
}

// UpdatePackage handles PATCH /api/packages/{id}
func (h *VendorHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.UpdatePackageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.UpdatePackage(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update package")
		return
	}

	writeUpdateResult(w, result, "Package updated successfully")
}

// ListPackages handles GET /api/packages?vendor_id=...
func (h *VendorHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	filter, ok := listFilter(w, r, repository.PackageColumns)
	if !ok {
		return
	}

	packages, err := h.service.ListPackages(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list packages")
		return
	}

	utils.ResponseSuccess(w, "Packages retrieved successfully", packages)
}
