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

// CatalogHandler serves services, media and availability slots.
type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// CreateService handles POST /api/vendors/{id}/services
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.CreateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	svc, err := h.service.CreateService(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create service")
		return
	}

	utils.ResponseCreated(w, "Service created successfully", svc)
}

// GetService handles GET /api/services/{id}
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, err := h.service.GetService(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "Service retrieved successfully", svc)
}

// ListServices handles GET /api/services?vendor_id=...
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	filter, ok := listFilter(w, r, repository.ServiceColumns)
	if !ok {
		return
	}

	services, err := h.service.ListServices(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list services")
		return
	}

	utils.ResponseSuccess(w, "Services retrieved successfully", services)
}

// UpdateService handles PATCH /api/services/{id}
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.UpdateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.UpdateService(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update service")
		return
	}

	writeUpdateResult(w, result, "Service updated successfully")
}

// AddMedia handles POST /api/vendors/{id}/media
func (h *CatalogHandler) AddMedia(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.CreateMediaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	media, err := h.service.AddMedia(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add media")
		return
	}

	utils.ResponseCreated(w, "Media added successfully", media)
}

// ListMedia handles GET /api/media?vendor_id=...
func (h *CatalogHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	filter, ok := listFilter(w, r, repository.MediaColumns)
	if !ok {
		return
	}

	media, err := h.service.ListMedia(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list media")
		return
	}

	utils.ResponseSuccess(w, "Media retrieved successfully", media)
}

// DeleteMedia handles DELETE /api/media/{id}
func (h *CatalogHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteMedia(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete media")
		return
	}

	utils.ResponseNoContent(w)
}

// AddAvailability handles POST /api/vendors/{id}/availability
func (h *CatalogHandler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.CreateAvailabilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	slot, err := h.service.AddAvailability(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add availability")
		return
	}

	utils.ResponseCreated(w, "Availability slot created successfully", slot)
}

// ListAvailability handles GET /api/availability?vendor_id=...&is_blocked=true
func (h *CatalogHandler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	filter, ok := listFilter(w, r, repository.AvailabilityColumns)
	if !ok {
		return
	}

	slots, err := h.service.ListAvailability(r.Context(), filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list availability")
		return
	}

	utils.ResponseSuccess(w, "Availability retrieved successfully", slots)
}

// DeleteAvailability handles DELETE /api/availability/{id}
func (h *CatalogHandler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteAvailability(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete availability")
		return
	}

	utils.ResponseNoContent(w)
}
