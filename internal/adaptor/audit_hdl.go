package adaptor

import (
	"net/http"

	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/usecase"
	"event-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AuditHandler struct {
	service usecase.AuditService
	log     *zap.Logger
}

func NewAuditHandler(service usecase.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		log:     log.With(zap.String("handler", "audit")),
	}
}

// Get handles GET /api/audit-logs/{id}
func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	entry, err := h.service.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get audit log")
		return
	}

	utils.ResponseSuccess(w, "Audit log retrieved successfully", entry)
}

// List handles GET /api/audit-logs?admin_id=...&action=...
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	filter, ok := listFilter(w, r, repository.AuditLogColumns)
	if !ok {
		return
	}

	entries, err := h.service.List(r.Context(), actor, filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list audit logs")
		return
	}

	utils.ResponseSuccess(w, "Audit logs retrieved successfully", entries)
}
