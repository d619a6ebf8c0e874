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

type PayoutHandler struct {
	service usecase.PayoutService
	log     *zap.Logger
}

func NewPayoutHandler(service usecase.PayoutService, log *zap.Logger) *PayoutHandler {
	return &PayoutHandler{
		service: service,
		log:     log.With(zap.String("handler", "payout")),
	}
}

// Create handles POST /api/payouts (admin only)
func (h *PayoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.CreatePayoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payout, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create payout")
		return
	}

	utils.ResponseCreated(w, "Payout recorded successfully", payout)
}

// Get handles GET /api/payouts/{id}
func (h *PayoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	payout, err := h.service.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get payout")
		return
	}

	utils.ResponseSuccess(w, "Payout retrieved successfully", payout)
}

// List handles GET /api/payouts?vendor_id=...&status=...
func (h *PayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}
	filter, ok := listFilter(w, r, repository.PayoutColumns)
	if !ok {
		return
	}

	payouts, err := h.service.List(r.Context(), actor, filter)
	if err != nil {
		handleServiceError(w, h.log, err, "list payouts")
		return
	}

	utils.ResponseSuccess(w, "Payouts retrieved successfully", payouts)
}

// Update handles PATCH /api/payouts/{id} (admin only)
func (h *PayoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := principal(w, r)
	if !ok {
		return
	}

	var req request.UpdatePayoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update payout")
		return
	}

	writeUpdateResult(w, result, "Payout updated successfully")
}
