package adaptor

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/usecase"
	"event-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Vendor       *VendorHandler
	Catalog      *CatalogHandler
	Booking      *BookingHandler
	Payment      *PaymentHandler
	Payout       *PayoutHandler
	Review       *ReviewHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Vendor:       NewVendorHandler(service.Vendor, log),
		Catalog:      NewCatalogHandler(service.Catalog, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Payment:      NewPaymentHandler(service.Payment, log),
		Payout:       NewPayoutHandler(service.Payout, log),
		Review:       NewReviewHandler(service.Review, log),
		Notification: NewNotificationHandler(service.Notification, log),
		Audit:        NewAuditHandler(service.Audit, log),
	}
}

const maxBodyBytes = 1 << 20

// decodeJSON reads the body into dst and answers 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", map[string]string{"_": err.Error()})
		return false
	}
	return true
}

// principal builds the caller from the context set by AuthSession.
func principal(w http.ResponseWriter, r *http.Request) (usecase.Principal, bool) {
	id, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return usecase.Principal{}, false
	}

	role, err := entity.ParseRole(id.Role)
	if err != nil {
		utils.ResponseUnauthorized(w, "Authentication required")
		return usecase.Principal{}, false
	}

	return usecase.Principal{UserID: id.UserID, Role: role}, true
}

func clientInfo(r *http.Request) usecase.ClientInfo {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	return usecase.ClientInfo{UserAgent: r.UserAgent(), IP: ip}
}

// listFilter parses exact-match filters from the query string.
func listFilter(w http.ResponseWriter, r *http.Request, cols repository.Columns) (repository.Filter, bool) {
	filter, err := repository.ParseFilter(cols, r.URL.Query())
	if err != nil {
		var fe *repository.FilterError
		if errors.As(err, &fe) {
			utils.ResponseBadRequest(w, "Invalid filter", fe.Fields)
			return repository.Filter{}, false
		}
		utils.ResponseBadRequest(w, err.Error(), nil)
		return repository.Filter{}, false
	}
	return filter, true
}

// handleServiceError maps use-case errors onto the response envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseValidationFailed(w, validationErr.Fields)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrConflict), errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// writeUpdateResult answers an update: 200 with the new state, 404, or 409
// with the rejection reason.
func writeUpdateResult[T any](w http.ResponseWriter, result *usecase.UpdateResult[T], message string) {
	switch result.Outcome {
	case usecase.OutcomeUpdated:
		utils.ResponseSuccess(w, message, result.Value)
	case usecase.OutcomeNotFound:
		utils.ResponseNotFound(w, "Resource not found")
	case usecase.OutcomeRejected:
		utils.ResponseConflict(w, result.Reason)
	default:
		utils.ResponseInternalError(w, "Internal server error")
	}
}
