package usecase

import (
	"event-marketplace/internal/audit"
	"event-marketplace/internal/data/repository"
	"event-marketplace/pkg/metrics"
	"event-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Vendor       VendorService
	Catalog      CatalogService
	Booking      BookingService
	Payment      PaymentService
	Payout       PayoutService
	Review       ReviewService
	Notification NotificationService
	Audit        AuditService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	recorder audit.Recorder,
	m *metrics.Metrics,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo, recorder, log),
		Vendor:       NewVendorService(repo, log),
		Catalog:      NewCatalogService(repo, log),
		Booking:      NewBookingService(repo, config.Booking, m, log),
		Payment:      NewPaymentService(repo, config.Booking, log),
		Payout:       NewPayoutService(repo, log),
		Review:       NewReviewService(repo, log),
		Notification: NewNotificationService(repo, log),
		Audit:        NewAuditService(repo, log),
	}
}
