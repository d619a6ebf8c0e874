package repository

import (
	"context"

	"event-marketplace/pkg/database"

	"go.uber.org/zap"
)

// Transactor runs fn in one transaction. Repositories called with the ctx
// handed to fn take part in it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Repository struct {
	Tx           Transactor
	User         UserRepository
	Session      SessionRepository
	Vendor       VendorRepository
	Package      PackageRepository
	Service      ServiceRepository
	Media        MediaRepository
	Availability AvailabilityRepository
	Booking      BookingRepository
	Payment      PaymentRepository
	Payout       PayoutRepository
	Review       ReviewRepository
	Notification NotificationRepository
	AuditLog     AuditLogRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:           database.NewTxManager(db),
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Vendor:       NewVendorRepository(db, log),
		Package:      NewPackageRepository(db, log),
		Service:      NewServiceRepository(db, log),
		Media:        NewMediaRepository(db, log),
		Availability: NewAvailabilityRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		Payout:       NewPayoutRepository(db, log),
		Review:       NewReviewRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		AuditLog:     NewAuditLogRepository(db, log),
	}
}
