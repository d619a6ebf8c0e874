package usecase

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"testing"
	"time"

	"event-marketplace/internal/audit"
	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/pkg/utils"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memState is everything the fakes persist. Values, not pointers, so a
// shallow map clone is a full snapshot.
type memState struct {
	users         map[uuid.UUID]entity.User
	vendors       map[uuid.UUID]entity.VendorProfile
	packages      map[uuid.UUID]entity.Package
	services      map[uuid.UUID]entity.Service
	slots         map[uuid.UUID]entity.AvailabilitySlot
	bookings      map[uuid.UUID]entity.Booking
	payments      map[uuid.UUID]entity.Payment
	reviews       map[uuid.UUID]entity.Review
	notifications map[uuid.UUID]entity.Notification
}

func (st memState) clone() memState {
	return memState{
		users:         maps.Clone(st.users),
		vendors:       maps.Clone(st.vendors),
		packages:      maps.Clone(st.packages),
		services:      maps.Clone(st.services),
		slots:         maps.Clone(st.slots),
		bookings:      maps.Clone(st.bookings),
		payments:      maps.Clone(st.payments),
		reviews:       maps.Clone(st.reviews),
		notifications: maps.Clone(st.notifications),
	}
}

type memStore struct {
	mu    sync.Mutex
	state memState

	revoked   map[uuid.UUID]int
	commits   int
	rollbacks int

	// failPackage makes the insert of a package with this name fail.
	failPackage string
	// beforeTransition runs ahead of the compare-and-set of a booking.
	beforeTransition func(id uuid.UUID)
}

type fakeTxKey struct{}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			users:         map[uuid.UUID]entity.User{},
			vendors:       map[uuid.UUID]entity.VendorProfile{},
			packages:      map[uuid.UUID]entity.Package{},
			services:      map[uuid.UUID]entity.Service{},
			slots:         map[uuid.UUID]entity.AvailabilitySlot{},
			bookings:      map[uuid.UUID]entity.Booking{},
			payments:      map[uuid.UUID]entity.Payment{},
			reviews:       map[uuid.UUID]entity.Review{},
			notifications: map[uuid.UUID]entity.Notification{},
		},
		revoked: map[uuid.UUID]int{},
	}
}

// atomic restores the snapshot taken on entry when fn fails. Nested calls
// join the outer scope.
func (s *memStore) atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(fakeTxKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	saved := s.state.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, fakeTxKey{}, true)); err != nil {
		s.mu.Lock()
		s.state = saved
		s.rollbacks++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.commits++
	s.mu.Unlock()
	return nil
}

func (s *memStore) count(f func(st memState) int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(s.state)
}

// matches applies an exact-match filter to the string form of fields. A
// []string value matches any of its members.
func matches(eq squirrel.Eq, fields map[string]any) bool {
	for k, v := range eq {
		fv, ok := fields[k]
		if !ok {
			return false
		}
		if set, isSet := v.([]string); isSet {
			if !slices.Contains(set, fmt.Sprint(fv)) {
				return false
			}
			continue
		}
		if fmt.Sprint(fv) != fmt.Sprint(v) {
			return false
		}
	}
	return true
}

func listOf[T any](s *memStore, items map[uuid.UUID]T, filter repository.Filter, fields func(T) map[string]any) []*T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*T{}
	for _, item := range items {
		if matches(filter.Eq, fields(item)) {
			v := item
			out = append(out, &v)
		}
	}
	return out
}

// ---- transactor

type fakeTx struct{ s *memStore }

func (t fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.s.atomic(ctx, fn)
}

// ---- users

type fakeUserRepo struct{ s *memStore }

func (r fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.state.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.s.state.users[user.ID] = *user
	return nil
}

func (r fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.state.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.state.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) List(ctx context.Context, filter repository.Filter) ([]*entity.User, error) {
	return listOf(r.s, r.s.state.users, filter, func(u entity.User) map[string]any {
		return map[string]any{"id": u.ID, "role": u.Role, "status": u.Status, "email": u.Email}
	}), nil
}

func (r fakeUserRepo) Update(ctx context.Context, id uuid.UUID, patch repository.UserPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.state.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Phone != nil {
		u.Phone = patch.Phone
	}
	r.s.state.users[id] = u
	return nil
}

func (r fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.state.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Status = status
	r.s.state.users[id] = u
	return nil
}

func (r fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.state.users[id]; !ok {
		return repository.ErrNotFound
	}
	for _, b := range r.s.state.bookings {
		if b.CustomerID == id {
			return repository.ErrForeignKey
		}
	}
	delete(r.s.state.users, id)
	return nil
}

// ---- sessions

type fakeSessionRepo struct{ s *memStore }

func (r fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error { return nil }

func (r fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	return nil, nil
}

func (r fakeSessionRepo) Revoke(ctx context.Context, token string) error { return nil }

func (r fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.revoked[userID]++
	return nil
}

func (r fakeSessionRepo) CleanExpiredSessions(ctx context.Context) (int64, error) { return 0, nil }

// ---- vendors and packages

type fakeVendorRepo struct{ s *memStore }

func (r fakeVendorRepo) Create(ctx context.Context, vendor *entity.VendorProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.vendors[vendor.ID] = *vendor
	return nil
}

func (r fakeVendorRepo) CreateWithPackages(ctx context.Context, vendor *entity.VendorProfile, packages []*entity.Package) error {
	return r.s.atomic(ctx, func(ctx context.Context) error {
		if err := r.Create(ctx, vendor); err != nil {
			return err
		}
		for i, pkg := range packages {
			pkg.VendorID = vendor.ID
			if err := (fakePackageRepo{r.s}).Create(ctx, pkg); err != nil {
				return fmt.Errorf("package %d: %w", i, err)
			}
		}
		return nil
	})
}

func (r fakeVendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.VendorProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.state.vendors[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r fakeVendorRepo) List(ctx context.Context, filter repository.Filter) ([]*entity.VendorProfile, error) {
	return listOf(r.s, r.s.state.vendors, filter, func(v entity.VendorProfile) map[string]any {
		return map[string]any{"id": v.ID, "user_id": v.UserID, "business_name": v.BusinessName}
	}), nil
}

func (r fakeVendorRepo) Update(ctx context.Context, id uuid.UUID, patch repository.VendorPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.state.vendors[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.BusinessName != nil {
		v.BusinessName = *patch.BusinessName
	}
	if patch.Categories != nil {
		v.Categories = patch.Categories
	}
	r.s.state.vendors[id] = v
	return nil
}

type fakePackageRepo struct{ s *memStore }

func (r fakePackageRepo) Create(ctx context.Context, pkg *entity.Package) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failPackage != "" && pkg.Name == r.s.failPackage {
		return repository.ErrConstraint
	}
	r.s.state.packages[pkg.ID] = *pkg
	return nil
}

func (r fakePackageRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Package, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.state.packages[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r fakePackageRepo) List(ctx context.Context, filter repository.Filter) ([]*entity.Package, error) {
	return listOf(r.s, r.s.state.packages, filter, func(p entity.Package) map[string]any {
		return map[string]any{"id": p.ID, "vendor_id": p.VendorID, "name": p.Name}
	}), nil
}

func (r fakePackageRepo) Update(ctx context.Context, id uuid.UUID, patch repository.PackagePatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.state.packages[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	r.s.state.packages[id] = p
	return nil
}

// ---- catalog

type fakeServiceRepo struct{ s *memStore }

func (r fakeServiceRepo) Create(ctx context.Context, service *entity.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.state.vendors[service.VendorID]; !ok {
		return repository.ErrForeignKey
	}
	r.s.state.services[service.ID] = *service
	return nil
}

func (r fakeServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.state.services[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

func (r fakeServiceRepo) List(ctx context.Context, filter repository.Filter) ([]*entity.Service, error) {
	return listOf(r.s, r.s.state.services, filter, func(svc entity.Service) map[string]any {
		return map[string]any{"id": svc.ID, "vendor_id": svc.VendorID}
	}), nil
}

func (r fakeServiceRepo) Update(ctx context.Context, id uuid.UUID, patch repository.ServicePatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.state.services[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.HourlyRate != nil {
		svc.HourlyRate = *patch.HourlyRate
	}
	r.s.state.services[id] = svc
	return nil
}

type fakeAvailabilityRepo struct{ s *memStore }

func (r fakeAvailabilityRepo) Create(ctx context.Context, slot *entity.AvailabilitySlot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.slots[slot.ID] = *slot
	return nil
}

func (r fakeAvailabilityRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.state.slots[id]
	if !ok {
		return nil, nil
	}
	return &slot, nil
}

func (r fakeAvailabilityRepo) List(ctx context.Context, filter repository.Filter) ([]*entity.AvailabilitySlot, error) {
	return listOf(r.s, r.s.state.slots, filter, func(slot entity.AvailabilitySlot) map[string]any {
		return map[string]any{"id": slot.ID, "vendor_id": slot.VendorID, "is_blocked": slot.IsBlocked}
	}), nil
}

func (r fakeAvailabilityRepo) Update(ctx context.Context, id uuid.UUID, patch repository.AvailabilityPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.state.slots[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.IsBlocked != nil {
		slot.IsBlocked = *patch.IsBlocked
	}
	r.s.state.slots[id] = slot
	return nil
}

func (r fakeAvailabilityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.state.slots[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.state.slots, id)
	return nil
}

func (r fakeAvailabilityRepo) HasBlockedOverlap(ctx context.Context, vendorID uuid.UUID, start, end time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, slot := range r.s.state.slots {
		if slot.VendorID == vendorID && slot.IsBlocked && slot.StartAt.Before(end) && slot.EndAt.After(start) {
			return true, nil
		}
	}
	return false, nil
}

// ---- bookings

type fakeBookingRepo struct{ s *memStore }

func (r fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.state.services[booking.ServiceID]
	if !ok || svc.VendorID != booking.VendorID {
		return repository.ErrForeignKey
	}
	r.s.state.bookings[booking.ID] = *booking
	return nil
}

func (r fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.state.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r fakeBookingRepo) List(ctx context.Context, filter repository.Filter) ([]*entity.Booking, error) {
	return listOf(r.s, r.s.state.bookings, filter, func(b entity.Booking) map[string]any {
		return map[string]any{
			"id": b.ID, "customer_id": b.CustomerID, "vendor_id": b.VendorID,
			"service_id": b.ServiceID, "status": b.Status,
		}
	}), nil
}

func (r fakeBookingRepo) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.state.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Notes = &notes
	r.s.state.bookings[id] = b
	return nil
}

func (r fakeBookingRepo) SetPaymentID(ctx context.Context, id, paymentID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.state.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.PaymentID = &paymentID
	r.s.state.bookings[id] = b
	return nil
}

func (r fakeBookingRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	if hook := r.s.beforeTransition; hook != nil {
		hook(id)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.state.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now()
	r.s.state.bookings[id] = b
	return true, nil
}

func (r fakeBookingRepo) HasOverlap(ctx context.Context, vendorID, serviceID uuid.UUID, start, end time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.state.bookings {
		if b.VendorID == vendorID && b.ServiceID == serviceID && b.Status.Blocking() &&
			b.StartAt.Before(end) && b.EndAt.After(start) {
			return true, nil
		}
	}
	return false, nil
}

// ---- payments

type fakePaymentRepo struct{ s *memStore }

func (r fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.state.payments {
		if p.BookingID == payment.BookingID {
			return repository.ErrDuplicate
		}
	}
	r.s.state.payments[payment.ID] = *payment
	return nil
}

func (r fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.state.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r fakePaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.state.payments {
		if p.BookingID == bookingID {
			return &p, nil
		}
	}
	return nil, nil
}

func (r fakePaymentRepo) List(ctx context.Context, filter repository.Filter) ([]*entity.Payment, error) {
	return listOf(r.s, r.s.state.payments, filter, func(p entity.Payment) map[string]any {
		return map[string]any{"id": p.ID, "booking_id": p.BookingID, "provider": p.Provider}
	}), nil
}

func (r fakePaymentRepo) Update(ctx context.Context, id uuid.UUID, patch repository.PaymentPatch) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.state.payments[id]
	if !ok {
		return false, nil
	}
	if patch.RefundedAmount != nil {
		if *patch.RefundedAmount < p.RefundedAmount || *patch.RefundedAmount > p.Amount {
			return false, nil
		}
		p.RefundedAmount = *patch.RefundedAmount
	}
	if patch.Status != nil {
		p.Status = patch.Status
	}
	if patch.ProviderChargeID != nil {
		p.ProviderChargeID = patch.ProviderChargeID
	}
	r.s.state.payments[id] = p
	return true, nil
}

func (r fakePaymentRepo) Refund(ctx context.Context, id uuid.UUID, amount float64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.state.payments[id]
	if !ok || p.RefundedAmount+amount > p.Amount {
		return false, nil
	}
	p.RefundedAmount += amount
	r.s.state.payments[id] = p
	return true, nil
}

// ---- reviews and notifications

type fakeReviewRepo struct{ s *memStore }

func (r fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.state.reviews {
		if rv.BookingID == review.BookingID {
			return repository.ErrDuplicate
		}
	}
	r.s.state.reviews[review.ID] = *review
	return nil
}

func (r fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.state.reviews[id]
	if !ok {
		return nil, nil
	}
	return &rv, nil
}

func (r fakeReviewRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.state.reviews {
		if rv.BookingID == bookingID {
			return &rv, nil
		}
	}
	return nil, nil
}

func (r fakeReviewRepo) List(ctx context.Context, filter repository.Filter) ([]*entity.Review, error) {
	return listOf(r.s, r.s.state.reviews, filter, func(rv entity.Review) map[string]any {
		return map[string]any{
			"id": rv.ID, "booking_id": rv.BookingID, "customer_id": rv.CustomerID,
			"vendor_id": rv.VendorID, "rating": rv.Rating,
		}
	}), nil
}

func (r fakeReviewRepo) Update(ctx context.Context, id uuid.UUID, patch repository.ReviewPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.state.reviews[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Rating != nil {
		rv.Rating = *patch.Rating
	}
	if patch.Comment != nil {
		rv.Comment = patch.Comment
	}
	rv.UpdatedAt = time.Now()
	r.s.state.reviews[id] = rv
	return nil
}

func (r fakeReviewRepo) VendorSummary(ctx context.Context, vendorID uuid.UUID) (float64, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum, n int
	for _, rv := range r.s.state.reviews {
		if rv.VendorID == vendorID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), int64(n), nil
}

type fakeNotificationRepo struct{ s *memStore }

func (r fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.notifications[n.ID] = *n
	return nil
}

func (r fakeNotificationRepo) List(ctx context.Context, filter repository.Filter) ([]*entity.Notification, error) {
	return listOf(r.s, r.s.state.notifications, filter, func(n entity.Notification) map[string]any {
		return map[string]any{"id": n.ID, "user_id": n.UserID, "type": n.Type, "read": n.Read}
	}), nil
}

func (r fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.state.notifications[id]
	if !ok || n.UserID != userID {
		return repository.ErrNotFound
	}
	n.Read = true
	r.s.state.notifications[id] = n
	return nil
}

// ---- audit

type fakeRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (f *fakeRecorder) Dispatch(ev audit.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeRecorder) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.Action)
	}
	return out
}

// ---- environment

type testEnv struct {
	store    *memStore
	repo     *repository.Repository
	recorder *fakeRecorder
	config   utils.BookingConfig
	log      *zap.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	return &testEnv{
		store: store,
		repo: &repository.Repository{
			Tx:           fakeTx{store},
			User:         fakeUserRepo{store},
			Session:      fakeSessionRepo{store},
			Vendor:       fakeVendorRepo{store},
			Package:      fakePackageRepo{store},
			Service:      fakeServiceRepo{store},
			Availability: fakeAvailabilityRepo{store},
			Booking:      fakeBookingRepo{store},
			Payment:      fakePaymentRepo{store},
			Review:       fakeReviewRepo{store},
			Notification: fakeNotificationRepo{store},
		},
		recorder: &fakeRecorder{},
		config: utils.BookingConfig{
			DefaultCurrency: "USD",
			DefaultProvider: "Stripe",
			EnforceOverlap:  true,
			AmountTolerance: 0.01,
		},
		log: zap.NewNop(),
	}
}

func (e *testEnv) addUser(role entity.UserRole) Principal {
	user := entity.User{
		BaseNoDelete: entity.NewBase(time.Now()),
		Name:         string(role) + " user",
		Email:        uuid.NewString() + "@example.com",
		Role:         role,
		Status:       entity.UserStatusActive,
	}
	e.store.mu.Lock()
	e.store.state.users[user.ID] = user
	e.store.mu.Unlock()
	return Principal{UserID: user.ID, Role: role}
}

func (e *testEnv) addVendor(owner Principal) entity.VendorProfile {
	vendor := entity.VendorProfile{
		BaseNoDelete: entity.NewBase(time.Now()),
		UserID:       owner.UserID,
		BusinessName: "Lumen Events",
		Categories:   []string{"planning"},
	}
	e.store.mu.Lock()
	e.store.state.vendors[vendor.ID] = vendor
	e.store.mu.Unlock()
	return vendor
}

func (e *testEnv) addService(vendorID uuid.UUID, rate float64, minHours int) entity.Service {
	svc := entity.Service{
		BaseNoDelete: entity.NewBase(time.Now()),
		VendorID:     vendorID,
		Title:        "Event coordination",
		HourlyRate:   rate,
		MinHours:     minHours,
	}
	e.store.mu.Lock()
	e.store.state.services[svc.ID] = svc
	e.store.mu.Unlock()
	return svc
}

func (e *testEnv) setBookingStatus(id uuid.UUID, status entity.BookingStatus) {
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	b := e.store.state.bookings[id]
	b.Status = status
	e.store.state.bookings[id] = b
}
