package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"event-marketplace/internal/adaptor"
	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/dto/request"
	"event-marketplace/internal/dto/response"
	"event-marketplace/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSessions struct {
	repository.SessionRepository
	user uuid.UUID
}

func (s stubSessions) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if token != "good" {
		return nil, nil
	}
	return &entity.Session{UserID: s.user}, nil
}

type stubUsers struct {
	repository.UserRepository
	user *entity.User
}

func (s stubUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if id != s.user.ID {
		return nil, nil
	}
	return s.user, nil
}

type stubBookings struct {
	usecase.BookingService
	updated []string
}

func (s *stubBookings) Update(ctx context.Context, actor usecase.Principal, bookingID string, req *request.UpdateBookingRequest) (*usecase.UpdateResult[response.BookingResponse], error) {
	s.updated = append(s.updated, bookingID)
	return &usecase.UpdateResult[response.BookingResponse]{
		Outcome: usecase.OutcomeUpdated,
		Value:   &response.BookingResponse{ID: bookingID, Status: entity.BookingStatusConfirmed},
	}, nil
}

type stubReviews struct {
	usecase.ReviewService
	updated []string
}

func (s *stubReviews) Update(ctx context.Context, actor usecase.Principal, reviewID string, req *request.UpdateReviewRequest) (*usecase.UpdateResult[response.ReviewResponse], error) {
	s.updated = append(s.updated, reviewID)
	return &usecase.UpdateResult[response.ReviewResponse]{
		Outcome: usecase.OutcomeUpdated,
		Value:   &response.ReviewResponse{ID: reviewID, Rating: *req.Rating},
	}, nil
}

func signedInRepo(role entity.UserRole) *repository.Repository {
	user := &entity.User{Role: role, Status: entity.UserStatusActive}
	user.ID = uuid.New()
	return &repository.Repository{
		Session: stubSessions{user: user.ID},
		User:    stubUsers{user: user},
	}
}

func send(t *testing.T, r http.Handler, method, target, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestBookingUpdateRoutes(t *testing.T) {
	svc := &stubBookings{}
	r := chi.NewRouter()
	wireBooking(r, adaptor.NewBookingHandler(svc, zap.NewNop()), signedInRepo(entity.RoleVendor), zap.NewNop())

	id := uuid.NewString()
	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			code := send(t, r, method, "/api/bookings/"+id, `{"status":"confirmed"}`)
			assert.Equal(t, http.StatusOK, code)
		})
	}

	require.Len(t, svc.updated, 2)
	assert.Equal(t, id, svc.updated[0])
}

func TestReviewUpdateRoute(t *testing.T) {
	id := uuid.NewString()

	t.Run("customer", func(t *testing.T) {
		svc := &stubReviews{}
		r := chi.NewRouter()
		wireReview(r, adaptor.NewReviewHandler(svc, zap.NewNop()), signedInRepo(entity.RoleCustomer), zap.NewNop())

		code := send(t, r, http.MethodPut, "/api/reviews/"+id, `{"rating":5}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, []string{id}, svc.updated)
	})

	t.Run("vendor is turned away", func(t *testing.T) {
		svc := &stubReviews{}
		r := chi.NewRouter()
		wireReview(r, adaptor.NewReviewHandler(svc, zap.NewNop()), signedInRepo(entity.RoleVendor), zap.NewNop())

		code := send(t, r, http.MethodPut, "/api/reviews/"+id, `{"rating":5}`)

		assert.Equal(t, http.StatusForbidden, code)
		assert.Empty(t, svc.updated)
	})
}
