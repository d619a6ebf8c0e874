package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/pkg/metrics"
	"event-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSessions struct {
	repository.SessionRepository
	sessions map[string]*entity.Session
	err      error
}

func (s stubSessions) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	return s.sessions[token], s.err
}

type stubUsers struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (s stubUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var body utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthSession(t *testing.T) {
	active := &entity.User{Role: entity.RoleVendor, Status: entity.UserStatusActive}
	active.ID = uuid.New()
	suspended := &entity.User{Role: entity.RoleCustomer, Status: entity.UserStatusSuspended}
	suspended.ID = uuid.New()

	sessions := stubSessions{sessions: map[string]*entity.Session{
		"good":   {UserID: active.ID},
		"frozen": {UserID: suspended.ID},
	}}
	users := stubUsers{users: map[uuid.UUID]*entity.User{active.ID: active, suspended.ID: suspended}}

	var seen utils.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = utils.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthSession(sessions, users, zap.NewNop())(next)

	tests := []struct {
		name    string
		header  string
		code    int
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, "Missing authorization token"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Invalid token format. Use: Bearer <token>"},
		{"empty token", "Bearer   ", http.StatusUnauthorized, "Invalid token format. Use: Bearer <token>"},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, "Invalid or expired session"},
		{"suspended user", "Bearer frozen", http.StatusUnauthorized, "Account is not active"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.message, decode(t, rec).Message)
		})
	}

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer good")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, utils.Identity{UserID: active.ID, Role: "vendor", Token: "good"}, seen)
	})
}

func TestAuthSession_LookupError(t *testing.T) {
	sessions := stubSessions{err: errors.New("connection refused")}
	handler := AuthSession(sessions, stubUsers{}, zap.NewNop())(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	handler := RequireRole(zap.NewNop(), entity.RoleVendor, entity.RoleAdmin)(ok)

	serve := func(ctx context.Context) int {
		req := httptest.NewRequest(http.MethodPost, "/api/vendors", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(context.Background()))
	assert.Equal(t, http.StatusForbidden, serve(utils.WithIdentity(context.Background(), utils.Identity{UserID: uuid.New(), Role: "customer"})))
	assert.Equal(t, http.StatusNoContent, serve(utils.WithIdentity(context.Background(), utils.Identity{UserID: uuid.New(), Role: "admin"})))
	assert.Equal(t, http.StatusNoContent, serve(utils.WithIdentity(context.Background(), utils.Identity{UserID: uuid.New(), Role: "vendor"})))
}

func TestRecover(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("boom") })
	handler := Recover(zap.NewNop())(panicky)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.False(t, body.Status)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestRecover_AbortHandlerPropagates(t *testing.T) {
	aborting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic(http.ErrAbortHandler) })
	handler := Recover(zap.NewNop())(aborting)

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/api/bookings/{id}", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Resource not found")
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/api/bookings/" + uuid.NewString(), "/api/bookings/" + uuid.NewString(), "/health"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/bookings/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/health", "200")))
}
