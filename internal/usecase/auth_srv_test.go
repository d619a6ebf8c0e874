package usecase

import (
	"context"
	"testing"
	"time"

	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/dto/request"
	"event-marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(env *testEnv) AuthService {
	return NewAuthService(env.repo, &utils.Config{Session: utils.SessionConfig{ExpiryHours: 2}}, env.log)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &request.RegisterRequest{
		Name:     "Ana Costa",
		Email:    "Ana@Example.com",
		Password: "correct horse",
		Role:     "vendor",
	}, ClientInfo{UserAgent: "test", IP: "127.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", registered.Email)
	assert.Equal(t, entity.RoleVendor, registered.Role)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), registered.ExpiresAt, time.Minute)

	stored, err := env.repo.User.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", stored.PasswordHash)

	loggedIn, err := svc.Login(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "correct horse"}, ClientInfo{})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, loggedIn.UserID)
	assert.NotEqual(t, registered.Token, loggedIn.Token)

	_, err = svc.Login(ctx, &request.LoginRequest{Email: "ana@example.com", Password: "wrong horse"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Register(ctx, &request.RegisterRequest{
		Name: "Copy Cat", Email: "ana@example.com", Password: "another pass",
	}, ClientInfo{})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_AdminCannotSelfRegister(t *testing.T) {
	env := newTestEnv(t)

	_, err := newAuthService(env).Register(context.Background(), &request.RegisterRequest{
		Name: "Mallory", Email: "mallory@example.com", Password: "letmein!!", Role: "admin",
	}, ClientInfo{})

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, env.store.count(func(st memState) int { return len(st.users) }))
}

func TestLogin_SuspendedUser(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	_, err := svc.Register(ctx, &request.RegisterRequest{
		Name: "Sam", Email: "sam@example.com", Password: "password1",
	}, ClientInfo{})
	require.NoError(t, err)

	user, err := env.repo.User.FindByEmail(ctx, "sam@example.com")
	require.NoError(t, err)
	require.NoError(t, env.repo.User.UpdateStatus(ctx, user.ID, entity.UserStatusSuspended))

	_, err = svc.Login(ctx, &request.LoginRequest{Email: "sam@example.com", Password: "password1"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestLogout_MalformedToken(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	assert.ErrorIs(t, svc.Logout(context.Background(), "garbage"), ErrUnauthorized)
	assert.NoError(t, svc.Logout(context.Background(), uuid.NewString()))
}
