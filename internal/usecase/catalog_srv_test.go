package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_Services(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.repo, env.log)
	owner := env.addUser(entity.RoleVendor)
	vendor := env.addVendor(owner)
	ctx := context.Background()

	created, err := svc.CreateService(ctx, owner, vendor.ID.String(), &request.CreateServiceRequest{
		Title:      "Live quartet",
		HourlyRate: 180,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.MinHours)
	assert.Equal(t, vendor.ID.String(), created.VendorID)

	t.Run("another vendor cannot add services", func(t *testing.T) {
		other := env.addUser(entity.RoleVendor)
		_, err := svc.CreateService(ctx, other, vendor.ID.String(), &request.CreateServiceRequest{Title: "Sneaky", HourlyRate: 1})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown vendor", func(t *testing.T) {
		_, err := svc.CreateService(ctx, owner, uuid.NewString(), &request.CreateServiceRequest{Title: "Ghost", HourlyRate: 1})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rate must be positive", func(t *testing.T) {
		_, err := svc.CreateService(ctx, owner, vendor.ID.String(), &request.CreateServiceRequest{Title: "Free", HourlyRate: 0})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "hourly_rate")
	})

	t.Run("update", func(t *testing.T) {
		result, err := svc.UpdateService(ctx, owner, created.ID, &request.UpdateServiceRequest{HourlyRate: ptr(210.0)})
		require.NoError(t, err)
		require.Equal(t, OutcomeUpdated, result.Outcome)
		assert.InDelta(t, 210.0, result.Value.HourlyRate, 1e-9)

		result, err = svc.UpdateService(ctx, owner, uuid.NewString(), &request.UpdateServiceRequest{HourlyRate: ptr(1.0)})
		require.NoError(t, err)
		assert.Equal(t, OutcomeNotFound, result.Outcome)
	})

	list, err := svc.ListServices(ctx, repository.NewFilter().With("vendor_id", vendor.ID))
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)
}

func TestCatalogService_Availability(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.repo, env.log)
	owner := env.addUser(entity.RoleVendor)
	vendor := env.addVendor(owner)
	ctx := context.Background()
	start := time.Date(2026, 12, 24, 9, 0, 0, 0, time.UTC)

	_, err := svc.AddAvailability(ctx, owner, vendor.ID.String(), &request.CreateAvailabilityRequest{
		StartAt: start,
		EndAt:   start.Add(-time.Hour),
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "end_datetime")

	slot, err := svc.AddAvailability(ctx, owner, vendor.ID.String(), &request.CreateAvailabilityRequest{
		StartAt:   start,
		EndAt:     start.Add(24 * time.Hour),
		IsBlocked: true,
	})
	require.NoError(t, err)

	stranger := env.addUser(entity.RoleVendor)
	assert.ErrorIs(t, svc.DeleteAvailability(ctx, stranger, slot.ID), ErrForbidden)

	require.NoError(t, svc.DeleteAvailability(ctx, owner, slot.ID))
	assert.ErrorIs(t, svc.DeleteAvailability(ctx, owner, slot.ID), ErrNotFound)
}
