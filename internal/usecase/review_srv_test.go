package usecase

import (
	"context"
	"errors"
	"testing"

	"event-marketplace/internal/data/entity"
	"event-marketplace/internal/data/repository"
	"event-marketplace/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReview_Rules(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	reviews := NewReviewService(f.env.repo, f.env.log)

	booking, err := f.svc.Create(ctx, f.customer, f.request(2))
	require.NoError(t, err)
	id := uuid.MustParse(booking.ID)

	t.Run("booking not completed", func(t *testing.T) {
		_, err := reviews.Create(ctx, f.customer, &request.CreateReviewRequest{BookingID: booking.ID, Rating: 4})
		assert.ErrorIs(t, err, ErrConflict)
	})

	f.env.setBookingStatus(id, entity.BookingStatusCompleted)

	t.Run("someone else's booking", func(t *testing.T) {
		other := f.env.addUser(entity.RoleCustomer)
		_, err := reviews.Create(ctx, other, &request.CreateReviewRequest{BookingID: booking.ID, Rating: 4})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("vendor id must match the booking", func(t *testing.T) {
		_, err := reviews.Create(ctx, f.customer, &request.CreateReviewRequest{
			BookingID: booking.ID,
			VendorID:  uuid.NewString(),
			Rating:    4,
		})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "vendor_id")
	})

	t.Run("rating out of range", func(t *testing.T) {
		_, err := reviews.Create(ctx, f.customer, &request.CreateReviewRequest{BookingID: booking.ID, Rating: 6})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "rating")
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := reviews.Create(ctx, f.customer, &request.CreateReviewRequest{BookingID: uuid.NewString(), Rating: 3})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "booking_id")
	})

	review, err := reviews.Create(ctx, f.customer, &request.CreateReviewRequest{
		BookingID:  booking.ID,
		CustomerID: f.customer.UserID.String(),
		Rating:     3,
	})
	require.NoError(t, err)

	got, err := reviews.Get(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Rating)

	// The vendor is told about the new review.
	notes, err := f.env.repo.Notification.List(ctx, repository.NewFilter().With("user_id", f.owner.UserID))
	require.NoError(t, err)
	assert.NotEmpty(t, notes)
}

func TestUpdateReview(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	reviews := NewReviewService(f.env.repo, f.env.log)

	booking, err := f.svc.Create(ctx, f.customer, f.request(2))
	require.NoError(t, err)
	f.env.setBookingStatus(uuid.MustParse(booking.ID), entity.BookingStatusCompleted)

	review, err := reviews.Create(ctx, f.customer, &request.CreateReviewRequest{BookingID: booking.ID, Rating: 2})
	require.NoError(t, err)

	t.Run("customer revises rating and comment", func(t *testing.T) {
		result, err := reviews.Update(ctx, f.customer, review.ID, &request.UpdateReviewRequest{
			Rating:  ptr(4),
			Comment: ptr("They made up for the late start"),
		})
		require.NoError(t, err)
		require.Equal(t, OutcomeUpdated, result.Outcome)
		assert.Equal(t, 4, result.Value.Rating)
		assert.Equal(t, "They made up for the late start", *result.Value.Comment)

		rating, err := reviews.VendorRating(ctx, f.vendor.ID.String())
		require.NoError(t, err)
		assert.InDelta(t, 4.0, rating.AverageRating, 1e-9)
	})

	t.Run("vendor cannot edit it", func(t *testing.T) {
		_, err := reviews.Update(ctx, f.owner, review.ID, &request.UpdateReviewRequest{Rating: ptr(5)})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("rating out of range", func(t *testing.T) {
		_, err := reviews.Update(ctx, f.customer, review.ID, &request.UpdateReviewRequest{Rating: ptr(0)})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "rating")
	})

	t.Run("empty update", func(t *testing.T) {
		_, err := reviews.Update(ctx, f.customer, review.ID, &request.UpdateReviewRequest{})
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
	})

	t.Run("missing review", func(t *testing.T) {
		result, err := reviews.Update(ctx, f.customer, uuid.NewString(), &request.UpdateReviewRequest{Rating: ptr(5)})
		require.NoError(t, err)
		assert.Equal(t, OutcomeNotFound, result.Outcome)
	})
}
