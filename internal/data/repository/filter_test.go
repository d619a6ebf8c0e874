package repository

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	id := uuid.New()

	f, err := ParseFilter(BookingColumns, url.Values{
		"vendor_id": {id.String()},
		"status":    {"pending"},
		"hours":     {"3"},
		"page":      {"3"},
		"per_page":  {"10"},
	})

	require.NoError(t, err)
	assert.Equal(t, id.String(), f.Eq["vendor_id"])
	assert.Equal(t, "pending", f.Eq["status"])
	assert.Equal(t, 3, f.Eq["hours"])
	assert.Equal(t, uint64(10), f.Limit)
	assert.Equal(t, uint64(20), f.Offset)
}

func TestParseFilter_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		field string
	}{
		{"unknown column", url.Values{"password_hash": {"x"}}, "password_hash"},
		{"bad uuid", url.Values{"customer_id": {"not-a-uuid"}}, "customer_id"},
		{"bad int", url.Values{"hours": {"two"}}, "hours"},
		{"bad page", url.Values{"page": {"0"}}, "page"},
		{"per_page too large", url.Values{"per_page": {"1000"}}, "per_page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilter(BookingColumns, tt.query)

			var fe *FilterError
			require.True(t, errors.As(err, &fe))
			assert.Contains(t, fe.Fields, tt.field)
		})
	}
}

func TestParseFilter_BoolColumn(t *testing.T) {
	f, err := ParseFilter(AvailabilityColumns, url.Values{"is_blocked": {"true"}})
	require.NoError(t, err)
	assert.Equal(t, true, f.Eq["is_blocked"])
}

func TestFilterWith(t *testing.T) {
	base := NewFilter()
	id := uuid.New()

	scoped := base.With("customer_id", id)

	v, ok := scoped.Value("customer_id")
	require.True(t, ok)
	assert.Equal(t, id.String(), v)

	_, ok = base.Value("customer_id")
	assert.False(t, ok, "With must not mutate the receiver")
}

func TestFilterWithAnyOf(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	t.Run("renders IN over every id", func(t *testing.T) {
		query, args, err := selectList("bookings", []string{"id"}, NewFilter().WithAnyOf("vendor_id", []uuid.UUID{a, b}))

		require.NoError(t, err)
		assert.Equal(t, "SELECT id FROM bookings WHERE vendor_id IN ($1,$2) ORDER BY created_at DESC", query)
		assert.Equal(t, []any{a.String(), b.String()}, args)
	})

	t.Run("keeps a pinned id the caller owns", func(t *testing.T) {
		f := NewFilter().With("vendor_id", b).WithAnyOf("vendor_id", []uuid.UUID{a, b})

		v, _ := f.Value("vendor_id")
		assert.Equal(t, b.String(), v)
	})

	t.Run("pinned foreign id matches nothing", func(t *testing.T) {
		f := NewFilter().With("vendor_id", uuid.New()).WithAnyOf("vendor_id", []uuid.UUID{a})

		query, args, err := selectList("bookings", []string{"id"}, f)

		require.NoError(t, err)
		assert.Equal(t, "SELECT id FROM bookings WHERE (1=0) ORDER BY created_at DESC", query)
		assert.Empty(t, args)
	})
}

func TestSelectList(t *testing.T) {
	f := NewFilter().With("status", "pending").With("vendor_id", "abc")
	f.Limit = 10
	f.Offset = 20

	query, args, err := selectList("bookings", []string{"id", "status"}, f)

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, status FROM bookings WHERE status = $1 AND vendor_id = $2 ORDER BY created_at DESC LIMIT 10 OFFSET 20",
		query)
	assert.Equal(t, []any{"pending", "abc"}, args)
}

func TestSelectList_NoFilter(t *testing.T) {
	query, args, err := selectList("reviews", []string{"id"}, NewFilter())

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM reviews ORDER BY created_at DESC", query)
	assert.Empty(t, args)
}
