package repository

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ColumnKind tells ParseFilter how to convert a query string value.
type ColumnKind int

const (
	KindString ColumnKind = iota
	KindUUID
	KindBool
	KindInt
	KindFloat
)

// Columns whitelists the columns a list endpoint may filter on.
type Columns map[string]ColumnKind

var (
	UserColumns = Columns{
		"id": KindUUID, "name": KindString, "email": KindString, "phone": KindString,
		"role": KindString, "status": KindString,
	}
	VendorColumns = Columns{
		"id": KindUUID, "user_id": KindUUID, "business_name": KindString,
		"city": KindString, "state": KindString, "country": KindString,
	}
	PackageColumns = Columns{
		"id": KindUUID, "vendor_id": KindUUID, "name": KindString, "price": KindFloat,
		"duration_minutes": KindInt,
	}
	ServiceColumns = Columns{
		"id": KindUUID, "vendor_id": KindUUID, "title": KindString,
		"hourly_rate": KindFloat, "min_hours": KindInt,
	}
	MediaColumns = Columns{
		"id": KindUUID, "vendor_id": KindUUID, "type": KindString,
	}
	AvailabilityColumns = Columns{
		"id": KindUUID, "vendor_id": KindUUID, "is_blocked": KindBool,
	}
	BookingColumns = Columns{
		"id": KindUUID, "customer_id": KindUUID, "vendor_id": KindUUID,
		"service_id": KindUUID, "status": KindString, "payment_id": KindUUID,
		"hours": KindInt, "hourly_rate": KindFloat, "total_amount": KindFloat,
	}
	PaymentColumns = Columns{
		"id": KindUUID, "booking_id": KindUUID, "currency": KindString,
		"provider": KindString, "provider_charge_id": KindString, "status": KindString,
	}
	PayoutColumns = Columns{
		"id": KindUUID, "vendor_id": KindUUID, "provider_payout_id": KindString,
		"status": KindString,
	}
	ReviewColumns = Columns{
		"id": KindUUID, "booking_id": KindUUID, "customer_id": KindUUID,
		"vendor_id": KindUUID, "rating": KindInt,
	}
	NotificationColumns = Columns{
		"id": KindUUID, "user_id": KindUUID, "type": KindString, "read": KindBool,
	}
	AuditLogColumns = Columns{
		"id": KindUUID, "admin_id": KindUUID, "action": KindString, "ip": KindString,
	}
)

// Pagination keys are consumed by ParseFilter and never treated as columns.
const (
	pageKey    = "page"
	perPageKey = "per_page"
	maxPerPage = 100
)

// Filter is an exact-match predicate set plus optional paging.
type Filter struct {
	Eq     squirrel.Eq
	Limit  uint64
	Offset uint64
}

// FilterError reports query keys or values that cannot become a Filter.
type FilterError struct {
	Fields map[string]string
}

func (e *FilterError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid filter: " + strings.Join(parts, "; ")
}

// NewFilter returns an empty filter.
func NewFilter() Filter {
	return Filter{Eq: squirrel.Eq{}}
}

// With returns a copy of f with column pinned to value. Used by use cases to
// scope a list to the caller.
func (f Filter) With(column string, value any) Filter {
	eq := make(squirrel.Eq, len(f.Eq)+1)
	for k, v := range f.Eq {
		eq[k] = v
	}
	if id, ok := value.(uuid.UUID); ok {
		value = id.String()
	}
	eq[column] = value
	f.Eq = eq
	return f
}

// WithAnyOf narrows column to ids. A value the caller already pinned for
// column survives only if it is one of ids; otherwise nothing matches.
func (f Filter) WithAnyOf(column string, ids []uuid.UUID) Filter {
	allowed := make([]string, 0, len(ids))
	for _, id := range ids {
		allowed = append(allowed, id.String())
	}
	if pinned, ok := f.Eq[column]; ok {
		if slices.Contains(allowed, fmt.Sprint(pinned)) {
			return f
		}
		allowed = []string{}
	}
	return f.With(column, allowed)
}

// Value returns the pinned value for column, if any.
func (f Filter) Value(column string) (any, bool) {
	v, ok := f.Eq[column]
	return v, ok
}

// ParseFilter converts query parameters into a typed exact-match filter.
// Unknown columns and unparsable values are rejected.
func ParseFilter(cols Columns, values url.Values) (Filter, error) {
	f := NewFilter()
	bad := map[string]string{}

	page, perPage := 0, 0
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		raw := vals[len(vals)-1]

		switch key {
		case pageKey:
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				bad[key] = "must be a positive integer"
				continue
			}
			page = n
			continue
		case perPageKey:
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > maxPerPage {
				bad[key] = fmt.Sprintf("must be between 1 and %d", maxPerPage)
				continue
			}
			perPage = n
			continue
		}

		kind, ok := cols[key]
		if !ok {
			bad[key] = "unknown filter field"
			continue
		}

		v, err := convert(kind, raw)
		if err != nil {
			bad[key] = err.Error()
			continue
		}
		f.Eq[key] = v
	}

	if len(bad) > 0 {
		return Filter{}, &FilterError{Fields: bad}
	}

	if perPage > 0 {
		f.Limit = uint64(perPage)
		if page > 1 {
			f.Offset = uint64((page - 1) * perPage)
		}
	}

	return f, nil
}

func convert(kind ColumnKind, raw string) (any, error) {
	switch kind {
	case KindUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("must be a valid UUID")
		}
		return id.String(), nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("must be true or false")
		}
		return b, nil
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("must be an integer")
		}
		return n, nil
	case KindFloat:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("must be a number")
		}
		return n, nil
	default:
		return raw, nil
	}
}

// selectList renders a filtered SELECT ordered by newest first.
func selectList(table string, columns []string, f Filter) (string, []any, error) {
	b := psql.Select(columns...).From(table)
	if len(f.Eq) > 0 {
		b = b.Where(f.Eq)
	}
	b = b.OrderBy("created_at DESC")
	if f.Limit > 0 {
		b = b.Limit(f.Limit)
	}
	if f.Offset > 0 {
		b = b.Offset(f.Offset)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: select %s: %v", ErrBuildQuery, table, err)
	}
	return query, args, nil
}
