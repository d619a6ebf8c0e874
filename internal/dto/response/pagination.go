package response

// ListResponse wraps one page of results. Page and PerPage echo the request
// and are zero when the caller asked for everything.
type ListResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Page    int `json:"page,omitempty"`
	PerPage int `json:"per_page,omitempty"`
	Count   int `json:"count"`
}

func NewListResponse[T any](data []T, limit, offset uint64) *ListResponse[T] {
	meta := PaginationMeta{Count: len(data)}
	if limit > 0 {
		meta.PerPage = int(limit)
		meta.Page = int(offset/limit) + 1
	}

	return &ListResponse[T]{
		Data:       data,
		Pagination: meta,
	}
}

// MapList converts entities with fn, keeping an empty slice instead of nil.
func MapList[E any, T any](items []*E, fn func(*E) T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
