package dto

// Page is the canonical list shape inside this client. The backend answers
// some list endpoints with a bare array and others with a pagination
// envelope; the REST client normalizes both into this immediately on
// receipt, so nothing above it ever branches on response shape.
type Page[T any] struct {
	Items   []T
	Total   int
	HasMore bool
}

// ListEnvelope is the paginated wire shape ({items, page, limit, total,
// has_more}). Only the REST client decodes it.
type ListEnvelope[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}
