package models

const (
	// DefaultLimit is the page size used when a Query does not set one.
	DefaultLimit = 100

	// DefaultOffset is the offset used when a Query does not set one.
	DefaultOffset = 0
)

// Query filters a document listing. Filters are matched by the backend as
// exact string values.
type Query struct {
	Filters map[string]string
	Limit   *int
	Offset  *int
}

// LimitOrDefault returns the page size, falling back to DefaultLimit.
func (q *Query) LimitOrDefault() int {
	if q == nil || q.Limit == nil {
		return DefaultLimit
	}
	return *q.Limit
}

// OffsetOrDefault returns the offset, falling back to DefaultOffset.
func (q *Query) OffsetOrDefault() int {
	if q == nil || q.Offset == nil {
		return DefaultOffset
	}
	return *q.Offset
}
