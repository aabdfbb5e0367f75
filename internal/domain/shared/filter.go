package shared

// ListFilter represents query options for list operations.
// Listings are capped by a fixed result ceiling rather than cursor pagination.
type ListFilter struct {
	Search string
	Limit  int
}

// WithCeiling returns the filter with the limit clamped to the given ceiling.
// A non-positive limit takes the ceiling as-is.
func (f ListFilter) WithCeiling(ceiling int) ListFilter {
	if f.Limit <= 0 || f.Limit > ceiling {
		f.Limit = ceiling
	}
	return f
}
