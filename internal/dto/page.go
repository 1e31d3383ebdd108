package dto

// Page one page of a paginated listing
type Page[T any] struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  []T   `json:"results"`
}

// PageBounds clamps page and size and returns the row offset. size falls
// back to def and is capped at max.
func PageBounds(page, size, def, max int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = def
	}
	if max > 0 && size > max {
		size = max
	}
	return page, size, (page - 1) * size
}
