package store

// TotalPages returns ceil(total / size). Zero when nothing matched.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// VisibleRange returns the 1-based ordinals of the first and last row shown on
// the given page, or (0, 0) when the result set is empty.
func VisibleRange(page, size, total int) (first, last int) {
	if total <= 0 || size <= 0 || page < 0 {
		return 0, 0
	}
	first = page*size + 1
	if first > total {
		return 0, 0
	}
	last = (page + 1) * size
	if last > total {
		last = total
	}
	return first, last
}
