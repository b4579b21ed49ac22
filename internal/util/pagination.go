package util

import "fmt"

const DefaultPageSize = 10

func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = DefaultPageSize
	}
	from = (page - 1) * size
	return from, size
}

// RangeLabel renders the "Showing 21-40 of 45" caption for a page window.
// Start and end are 1-based and clamped to the total.
func RangeLabel(page, size, total int) string {
	if total <= 0 {
		return "Showing 0-0 of 0"
	}
	from, limit := Calculate(page, size)
	start := from + 1
	end := from + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return fmt.Sprintf("Showing %d-%d of %d", start, end, total)
}
