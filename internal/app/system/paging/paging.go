// internal/app/system/paging/paging.go

// Package paging provides 1-based page windowing for already-resolved
// member lists. Windows are computed strictly after sorting; a window
// beyond the available data is empty, not an error.
package paging

// Window returns the 1-based page of the given size. page and size
// must be positive; anything else yields the full slice untouched,
// matching the "nil disables pagination" contract enforced upstream.
func Window[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return items
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
