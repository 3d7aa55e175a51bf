package filter

import "discoprowl/internal/indexer"

// Select returns the first limit hits in their original order. The result never
// aliases the caller's slice.
func Select(hits []indexer.Hit, limit int) []indexer.Hit {
	if limit <= 0 || len(hits) == 0 {
		return []indexer.Hit{}
	}
	n := min(limit, len(hits))
	out := make([]indexer.Hit, n)
	copy(out, hits[:n])
	return out
}
