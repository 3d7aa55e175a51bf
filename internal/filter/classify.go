package filter

import (
	"strings"

	"discoprowl/internal/indexer"
)

// IsGame reports whether any category name mentions "pc" or "games".
// Matching is by substring, so a name like "Specials" also counts.
func IsGame(hit indexer.Hit) bool {
	for _, cat := range hit.Categories {
		name := strings.ToLower(cat.Name)
		if strings.Contains(name, "pc") || strings.Contains(name, "games") {
			return true
		}
	}
	return false
}
