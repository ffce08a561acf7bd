package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes a requested direction to ASC or DESC.
// Anything other than asc is treated as DESC so newest rows come first.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}
