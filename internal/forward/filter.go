package forward

import (
	"strings"

	"github.com/openwave/chatcast-backend/internal/model"
)

// ShouldForward decides whether a message body passes a route's filters.
// Pure function, no side effects.
//
// Drop rules, in order: empty body; body contains "http" while links are
// excluded; keywords configured but none match (case-insensitive substring).
// Anything else forwards.
func ShouldForward(text string, f model.RouteFilters) bool {
	if text == "" {
		return false
	}

	if !f.IncludeLinks && strings.Contains(text, "http") {
		return false
	}

	if len(f.Keywords) > 0 {
		lower := strings.ToLower(text)
		for _, keyword := range f.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return true
			}
		}
		return false
	}

	return true
}
