package observability

import (
	"strings"
	"unicode"
)

// Length caps for request values copied into log fields.
const (
	maxMethodLen = 10
	maxPathLen   = 180
	maxIPLen     = 64
)

// scrub removes control characters from a request value and caps it at limit runes so a
// client cannot forge or flood log lines.
func scrub(value string, limit int) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
	if runes := []rune(cleaned); len(runes) > limit {
		return string(runes[:limit])
	}
	return cleaned
}
