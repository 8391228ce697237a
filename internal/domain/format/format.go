// Package format holds small presentation helpers shared by API responses.
package format

import (
	"fmt"
	"time"
)

// LikesLabel renders "1 like" vs "2 likes". Negative counts clamp to zero.
func LikesLabel(n int) string {
	if n < 0 {
		n = 0
	}
	if n == 1 {
		return "1 like"
	}
	return fmt.Sprintf("%d likes", n)
}

// Truncate cuts text to at most max characters, appending an ellipsis when
// something was removed. Operates on runes so multi-byte text is not split.
func Truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// MDY renders t as M/D/YYYY in UTC, matching the feed's date labels.
func MDY(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%d/%d/%d", int(u.Month()), u.Day(), u.Year())
}
