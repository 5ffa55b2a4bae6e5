package cli

import (
	"fmt"
	"strings"
	"time"
)

// FormatCost renders a dollar amount. Small per-query amounts keep six
// decimal places so micro-costs don't collapse to $0.00.
func FormatCost(cost float64) string {
	if cost == 0 {
		return "$0.00"
	}
	if cost < 0.01 {
		return fmt.Sprintf("$%.6f", cost)
	}
	if cost < 100 {
		return fmt.Sprintf("$%.2f", cost)
	}
	return "$" + FormatNumber(int64(cost+0.5))
}

// FormatTokens renders a token count compactly: 999, 45.2K, 1.3M.
func FormatTokens(n int64) string {
	switch {
	case n < 1_000:
		return fmt.Sprintf("%d", n)
	case n < 1_000_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	}
}

// FormatNumber adds comma grouping to an integer.
func FormatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatDuration renders a latency in a human unit.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
}

// FormatAvg renders a fractional token average with two decimals.
func FormatAvg(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
