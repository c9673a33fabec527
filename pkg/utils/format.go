package utils

import (
	"fmt"
	"strconv"
	"time"
)

// FormatNumber renders n with comma thousand separators: 10000 -> "10,000".
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}

	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// RelativeTime renders t relative to now the way listings show it:
// "n초 전", "n분 전", "n시간 전", "n일 전" up to three days, then the date.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%d초 전", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%d분 전", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d시간 전", int(diff.Hours()))
	}

	days := int(diff.Hours() / 24)
	if days <= 3 {
		return fmt.Sprintf("%d일 전", days)
	}
	return t.Format("2006년 01월 02일")
}
