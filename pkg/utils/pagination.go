package utils

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxWindowCount bounds every start/count listing.
const MaxWindowCount = 50

var ErrInvalidWindow = errors.New("invalid window")

// ValidateWindow checks start >= 0 and 1 <= count <= MaxWindowCount.
func ValidateWindow(start, count int) error {
	if count > MaxWindowCount || count < 1 {
		return fmt.Errorf("%w: count %d (max: %d, min: 1)", ErrInvalidWindow, count, MaxWindowCount)
	}
	if start < 0 {
		return fmt.Errorf("%w: start %d (min: 0)", ErrInvalidWindow, start)
	}
	return nil
}

// ParseInt converts a query value, falling back to defaultValue when empty.
// The second return is false when the value is present but not an integer.
func ParseInt(value string, defaultValue int) (int, bool) {
	if value == "" {
		return defaultValue, true
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, false
	}

	return result, true
}
