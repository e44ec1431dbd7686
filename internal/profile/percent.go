package profile

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePercent converts a percentage string of the form "N%" into a float in
// [0, 100]. An absent or malformed percentage is an error for that item.
func ParsePercent(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("percentage is missing")
	}

	trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "%"))
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("percentage %q is not numeric: %w", s, err)
	}
	if value < 0 || value > 100 {
		return 0, fmt.Errorf("percentage %q is outside 0-100", s)
	}
	return value, nil
}
