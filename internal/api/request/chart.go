package request

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultChartLimit is the number of sales shown on the profit chart.
const DefaultChartLimit = 10

// MaxChartLimit caps the limit query parameter.
const MaxChartLimit = 500

// ParseChartLimit extracts and validates the limit query parameter of the
// profit chart. An empty value yields DefaultChartLimit.
func ParseChartLimit(limitParam string) (int, error) {
	limitParam = strings.TrimSpace(limitParam)
	if limitParam == "" {
		return DefaultChartLimit, nil
	}

	limit, err := strconv.Atoi(limitParam)
	if err != nil {
		return 0, fmt.Errorf("invalid limit: must be a number")
	}
	if limit < 1 || limit > MaxChartLimit {
		return 0, fmt.Errorf("invalid limit: must be between 1 and %d", MaxChartLimit)
	}
	return limit, nil
}
