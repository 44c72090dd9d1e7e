// pricing/coerce.go
package pricing

import (
	"strconv"
	"strings"
)

// The form accepts free text in every numeric field. These helpers are the
// single place that turns that text into numbers: they never fail, they
// default instead (price/fee -> 0, quantity -> 1, margin -> 0), and they
// clamp to the model constraints (amounts and margins non-negative,
// quantity at least 1).

// ParseAmount parses a dollar amount. A leading "$" and thousands commas are
// tolerated. Unparsable or negative input yields 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParseQuantity parses a whole-number quantity. Unparsable input or anything
// below 1 yields 1.
func ParseQuantity(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 {
		return 1
	}
	return v
}

// ParsePercent parses a percentage. Unparsable or negative input yields 0.
func ParsePercent(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
