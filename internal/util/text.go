package util

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reSpaces     = regexp.MustCompile(`\s+`)
	reNonNumeric = regexp.MustCompile(`[^0-9.\-]`)
)

// CollapseSpaces trims the string and squeezes internal whitespace runs
// down to single spaces.
func CollapseSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// StripNonNumeric keeps only digits, dots and minus signs.
func StripNonNumeric(input string) string {
	return reNonNumeric.ReplaceAllString(input, "")
}

// ParseAmount extracts a decimal value from a currency-ish cell.
// Malformed or empty input parses as zero.
func ParseAmount(input string) float64 {
	stripped := StripNonNumeric(input)
	if stripped == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
