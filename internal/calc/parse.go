package calc

import (
	"strconv"
	"strings"
)

// ParseNumber converts user text into a number the way a browser number
// field does: the longest leading decimal literal is used and anything else
// is ignored ("12abc" is 12). Text with no numeric prefix, and values that
// overflow to infinity, become 0.
func ParseNumber(raw string) float64 {
	prefix := numericPrefix(strings.TrimSpace(raw))
	if prefix == "" {
		return 0
	}

	// on ErrRange ParseFloat still returns ±Inf or a denormal-rounded 0
	v, _ := strconv.ParseFloat(prefix, 64)
	return Finite(v)
}

// numericPrefix returns the longest prefix of s shaped like
// [+-]digits[.digits][(e|E)[+-]digits]
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	intDigits := scanDigits(s, i)
	i += intDigits

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = scanDigits(s, i+1)
		if intDigits > 0 || fracDigits > 0 {
			i += 1 + fracDigits
		}
	}

	if intDigits == 0 && fracDigits == 0 {
		return ""
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if n := scanDigits(s, j); n > 0 {
			i = j + n
		}
	}

	return strings.TrimSuffix(s[:i], ".")
}

func scanDigits(s string, from int) int {
	n := 0
	for from+n < len(s) && s[from+n] >= '0' && s[from+n] <= '9' {
		n++
	}
	return n
}
