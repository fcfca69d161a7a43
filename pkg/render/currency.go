package render

import (
	"strconv"
	"strings"
)

// FormatCurrency renders a COP amount the way statements show it: decimals
// truncated, thousands separated with dots. 1500000 becomes "1.500.000".
func FormatCurrency(val float64) string {
	digits := strconv.FormatInt(int64(val), 10)

	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// ToFloat coerces the loosely typed amount values found in recipient custom
// data. Strings may carry thousands commas; anything unparseable is zero.
func ToFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(n, ",", ""), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
