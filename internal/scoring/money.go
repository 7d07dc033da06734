package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

// amountPattern finds Brazilian-locale monetary tokens, with or without the
// R$ prefix. Group 1 holds the numeric part.
var amountPattern = regexp.MustCompile(`(?i)(?:r\$\s*)?([\d.]+(?:\.\d{3})*(?:,\d{2})?)`)

// NormalizeAmount rewrites a BR-locale amount into a plain decimal literal.
// With a comma, periods are thousands separators and the comma is the decimal
// point. Without one, every period is treated as a thousands separator.
func NormalizeAmount(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "R$"), "r$")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	}
	return strings.ReplaceAll(s, ".", "")
}

// ParseAmount converts a BR-locale amount to a float. Malformed tokens report
// false and a zero value.
func ParseAmount(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(NormalizeAmount(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractAmounts returns every parseable amount found in text, in order.
func ExtractAmounts(text string) []float64 {
	var out []float64
	for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
		if v, ok := ParseAmount(m[1]); ok {
			out = append(out, v)
		}
	}
	return out
}

// HasAmountAtLeast reports whether any amount in text reaches threshold.
func HasAmountAtLeast(text string, threshold float64) bool {
	for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
		if v, ok := ParseAmount(m[1]); ok && v >= threshold {
			return true
		}
	}
	return false
}

// FormatAmount renders v with BR thousands separators, dropping the cents
// when they are zero: 2500000 -> "2.500.000", 1234.5 -> "1.234,50".
func FormatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	cents := int64(v*100 + 0.5)
	whole, frac := cents/100, cents%100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if frac != 0 {
		b.WriteByte(',')
		if frac < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.FormatInt(frac, 10))
	}
	return b.String()
}
