package dash

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// formatCurrency renders a compact rupee amount the way Indian sellers read
// them: lakhs (1,00,000) and crores (1,00,00,000) abbreviate to L and Cr.
func formatCurrency(v decimal.Decimal) string {
	f := v.InexactFloat64()
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	switch {
	case f >= 1e7:
		return fmt.Sprintf("%s₹%.2fCr", sign, f/1e7)
	case f >= 1e5:
		return fmt.Sprintf("%s₹%.2fL", sign, f/1e5)
	default:
		return sign + "₹" + groupIndian(fmt.Sprintf("%.0f", f))
	}
}

// groupIndian inserts commas in the Indian style: last three digits, then
// pairs ("1234567" -> "12,34,567").
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// formatAmount renders an exact two-decimal rupee amount.
func formatAmount(v decimal.Decimal) string {
	return "₹" + v.StringFixed(2)
}

// formatPercent renders a ratio already scaled to percentage points.
func formatPercent(v decimal.Decimal) string {
	return v.StringFixed(2) + "%"
}

// topN flattens a count map into its N largest buckets. Ties break on name
// so repeated runs produce identical output.
func topN(counts map[string]int, n int) []NameValue {
	out := make([]NameValue, 0, len(counts))
	for name, value := range counts {
		out = append(out, NameValue{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
