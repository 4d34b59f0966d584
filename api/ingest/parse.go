package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"SellerPulse/api/constants"
	"SellerPulse/internal/config"
)

// Scalar parsers for raw spreadsheet cells. Marketplace exports are dirty:
// currency symbols, thousands separators, accounting-style negatives and date
// serials all appear in the same columns, so every parser degrades to a zero
// value instead of failing the row.

// ParseString trims the cell; blank cells become "".
func ParseString(raw string) string {
	return strings.TrimSpace(raw)
}

// sanitizeNumeric normalizes a raw cell into something strconv can parse.
// "(1,200.00)" becomes "-1200.00", "₹1,234.50" becomes "1234.50".
func sanitizeNumeric(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseNumber converts a cell into a float64, or 0 when nothing parses.
func ParseNumber(raw string) float64 {
	s := sanitizeNumeric(raw)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// ParseDecimal converts a monetary cell into a decimal, or zero when nothing
// parses. Same sanitation rules as ParseNumber.
func ParseDecimal(raw string) decimal.Decimal {
	s := sanitizeNumeric(raw)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

var dateLayouts = []string{
	time.RFC3339,
	constants.DateTimeFormat,
	constants.DateFormat,
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"02-Jan-2006",
	"2 Jan 2006",
}

// ParseDate converts a cell into a UTC timestamp. The same column may carry a
// formatted date string or a raw Excel serial depending on export settings, so
// both paths are tried. Serials are anchored to UTC so the calendar day the
// seller saw in the sheet survives regardless of the host timezone. Returns
// nil when nothing parses.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial > config.ExcelEpochDays {
			secs := math.Round((serial - config.ExcelEpochDays) * 86400)
			t := time.Unix(int64(secs), 0).UTC()
			return &t
		}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
