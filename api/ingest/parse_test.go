package ingest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"123.45", 123.45},
		{" 1,234.50 ", 1234.50},
		{"₹450.00", 450},
		{"(250.75)", -250.75},
		{"-12", -12},
		{"", 0},
		{"abc", 0},
		{"N/A", 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseNumber(c.in), "input %q", c.in)
	}
}

func TestParseDecimal(t *testing.T) {
	assert.True(t, ParseDecimal("(99.99)").Equal(decimal.NewFromFloat(-99.99)))
	assert.True(t, ParseDecimal("garbage").Equal(decimal.Zero))
	assert.True(t, ParseDecimal("₹1,500").Equal(decimal.NewFromInt(1500)))
}

func TestParseDateSerial(t *testing.T) {
	// 45292 is 2024-01-01 in spreadsheet serial days.
	got := ParseDate("45292")
	require.NotNil(t, got)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, time.UTC, got.Location())
}

func TestParseDateSerialBelowEpochIsNil(t *testing.T) {
	// Small numbers are counts or codes, not dates.
	assert.Nil(t, ParseDate("42"))
	assert.Nil(t, ParseDate("25569"))
}

func TestParseDateLayouts(t *testing.T) {
	for _, in := range []string{"2024-03-15", "15-03-2024", "15/03/2024"} {
		got := ParseDate(in)
		require.NotNil(t, got, "input %q", in)
		assert.Equal(t, 2024, got.Year())
		assert.Equal(t, time.March, got.Month())
		assert.Equal(t, 15, got.Day())
	}
}

func TestParseDateInvalid(t *testing.T) {
	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("not a date"))
}
