package dash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrencyIndianUnits(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{1234, "₹1,234"},
		{123456, "₹1.23L"},
		{12345678, "₹1.23Cr"},
		{-123456, "-₹1.23L"},
		{1234567, "₹12.35L"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, formatCurrency(dec(c.in)), "input %v", c.in)
	}
}

func TestGroupIndianCommas(t *testing.T) {
	assert.Equal(t, "₹99,999", formatCurrency(dec(99999)))
	assert.Equal(t, "₹12,345", formatCurrency(dec(12345)))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.50%", formatPercent(dec(12.5)))
	assert.Equal(t, "0.00%", formatPercent(dec(0)))
}

func TestTopNOrderingAndCap(t *testing.T) {
	counts := map[string]int{"a": 3, "b": 5, "c": 3, "d": 1}
	got := topN(counts, 3)

	assert.Equal(t, []NameValue{{"b", 5}, {"a", 3}, {"c", 3}}, got)
}

func TestCalculateTrend(t *testing.T) {
	cases := []struct {
		current, previous float64
		change            int
		direction         string
	}{
		{120, 100, 20, "up"},
		{80, 100, 20, "down"},
		{100, 100, 0, "neutral"},
		{50, 0, 100, "up"},
		{0, 0, 0, "neutral"},
		{-50, 0, 0, "neutral"},
	}
	for _, c := range cases {
		got := CalculateTrend(c.current, c.previous)
		assert.Equal(t, c.change, got.Change, "current %v previous %v", c.current, c.previous)
		assert.Equal(t, c.direction, got.Direction, "current %v previous %v", c.current, c.previous)
	}
}
