package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naayikhata/khata-go/pkg/money"
)

func TestFormatPaise_WholeRupees(t *testing.T) {
	assert.Equal(t, "₹150", money.FormatPaise(15000))
	assert.Equal(t, "₹0", money.FormatPaise(0))
}

// Indian digit grouping: lakhs and crores, not thousands.
func TestFormatPaise_IndianGrouping(t *testing.T) {
	assert.Equal(t, "₹1,23,456", money.FormatPaise(12345600))
	assert.Equal(t, "₹12,500", money.FormatPaise(1250000))
}

// The glyph-free variant shares the en-IN printer, so grouping and
// rounding stay identical to FormatPaise.
func TestFormatPaiseRs(t *testing.T) {
	assert.Equal(t, "Rs. 1,23,456", money.FormatPaiseRs(12345600))
	assert.Equal(t, "Rs. 150", money.FormatPaiseRs(15000))
	assert.Equal(t, "Rs. 1", money.FormatPaiseRs(50), "rounds like FormatPaise")
}

func TestFormatPaise_RoundsToNearestRupee(t *testing.T) {
	assert.Equal(t, "₹0", money.FormatPaise(49), "49p rounds down")
	assert.Equal(t, "₹1", money.FormatPaise(50), "50p ties away from zero")
	assert.Equal(t, "₹1", money.FormatPaise(149), "149p rounds down")
	assert.Equal(t, "₹2", money.FormatPaise(151))
}

func TestRupeesToPaise(t *testing.T) {
	assert.Equal(t, int64(15000), money.RupeesToPaise(150))
	assert.Equal(t, int64(14950), money.RupeesToPaise(149.50))
	assert.Equal(t, int64(10), money.RupeesToPaise(0.1), "0.1 must not drop to 9 via float truncation")
}

// Whole-rupee amounts round-trip exactly through the display conversion.
func TestRoundTrip_WholeRupeeMultiples(t *testing.T) {
	for _, p := range []int64{0, 100, 15000, 999900, 12345600} {
		rupees := money.RoundToRupees(p)
		assert.Equal(t, p, money.RupeesToPaise(float64(rupees)), "paise=%d", p)
	}
}

func TestParseRupees(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"150", 15000},
		{"149.50", 14950},
		{"₹1,499", 149900},
		{"0", 0},
		{" 99 ", 9900},
	}
	for _, tc := range cases {
		got, err := money.ParseRupees(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseRupees_Rejects(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "12.3.4"} {
		_, err := money.ParseRupees(in)
		assert.Error(t, err, "input %q must be rejected", in)
	}
}
