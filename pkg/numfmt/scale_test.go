package numfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectTier(t *testing.T) {
	testCases := []struct {
		name             string
		value            float64
		multiplierFactor float64
		expected         ScaleTier
	}{
		{"below_kilo", 999, 1, TierNone},
		{"kilo_boundary", 1000, 1, TierKilo},
		{"mega", 2.5e6, 1, TierMega},
		{"giga", 7e9, 1, TierGiga},
		{"tera", 1e12, 1, TierTera},
		{"beyond_tera", 5e15, 1, TierTera},
		{"kilotonnes_to_mega", 1943.442, 1000, TierMega},
		{"kilotonnes_to_kilo", 1.5, 1000, TierKilo},
		{"negative", -5e6, 1, TierNone},
		{"zero_factor", 5e6, 0, TierNone},
		{"nan", math.NaN(), 1, TierNone},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SelectTier(tc.value, tc.multiplierFactor))
		})
	}
}

func TestFormatWithMetricSuffix(t *testing.T) {
	testCases := []struct {
		name             string
		input            Input
		multiplierFactor float64
		opts             []Option
		expected         string
	}{
		{"kilo", Number(1500), 1, []Option{WithUnits("t")}, "1.5 kt"},
		{"mega", Number(2500000), 1, []Option{WithUnits("t")}, "2.5 Mt"},
		{"multiplier_factor", Number(1943.442), 1000, []Option{WithUnits("t")}, "1.94 Mt"},
		{"one_decimal", Number(1943.442), 1000, []Option{WithUnits("t"), WithMaxDecimalPlaces(1)}, "1.9 Mt"},
		{"giga", Number(3.2e9), 1, []Option{WithUnits("W")}, "3.2 GW"},
		{"tera_without_units", Number(4e12), 1, nil, "4 T"},
		{"below_kilo_falls_through", Number(999), 1, []Option{WithUnits("t")}, "999 t"},
		{"below_kilo_without_units", Number(12.346), 1, nil, "12.35"},
		{"kilo_tie_rounds_up", Number(2500), 1, []Option{WithUnits("t"), WithMaxDecimalPlaces(0)}, "3 kt"},
		{"negative_falls_through", Number(-2500), 1, []Option{WithUnits("t")}, "-2500 t"},
		{"spanish", Number(1500), 1, []Option{WithLocale("es")}, "1,5 k"},
		{"spanish_text", Text("1943,442"), 1000, []Option{WithUnits("t"), WithLocale("es")}, "1,94 Mt"},
		{"zero_factor", Number(1500), 0, nil, "?"},
		{"negative_factor", Number(1500), -1, nil, "?"},
		{"infinite_factor", Number(1500), math.Inf(1), nil, "?"},
		{"unparsable", Text("lots"), 1, []Option{WithErrorRepresentation("n/a")}, "n/a"},
		{"nan", Number(math.NaN()), 1, nil, "?"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatWithMetricSuffix(tc.input, tc.multiplierFactor, tc.opts...))
		})
	}
}

func TestTryFormatWithMetricSuffix(t *testing.T) {
	f := NewFormatter()
	_, err := f.TryFormatWithMetricSuffix(Number(1), 0)
	assert.ErrorIs(t, err, ErrFormattingFailure)

	s, err := f.TryFormatWithMetricSuffix(Number(1e6), 1, WithUnits("t"))
	assert.NoError(t, err)
	assert.Equal(t, "1 Mt", s)
}

func TestShortScale(t *testing.T) {
	testCases := []struct {
		name           string
		input          Input
		expectedValue  float64
		expectedSuffix string
		expectedOK     bool
	}{
		{"millions", Number(1234567), 1.234567, "M", true},
		{"millions_text", Text("1234567"), 1.234567, "M", true},
		{"thousands_text", Text("999999"), 999.999, "K", true},
		{"thousands", Number(123412), 123.412, "K", true},
		{"exactly_thousand", Number(1000), 0, "", false},
		{"small", Number(999), 0, "", false},
		{"fraction", Number(1234.5), 0, "", false},
		{"fraction_text", Text("1234.5"), 0, "", false},
		{"negative", Number(-5000), 0, "", false},
		{"unparsable", Text("foo"), 0, "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, suffix, ok := ShortScale(tc.input)
			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedSuffix, suffix)
			assert.InDelta(t, tc.expectedValue, v, 1e-9)
		})
	}
}

func TestShortScaleString(t *testing.T) {
	assert.Equal(t, "1.23 M", ShortScaleString(Number(1234567)))
	assert.Equal(t, "123,4 K", ShortScaleString(Number(123412), WithLocale("es"), WithMaxDecimalPlaces(1)))
	assert.Equal(t, "?", ShortScaleString(Text("foo")))
}
