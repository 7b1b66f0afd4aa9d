package numfmt

import (
	"math"
	"strconv"
)

// ShortScale reduces a non-negative whole number to thousands ("K") or millions ("M") for
// compact table cells. Values up to 1000 and anything that is not a whole number report ok=false.
func ShortScale(in Input) (value float64, suffix string, ok bool) {
	n, ok := wholeNumber(in)
	if !ok {
		return 0, "", false
	}
	switch {
	case n > 1e6:
		return n / 1e6, "M", true
	case n > 1e3:
		return n / 1e3, "K", true
	}
	return 0, "", false
}

// ShortScaleString renders ShortScale with the package defaults, or the error representation.
func ShortScaleString(in Input, opts ...Option) string {
	o := std.defaults.apply(opts)
	v, suffix, ok := ShortScale(in)
	if !ok {
		return o.ErrorRepresentation
	}
	return std.Format(Number(v), append(opts[:len(opts):len(opts)], WithUnits(suffix))...)
}

func wholeNumber(in Input) (float64, bool) {
	if in.IsText() {
		for _, r := range in.text {
			if r < '0' || r > '9' {
				return 0, false
			}
		}
		n, err := strconv.ParseFloat(in.text, 64)
		return n, err == nil
	}
	n := in.num
	if n < 0 || math.IsInf(n, 0) || math.IsNaN(n) || n != math.Trunc(n) {
		return 0, false
	}
	return n, true
}
