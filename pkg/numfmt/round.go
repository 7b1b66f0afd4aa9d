package numfmt

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// fixed rounds v half away from zero to places digits. Rounding works on the exact value of
// the float64, so 2.5 gives "3" while 1.005 (stored as 1.00499...) gives "1.00".
func fixed(v float64, places int) string {
	return exactDecimal(v).StringFixed(int32(places))
}

// exactDecimal expands v = m * 2^e into m * 5^-e * 10^e without losing digits.
func exactDecimal(v float64) decimal.Decimal {
	frac, exp := math.Frexp(v)
	m := big.NewInt(int64(frac * (1 << 53)))
	e := exp - 53
	if e >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(e)), 0)
	}
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-e)), nil)
	return decimal.NewFromBigInt(five.Mul(five, m), int32(e))
}
