package numfmt

import "math"

// ScaleTier is an order-of-magnitude prefix applied to large values.
type ScaleTier struct {
	Name       string
	Multiplier float64
	Prefix     string
}

var (
	TierNone = ScaleTier{Name: "none", Multiplier: 1, Prefix: ""}
	TierKilo = ScaleTier{Name: "kilo", Multiplier: 1e3, Prefix: "k"}
	TierMega = ScaleTier{Name: "mega", Multiplier: 1e6, Prefix: "M"}
	TierGiga = ScaleTier{Name: "giga", Multiplier: 1e9, Prefix: "G"}
	TierTera = ScaleTier{Name: "tera", Multiplier: 1e12, Prefix: "T"}
)

// checked in descending magnitude, first match wins
var scaleTiers = []ScaleTier{TierTera, TierGiga, TierMega, TierKilo}

// Threshold is the smallest value, expressed in units scaled by multiplierFactor, that selects the tier.
func (t ScaleTier) Threshold(multiplierFactor float64) float64 {
	return t.Multiplier / multiplierFactor
}

// SelectTier picks the largest tier whose threshold value reaches.
// multiplierFactor describes the unit the value is already expressed in: 1000 for a value in kilotonnes
// that should be displayed in tonnes-based prefixes. Values below the kilo threshold get TierNone.
func SelectTier(value, multiplierFactor float64) ScaleTier {
	if !validMultiplier(multiplierFactor) || math.IsNaN(value) {
		return TierNone
	}
	for _, tier := range scaleTiers {
		if value >= tier.Threshold(multiplierFactor) {
			return tier
		}
	}
	return TierNone
}

func validMultiplier(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
