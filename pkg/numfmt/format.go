// Package numfmt renders numbers for chart axes and tooltips: locale decimal separator,
// bounded decimal places without trailing zeros, an optional unit and an optional metric prefix.
//
// Formatting never fails outward. Any problem (unparsable text, NaN, an unknown locale)
// collapses into the configured error representation, "?" by default.
package numfmt

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrFormattingFailure is wrapped by every error produced while formatting.
var ErrFormattingFailure = errors.New("formatting failure")

// Formatter holds default options applied before per-call options.
type Formatter struct {
	defaults Options
}

// NewFormatter returns a Formatter whose defaults are DefaultOptions overridden by opts.
func NewFormatter(opts ...Option) *Formatter {
	return &Formatter{defaults: DefaultOptions().apply(opts)}
}

// Defaults returns a copy of the formatter defaults.
func (f *Formatter) Defaults() Options {
	return f.defaults
}

var std = NewFormatter()

// Format renders in with the package defaults. See Formatter.Format.
func Format(in Input, opts ...Option) string {
	return std.Format(in, opts...)
}

// TryFormat is Format returning the failure instead of the error representation.
func TryFormat(in Input, opts ...Option) (string, error) {
	return std.TryFormat(in, opts...)
}

// FormatWithMetricSuffix renders in with a k/M/G/T prefix using the package defaults.
func FormatWithMetricSuffix(in Input, multiplierFactor float64, opts ...Option) string {
	return std.FormatWithMetricSuffix(in, multiplierFactor, opts...)
}

// Format rounds in to at most MaxDecimalPlaces digits, drops trailing zeros, uses the locale
// decimal separator and appends " "+Units. On failure it returns ErrorRepresentation.
func (f *Formatter) Format(in Input, opts ...Option) string {
	o := f.defaults.apply(opts)
	s, err := f.tryFormat(in, o)
	if err != nil {
		logFailure(err, in, o)
		return o.ErrorRepresentation
	}
	return s
}

func (f *Formatter) TryFormat(in Input, opts ...Option) (string, error) {
	return f.tryFormat(in, f.defaults.apply(opts))
}

// FormatWithMetricSuffix divides in by the threshold of the tier chosen by SelectTier and prefixes
// the units with the tier prefix: 1943.442 with multiplierFactor 1000 and units "t" gives "1.94 Mt".
// Values below the kilo threshold are formatted without a prefix.
func (f *Formatter) FormatWithMetricSuffix(in Input, multiplierFactor float64, opts ...Option) string {
	o := f.defaults.apply(opts)
	s, err := f.tryFormatWithMetricSuffix(in, multiplierFactor, o)
	if err != nil {
		logFailure(err, in, o)
		return o.ErrorRepresentation
	}
	return s
}

func (f *Formatter) TryFormatWithMetricSuffix(in Input, multiplierFactor float64, opts ...Option) (string, error) {
	return f.tryFormatWithMetricSuffix(in, multiplierFactor, f.defaults.apply(opts))
}

func (f *Formatter) tryFormat(in Input, o Options) (string, error) {
	sep, err := DecimalSeparator(o.Locale)
	if err != nil {
		return "", err
	}
	v, err := in.value(sep)
	if err != nil {
		return "", err
	}
	return render(v, sep, o)
}

func (f *Formatter) tryFormatWithMetricSuffix(in Input, multiplierFactor float64, o Options) (string, error) {
	if !validMultiplier(multiplierFactor) {
		return "", errors.Wrapf(ErrFormattingFailure, "multiplier factor %v", multiplierFactor)
	}
	sep, err := DecimalSeparator(o.Locale)
	if err != nil {
		return "", err
	}
	v, err := in.value(sep)
	if err != nil {
		return "", err
	}
	tier := SelectTier(v, multiplierFactor)
	if tier != TierNone {
		v /= tier.Threshold(multiplierFactor)
		o.Units = tier.Prefix + o.Units
	}
	return render(v, sep, o)
}

func render(v float64, sep string, o Options) (string, error) {
	if o.MaxDecimalPlaces < 0 {
		return "", errors.Wrapf(ErrFormattingFailure, "negative decimal places %d", o.MaxDecimalPlaces)
	}
	s := strings.TrimSuffix(trimFraction(fixed(v, o.MaxDecimalPlaces)), ".")
	if s == "-0" {
		s = "0"
	}
	if sep != "." {
		s = strings.Replace(s, ".", sep, 1)
	}
	if o.Units == "" {
		return s, nil
	}
	return s + " " + o.Units, nil
}

func trimFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimRight(s, "0")
}

func logFailure(err error, in Input, o Options) {
	log.Debug().Err(err).
		Str("input", in.String()).
		Str("locale", o.Locale).
		Int("max_decimal_places", o.MaxDecimalPlaces).
		Msg("number formatting fell back to error representation")
}
