package numfmt

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type inputKind uint8

const (
	kindNumber inputKind = iota
	kindText
)

// Input is either a number or the text form of one. Only text is parsed.
type Input struct {
	kind inputKind
	num  float64
	text string
}

// Number wraps a float64 value.
func Number(v float64) Input {
	return Input{kind: kindNumber, num: v}
}

// Text wraps a numeric string written with the locale's decimal separator.
func Text(s string) Input {
	return Input{kind: kindText, text: s}
}

// IsText reports whether the input has to be parsed.
func (in Input) IsText() bool {
	return in.kind == kindText
}

func (in Input) String() string {
	if in.kind == kindText {
		return in.text
	}
	return strconv.FormatFloat(in.num, 'g', -1, 64)
}

// value resolves the input to a finite float64. sep is the locale decimal separator.
func (in Input) value(sep string) (float64, error) {
	v := in.num
	if in.kind == kindText {
		s := strings.TrimSpace(in.text)
		if sep != "." {
			s = strings.Replace(s, sep, ".", 1)
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrFormattingFailure, "parse %q: %v", in.text, err)
		}
		v = parsed
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Wrapf(ErrFormattingFailure, "non-finite value %v", v)
	}
	return v, nil
}
