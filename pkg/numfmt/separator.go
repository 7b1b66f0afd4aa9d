package numfmt

import (
	"sync"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var separators sync.Map // locale -> string

// DecimalSeparator returns the decimal separator used by locale, e.g. "." for en and "," for es.
// It renders 1.1 with the locale's conventions and takes the character after the integer digit.
func DecimalSeparator(locale string) (string, error) {
	if sep, ok := separators.Load(locale); ok {
		return sep.(string), nil
	}
	// Well-formed but unknown subtags come back with a usable tag and a ValueError.
	tag, err := language.Parse(locale)
	var unknown language.ValueError
	if err != nil && !errors.As(err, &unknown) {
		return "", errors.Wrapf(ErrFormattingFailure, "locale %q: %v", locale, err)
	}
	rendered := []rune(message.NewPrinter(tag).Sprint(number.Decimal(1.1)))
	for i, r := range rendered {
		if !unicode.IsDigit(r) {
			continue
		}
		if i+1 >= len(rendered) || unicode.IsDigit(rendered[i+1]) {
			break
		}
		sep := string(rendered[i+1])
		separators.Store(locale, sep)
		return sep, nil
	}
	return "", errors.Wrapf(ErrFormattingFailure, "locale %q: no decimal separator in %q", locale, string(rendered))
}
