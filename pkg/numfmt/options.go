package numfmt

const (
	DefaultUnits               = ""
	DefaultMaxDecimalPlaces    = 2
	DefaultLocale              = "en"
	DefaultErrorRepresentation = "?"
)

// Options controls how a number is rendered.
type Options struct {
	Units               string
	MaxDecimalPlaces    int
	Locale              string
	ErrorRepresentation string
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the options used when nothing is overridden.
func DefaultOptions() Options {
	return Options{
		Units:               DefaultUnits,
		MaxDecimalPlaces:    DefaultMaxDecimalPlaces,
		Locale:              DefaultLocale,
		ErrorRepresentation: DefaultErrorRepresentation,
	}
}

func WithUnits(units string) Option {
	return func(o *Options) { o.Units = units }
}

func WithMaxDecimalPlaces(places int) Option {
	return func(o *Options) { o.MaxDecimalPlaces = places }
}

// WithLocale sets the locale. An empty string keeps the current locale.
func WithLocale(locale string) Option {
	return func(o *Options) {
		if locale != "" {
			o.Locale = locale
		}
	}
}

func WithErrorRepresentation(repr string) Option {
	return func(o *Options) { o.ErrorRepresentation = repr }
}

func (o Options) apply(opts []Option) Options {
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
