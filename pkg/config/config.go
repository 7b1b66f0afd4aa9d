package config

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/climatemonitor/chartfmt/pkg/debounce"
	"github.com/climatemonitor/chartfmt/pkg/layout"
	"github.com/climatemonitor/chartfmt/pkg/numfmt"
	"github.com/climatemonitor/chartfmt/pkg/types"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	EnvLocale              = "CHARTFMT_LOCALE"
	EnvMaxDecimalPlaces    = "CHARTFMT_MAX_DECIMAL_PLACES"
	EnvErrorRepresentation = "CHARTFMT_ERROR_REPRESENTATION"
	EnvResizeQuietPeriod   = "CHARTFMT_RESIZE_QUIET_PERIOD"
)

type Format struct {
	Locale              string  `yaml:"locale"`
	MaxDecimalPlaces    *int    `yaml:"max_decimal_places"`
	ErrorRepresentation *string `yaml:"error_representation"`
}

type Resize struct {
	QuietPeriod time.Duration `yaml:"quiet_period"`
}

// Breakpoint is one row of the heatmap table. MaxWidth is omitted for the last, unbounded tier.
type Breakpoint struct {
	Name      string   `yaml:"name"`
	MaxWidth  *float64 `yaml:"max_width"`
	Subdomain string   `yaml:"subdomain"`
	RowLimit  string   `yaml:"row_limit"`
}

type Heatmap struct {
	Breakpoints []Breakpoint `yaml:"breakpoints"`
}

type Config struct {
	Format  Format  `yaml:"format"`
	Resize  Resize  `yaml:"resize"`
	Heatmap Heatmap `yaml:"heatmap"`
}

// Load reads the YAML config at cli.ConfigPath or <home>/chartfmt.yml, then applies
// environment overrides (optionally from a .env file in the working directory).
// A missing default file is not an error.
func Load(cli *types.CLI, home string) (*Config, error) {
	path := filepath.Join(home, "chartfmt.yml")
	explicit := cli != nil && cli.ConfigPath != ""
	if explicit {
		path = cli.ConfigPath
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
		log.Debug().Str("path", path).Msg("config loaded")
	case os.IsNotExist(err) && !explicit:
		log.Debug().Str("path", path).Msg("config file not found, using defaults")
	default:
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load .env")
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvLocale); ok && v != "" {
		c.Format.Locale = v
	}
	if v, ok := os.LookupEnv(EnvMaxDecimalPlaces); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", EnvMaxDecimalPlaces)
		}
		c.Format.MaxDecimalPlaces = &n
	}
	if v, ok := os.LookupEnv(EnvErrorRepresentation); ok {
		c.Format.ErrorRepresentation = &v
	}
	if v, ok := os.LookupEnv(EnvResizeQuietPeriod); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", EnvResizeQuietPeriod)
		}
		c.Resize.QuietPeriod = d
	}
	return nil
}

// FormatOptions turns the configured defaults into formatter options.
func (c *Config) FormatOptions() []numfmt.Option {
	var opts []numfmt.Option
	if c.Format.Locale != "" {
		opts = append(opts, numfmt.WithLocale(c.Format.Locale))
	}
	if c.Format.MaxDecimalPlaces != nil {
		opts = append(opts, numfmt.WithMaxDecimalPlaces(*c.Format.MaxDecimalPlaces))
	}
	if c.Format.ErrorRepresentation != nil {
		opts = append(opts, numfmt.WithErrorRepresentation(*c.Format.ErrorRepresentation))
	}
	return opts
}

func (c *Config) QuietPeriod() time.Duration {
	if c.Resize.QuietPeriod <= 0 {
		return debounce.DefaultQuietPeriod
	}
	return c.Resize.QuietPeriod
}

// Resolver builds the heatmap resolver from the configured table, or the default table when none is set.
func (c *Config) Resolver() (*layout.Resolver, error) {
	if len(c.Heatmap.Breakpoints) == 0 {
		return layout.Default(), nil
	}
	table := make(layout.Table, 0, len(c.Heatmap.Breakpoints))
	for i, bp := range c.Heatmap.Breakpoints {
		limit, fit, err := layout.ParseRowLimit(bp.RowLimit)
		if err != nil {
			return nil, errors.Wrapf(err, "heatmap breakpoint %d", i)
		}
		maxWidth := math.Inf(1)
		if bp.MaxWidth != nil {
			maxWidth = *bp.MaxWidth
		}
		table = append(table, layout.Tier{
			Name:      layout.Breakpoint(bp.Name),
			MaxWidth:  maxWidth,
			Subdomain: layout.Subdomain(bp.Subdomain),
			RowLimit:  limit,
			FitRows:   fit,
		})
	}
	return layout.NewResolver(table)
}
