package cli

import (
	"os"
	"path/filepath"

	"github.com/climatemonitor/chartfmt/pkg/config"
	"github.com/climatemonitor/chartfmt/pkg/layout"
	"github.com/climatemonitor/chartfmt/pkg/logging"
	"github.com/climatemonitor/chartfmt/pkg/numfmt"
	"github.com/climatemonitor/chartfmt/pkg/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app is built once flags are parsed, before any subcommand runs.
type app struct {
	cli       *types.CLI
	cfg       *config.Config
	formatter *numfmt.Formatter
	resolver  *layout.Resolver
}

func NewRootCommand(cli *types.CLI, version string) *cobra.Command {
	a := &app{cli: cli}

	rootCmd := &cobra.Command{
		Use:          "chartfmt",
		Short:        "Locale-aware number formatting and responsive heatmap layout for climate charts",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(version)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cli.ConfigPath, "config", "", "Path to config file (default: ~/.chartfmt/chartfmt.yml)")
	rootCmd.PersistentFlags().StringVar(&cli.LogPath, "log", "", "Path to log file (default: stderr)")
	rootCmd.PersistentFlags().StringVar(&cli.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cli.Locale, "locale", "", "Locale used for decimal separators (default: config or en)")

	rootCmd.AddCommand(
		newFormatCommand(a),
		newSuffixCommand(a),
		newSeparatorCommand(a),
		newShortScaleCommand(a),
		newHeatmapCommand(a),
		newBreakpointsCommand(a),
		newWatchCommand(a),
	)
	return rootCmd
}

func (a *app) init(version string) error {
	if err := logging.SetLevel(a.cli.LogLevel); err != nil {
		return err
	}
	if a.cli.LogPath != "" {
		if err := logging.InitLogFile(a.cli, version); err != nil {
			return err
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return errors.Wrap(err, "failed to get user home directory")
	}
	cfg, err := config.Load(a.cli, filepath.Join(home, ".chartfmt"))
	if err != nil {
		return err
	}
	resolver, err := cfg.Resolver()
	if err != nil {
		return err
	}

	opts := cfg.FormatOptions()
	if a.cli.Locale != "" {
		opts = append(opts, numfmt.WithLocale(a.cli.Locale))
	}
	a.cfg = cfg
	a.formatter = numfmt.NewFormatter(opts...)
	a.resolver = resolver
	log.Debug().
		Str("locale", a.formatter.Defaults().Locale).
		Dur("quiet_period", cfg.QuietPeriod()).
		Msg("chartfmt initialized")
	return nil
}
