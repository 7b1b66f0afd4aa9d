package cli

import (
	"fmt"

	"github.com/climatemonitor/chartfmt/pkg/numfmt"
	"github.com/spf13/cobra"
)

type formatFlags struct {
	units    string
	decimals int
	errRepr  string
}

func (f *formatFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.units, "units", "", "Units appended after a space (e.g. km, °C, t)")
	cmd.Flags().IntVar(&f.decimals, "decimals", numfmt.DefaultMaxDecimalPlaces, "Maximum decimal places")
	cmd.Flags().StringVar(&f.errRepr, "error", numfmt.DefaultErrorRepresentation, "Output used when the value cannot be formatted")
}

// options only carries flags the user set so config defaults stay in effect otherwise.
func (f *formatFlags) options(cmd *cobra.Command) []numfmt.Option {
	opts := []numfmt.Option{numfmt.WithUnits(f.units)}
	if cmd.Flags().Changed("decimals") {
		opts = append(opts, numfmt.WithMaxDecimalPlaces(f.decimals))
	}
	if cmd.Flags().Changed("error") {
		opts = append(opts, numfmt.WithErrorRepresentation(f.errRepr))
	}
	return opts
}

func newFormatCommand(a *app) *cobra.Command {
	flags := &formatFlags{}
	cmd := &cobra.Command{
		Use:   "format VALUE",
		Short: "Format a number with the locale decimal separator and optional units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.formatter.Format(numfmt.Text(args[0]), flags.options(cmd)...))
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func newSuffixCommand(a *app) *cobra.Command {
	flags := &formatFlags{}
	var multiplier float64
	cmd := &cobra.Command{
		Use:   "suffix VALUE",
		Short: "Format a number with a metric prefix (k, M, G, T)",
		Long: "Format a number with a metric prefix (k, M, G, T).\n\n" +
			"--multiplier describes the unit VALUE is already in: 1943.442 kt is\n" +
			"`chartfmt suffix 1943.442 --multiplier 1000 --units t` and prints 1.94 Mt.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.formatter.FormatWithMetricSuffix(numfmt.Text(args[0]), multiplier, flags.options(cmd)...)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64Var(&multiplier, "multiplier", 1, "Multiplier of the unit VALUE is expressed in")
	return cmd
}

func newSeparatorCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "separator [LOCALE...]",
		Short: "Print the decimal separator of each locale",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{a.formatter.Defaults().Locale}
			}
			for _, locale := range args {
				sep, err := numfmt.DecimalSeparator(locale)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", locale, sep); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newShortScaleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shortscale VALUE",
		Short: "Reduce a whole number to thousands (K) or millions (M)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := a.formatter.Defaults()
			s := numfmt.ShortScaleString(numfmt.Text(args[0]),
				numfmt.WithLocale(defaults.Locale),
				numfmt.WithMaxDecimalPlaces(defaults.MaxDecimalPlaces),
				numfmt.WithErrorRepresentation(defaults.ErrorRepresentation),
			)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}
}
