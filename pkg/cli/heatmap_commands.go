package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/climatemonitor/chartfmt/pkg/debounce"
	"github.com/climatemonitor/chartfmt/pkg/layout"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func addRangeFlags(a *app, cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.cli.FromTime, "from", "", "First day of the calendar (in any parsable format, see https://github.com/araddon/dateparse)")
	cmd.Flags().StringVar(&a.cli.ToTime, "to", "", "Last day of the calendar (default: now)")
}

func parseWidth(s string) (int, error) {
	w, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid viewport width %q", s)
	}
	if w < 0 {
		return 0, errors.Errorf("negative viewport width %d", w)
	}
	return w, nil
}

func newHeatmapCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap WIDTH",
		Short: "Print the calendar heatmap parameters for a viewport width as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := parseWidth(args[0])
			if err != nil {
				return err
			}
			from, to, err := a.cli.ParseRange(time.Now())
			if err != nil {
				return err
			}
			cfg, err := a.resolver.HeatmapConfig(width, from, to)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
	addRangeFlags(a, cmd)
	return cmd
}

func newBreakpointsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "breakpoints",
		Short: "Print the active breakpoint table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := lipgloss.Fprintln(cmd.OutOrStdout(), breakpointTable(a.resolver.Table()))
			return err
		},
	}
}

func breakpointTable(tiers layout.Table) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("BREAKPOINT", "MAX WIDTH", "SUBDOMAIN", "ROW LIMIT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, tier := range tiers {
		maxWidth := "-"
		if !math.IsInf(tier.MaxWidth, 1) {
			maxWidth = strconv.FormatFloat(tier.MaxWidth, 'f', -1, 64)
		}
		rows := tier.RowLimit.String()
		if tier.FitRows {
			rows = "fit"
		}
		t.Row(string(tier.Name), maxWidth, string(tier.Subdomain), rows)
	}
	return t.String()
}

func newWatchCommand(a *app) *cobra.Command {
	var quiet time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Read viewport widths from stdin and print heatmap parameters once resizing settles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("quiet") {
				quiet = a.cfg.QuietPeriod()
			}
			from, to, err := a.cli.ParseRange(time.Now())
			if err != nil {
				return err
			}
			if to.Before(from) {
				return errors.Errorf("--to %s is before --from %s", to.Format(time.DateOnly), from.Format(time.DateOnly))
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return a.watch(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), quiet, from, to)
		},
	}
	addRangeFlags(a, cmd)
	cmd.Flags().DurationVar(&quiet, "quiet", debounce.DefaultQuietPeriod, "Quiet period after the last width before re-rendering")
	return cmd
}

// watch emits one JSON line per settled width. Widths superseded within the quiet period are never rendered.
func (a *app) watch(ctx context.Context, in io.Reader, out io.Writer, quiet time.Duration, from, to time.Time) error {
	var (
		mu       sync.Mutex
		writeErr error
		readErr  error
	)
	enc := json.NewEncoder(out)
	coalescer := debounce.NewCoalescer(quiet, func(width int) {
		cfg, err := a.resolver.HeatmapConfig(width, from, to)
		mu.Lock()
		defer mu.Unlock()
		if err == nil {
			err = enc.Encode(cfg)
		}
		if err != nil && writeErr == nil {
			writeErr = err
		}
		log.Debug().Int("width", width).Str("breakpoint", string(cfg.Breakpoint)).Msg("heatmap re-rendered")
	})

	widths := make(chan int)
	go func() {
		defer close(widths)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			w, err := parseWidth(line)
			if err != nil {
				log.Warn().Err(err).Msg("skipping input line")
				continue
			}
			select {
			case widths <- w:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Error().Err(err).Msg("failed to read viewport widths")
			mu.Lock()
			readErr = errors.Wrap(err, "failed to read viewport widths")
			mu.Unlock()
		}
	}()

	if err := coalescer.Run(ctx, widths); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	if writeErr != nil {
		return writeErr
	}
	return readErr
}
