// Package layout maps a viewport width to the calendar heatmap rendering parameters.
//
// Widths are classified against Bootstrap-style breakpoints. Each breakpoint carries a
// subdomain granularity and a row limit; the mapping is literal table data, not derived.
package layout

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var ErrInvalidTable = errors.New("invalid breakpoint table")

// Tier binds a breakpoint to its upper width and heatmap parameters.
// When FitRows is set the row limit is computed from the width with FitRows.
type Tier struct {
	Name      Breakpoint
	MaxWidth  float64
	Subdomain Subdomain
	RowLimit  RowLimit
	FitRows   bool
}

// Table is a list of tiers in ascending MaxWidth order. The last tier must be unbounded (+Inf).
type Table []Tier

// DefaultTable returns the configuration the dashboard ships with.
func DefaultTable() Table {
	return Table{
		{Name: BreakpointXS, MaxWidth: 575.98, Subdomain: SubdomainXDay, FitRows: true},
		{Name: BreakpointSM, MaxWidth: 767.98, Subdomain: SubdomainXDay, RowLimit: Rows(39)},
		{Name: BreakpointMD, MaxWidth: 991.98, Subdomain: SubdomainDay, RowLimit: Unbounded()},
		{Name: BreakpointLG, MaxWidth: 1199.98, Subdomain: SubdomainXDay, RowLimit: Rows(74)},
		{Name: BreakpointXL, MaxWidth: math.Inf(1), Subdomain: SubdomainXDay, RowLimit: Rows(89)},
	}
}

// Validate checks ordering and completeness of the table.
func (t Table) Validate() error {
	if len(t) == 0 {
		return errors.Wrap(ErrInvalidTable, "no tiers")
	}
	seen := make(map[Breakpoint]bool, len(t))
	for i, tier := range t {
		if tier.Name == "" {
			return errors.Wrapf(ErrInvalidTable, "tier %d has no name", i)
		}
		if seen[tier.Name] {
			return errors.Wrapf(ErrInvalidTable, "duplicate tier %s", tier.Name)
		}
		seen[tier.Name] = true
		if tier.Subdomain == "" {
			return errors.Wrapf(ErrInvalidTable, "tier %s has no subdomain", tier.Name)
		}
		if rows, ok := tier.RowLimit.Rows(); ok && rows <= 0 && !tier.FitRows {
			return errors.Wrapf(ErrInvalidTable, "tier %s row limit %d", tier.Name, rows)
		}
		if i > 0 && tier.MaxWidth <= t[i-1].MaxWidth {
			return errors.Wrapf(ErrInvalidTable, "tier %s width %v not above %v", tier.Name, tier.MaxWidth, t[i-1].MaxWidth)
		}
	}
	if last := t[len(t)-1]; !math.IsInf(last.MaxWidth, 1) {
		return errors.Wrapf(ErrInvalidTable, "last tier %s must have no width limit", last.Name)
	}
	return nil
}

// Resolver answers width queries against a validated table. It is immutable and safe for concurrent use.
type Resolver struct {
	table Table
}

func NewResolver(table Table) (*Resolver, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{table: append(Table(nil), table...)}, nil
}

// Table returns a copy of the resolver table.
func (r *Resolver) Table() Table {
	return append(Table(nil), r.table...)
}

func (r *Resolver) tier(width int) Tier {
	w := float64(width)
	for _, t := range r.table[:len(r.table)-1] {
		if w <= t.MaxWidth {
			return t
		}
	}
	return r.table[len(r.table)-1]
}

func (r *Resolver) ResolveBreakpoint(width int) Breakpoint {
	return r.tier(width).Name
}

func (r *Resolver) ResolveSubdomain(width int) Subdomain {
	return r.tier(width).Subdomain
}

func (r *Resolver) ResolveRowLimit(width int) RowLimit {
	t := r.tier(width)
	if t.FitRows {
		return Rows(FitRows(width))
	}
	return t.RowLimit
}

// HeatmapConfig is the per-render input of the calendar heatmap.
type HeatmapConfig struct {
	Width      int        `json:"width"`
	Breakpoint Breakpoint `json:"breakpoint"`
	Subdomain  Subdomain  `json:"subDomain"`
	RowLimit   RowLimit   `json:"rowLimit"`
	Start      time.Time  `json:"start"`
	Range      int        `json:"range"`
}

// HeatmapConfig resolves the parameters for width and a calendar covering start..end.
// Range counts the calendar years touched by the interval.
func (r *Resolver) HeatmapConfig(width int, start, end time.Time) (HeatmapConfig, error) {
	if end.Before(start) {
		return HeatmapConfig{}, errors.Errorf("heatmap end %s is before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	t := r.tier(width)
	return HeatmapConfig{
		Width:      width,
		Breakpoint: t.Name,
		Subdomain:  t.Subdomain,
		RowLimit:   r.ResolveRowLimit(width),
		Start:      start,
		Range:      end.Year() - start.Year() + 1,
	}, nil
}

// ParseRowLimit reads the textual row limit used in config files: a positive integer,
// "unbounded", or "fit" for the width-dependent quadratic.
func ParseRowLimit(s string) (limit RowLimit, fit bool, err error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "fit":
		return RowLimit{}, true, nil
	case "", "unbounded", "null", "none":
		return Unbounded(), false, nil
	default:
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n <= 0 {
			return RowLimit{}, false, errors.Wrapf(ErrInvalidTable, "row limit %q", s)
		}
		return Rows(n), false, nil
	}
}

var defaultResolver, _ = NewResolver(DefaultTable())

// Default returns the resolver over DefaultTable.
func Default() *Resolver {
	return defaultResolver
}

func ResolveBreakpoint(width int) Breakpoint {
	return defaultResolver.ResolveBreakpoint(width)
}

// ResolveSubdomain returns the subdomain granularity for width using DefaultTable.
func ResolveSubdomain(width int) Subdomain {
	return defaultResolver.ResolveSubdomain(width)
}

// ResolveRowLimit returns the row limit for width using DefaultTable.
func ResolveRowLimit(width int) RowLimit {
	return defaultResolver.ResolveRowLimit(width)
}
