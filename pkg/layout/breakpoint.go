package layout

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Breakpoint is a named viewport width class.
type Breakpoint string

const (
	BreakpointXS Breakpoint = "xs"
	BreakpointSM Breakpoint = "sm"
	BreakpointMD Breakpoint = "md"
	BreakpointLG Breakpoint = "lg"
	BreakpointXL Breakpoint = "xl"
)

// Subdomain is the finest time unit the calendar heatmap draws.
type Subdomain string

const (
	// SubdomainXDay draws one cell per day with the extra day marker.
	SubdomainXDay Subdomain = "x_day"
	// SubdomainDay draws plain day cells.
	SubdomainDay Subdomain = "day"
)

// RowLimit caps the number of rendered calendar rows. The zero value is unbounded.
type RowLimit struct {
	rows    int
	bounded bool
}

// Rows returns a bounded row limit.
func Rows(n int) RowLimit {
	return RowLimit{rows: n, bounded: true}
}

// Unbounded renders every row.
func Unbounded() RowLimit {
	return RowLimit{}
}

// Rows returns the cap and whether there is one.
func (l RowLimit) Rows() (int, bool) {
	return l.rows, l.bounded
}

func (l RowLimit) IsUnbounded() bool {
	return !l.bounded
}

func (l RowLimit) String() string {
	if !l.bounded {
		return "unbounded"
	}
	return strconv.Itoa(l.rows)
}

// MarshalJSON encodes an unbounded limit as null, which the heatmap reads as "no cap".
func (l RowLimit) MarshalJSON() ([]byte, error) {
	if !l.bounded {
		return []byte("null"), nil
	}
	return json.Marshal(l.rows)
}

func (l *RowLimit) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = Unbounded()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "row limit")
	}
	*l = Rows(n)
	return nil
}

// FitRows is the quadratic through (320, 21), (375, 25) and (414, 29), the phone widths
// where the calendar has to shrink below the fixed tables.
func FitRows(width int) int {
	w := float64(width)
	return int(math.Round(0.0003174*w*w - 0.1479*w + 35.82))
}
