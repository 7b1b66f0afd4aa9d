package types

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

type CLI struct {
	ConfigPath string
	LogPath    string
	LogLevel   string
	Locale     string
	FromTime   string
	ToTime     string
}

// ParseRange parses --from/--to in any format dateparse understands. An empty --to means now,
// an empty --from means the start of the --to year.
func (c *CLI) ParseRange(now time.Time) (time.Time, time.Time, error) {
	to := now
	if c.ToTime != "" {
		t, err := dateparse.ParseAny(c.ToTime)
		if err != nil {
			return time.Time{}, time.Time{}, errors.Wrapf(err, "invalid --to %q", c.ToTime)
		}
		to = t
	}
	from := time.Date(to.Year(), time.January, 1, 0, 0, 0, 0, to.Location())
	if c.FromTime != "" {
		t, err := dateparse.ParseAny(c.FromTime)
		if err != nil {
			return time.Time{}, time.Time{}, errors.Wrapf(err, "invalid --from %q", c.FromTime)
		}
		from = t
	}
	return from, to, nil
}
