package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/climatemonitor/chartfmt/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "chartfmt.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: {}\n"), 0644))

	cmd := NewRootCommand(&types.CLI{}, "test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestFormatCommand(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{"default", []string{"format", "5.10"}, "5.1\n"},
		{"units", []string{"format", "2.3884", "--units", "km"}, "2.39 km\n"},
		{"spanish", []string{"--locale", "es", "format", "1234,5", "--decimals", "1"}, "1234,5\n"},
		{"error", []string{"format", "abc", "--error", "-"}, "-\n"},
		{"suffix", []string{"suffix", "1943.442", "--multiplier", "1000", "--units", "t"}, "1.94 Mt\n"},
		{"suffix_default_multiplier", []string{"suffix", "2500000", "--units", "t"}, "2.5 Mt\n"},
		{"suffix_below_kilo", []string{"suffix", "12", "--units", "t"}, "12 t\n"},
		{"separator", []string{"separator", "en", "es"}, "en\t.\nes\t,\n"},
		{"separator_default", []string{"--locale", "de", "separator"}, "de\t,\n"},
		{"shortscale", []string{"shortscale", "1234567"}, "1.23 M\n"},
		{"shortscale_small", []string{"shortscale", "999"}, "?\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, "", tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestHeatmapCommand(t *testing.T) {
	out, err := run(t, "", "heatmap", "900", "--from", "2015-01-01", "--to", "2017-06-30")
	require.NoError(t, err)

	var cfg map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "md", cfg["breakpoint"])
	assert.Equal(t, "day", cfg["subDomain"])
	assert.Nil(t, cfg["rowLimit"])
	assert.EqualValues(t, 3, cfg["range"])
}

func TestHeatmapCommandErrors(t *testing.T) {
	_, err := run(t, "", "heatmap", "wide")
	assert.Error(t, err)

	_, err = run(t, "", "heatmap", "400", "--from", "2018-01-01", "--to", "2017-01-01")
	assert.Error(t, err)

	_, err = run(t, "", "heatmap", "400", "--from", "not a date")
	assert.Error(t, err)
}

func TestBreakpointsCommand(t *testing.T) {
	out, err := run(t, "", "breakpoints")
	require.NoError(t, err)
	for _, want := range []string{"BREAKPOINT", "xs", "575.98", "fit", "md", "unbounded", "xl", "89"} {
		assert.Contains(t, out, want)
	}
}

func TestWatchCommand(t *testing.T) {
	out, err := run(t, "320\n375\nnot-a-width\n\n900\n", "watch", "--quiet", "20ms", "--from", "2016-01-01", "--to", "2016-12-31")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	var last map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last))
	assert.EqualValues(t, 900, last["width"])
	assert.Equal(t, "day", last["subDomain"])
	assert.EqualValues(t, 1, last["range"])
}

func TestWatchCommandReadError(t *testing.T) {
	stdin := "320\n" + strings.Repeat("9", 70000) + "\n900\n"
	out, err := run(t, stdin, "watch", "--quiet", "10ms", "--from", "2016-01-01", "--to", "2016-12-31")
	require.Error(t, err)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
	assert.NotContains(t, out, `"width":900`)
}

func TestParseWidth(t *testing.T) {
	w, err := parseWidth(" 414 ")
	require.NoError(t, err)
	assert.Equal(t, 414, w)

	_, err = parseWidth("-1")
	assert.Error(t, err)
	_, err = parseWidth("wide")
	assert.Error(t, err)
}
