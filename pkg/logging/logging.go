package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/climatemonitor/chartfmt/pkg/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "github.com/rs/zerolog/pkgerrors"
)

const modulePrefix = "github.com/climatemonitor/chartfmt/"

var headerFields = map[string]bool{"time": true, "level": true, "message": true, "caller": true}

// textWriter turns zerolog JSON lines into "time LEVEL caller > message key=value" lines.
type textWriter struct {
	Out io.Writer
}

func (w *textWriter) Write(p []byte) (int, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(p), &fields); err != nil {
		return w.Out.Write(p)
	}

	str := func(key string) string {
		var s string
		_ = json.Unmarshal(fields[key], &s)
		return s
	}

	var line strings.Builder
	for _, head := range []string{str("time"), strings.ToUpper(str("level"))} {
		if head != "" {
			line.WriteString(head)
			line.WriteByte(' ')
		}
	}
	if caller := str("caller"); caller != "" {
		line.WriteString(caller)
		line.WriteString(" > ")
	}
	line.WriteString(str("message"))

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !headerFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		line.WriteByte(' ')
		line.WriteString(k)
		line.WriteByte('=')
		line.WriteString(rawValue(fields[k]))
	}
	line.WriteByte('\n')

	if _, err := w.Out.Write([]byte(line.String())); err != nil {
		return 0, err
	}
	return len(p), nil
}

// multiline strings (stack traces) start on their own line
func rawValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSuffix(s, "\n")
		if strings.Contains(s, "\n") {
			return "\n" + s
		}
		return s
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err == nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}

func stackMarshaler(err error) interface{} {
	stackErr, ok := err.(interface{ StackTrace() errors.StackTrace })
	if !ok {
		return nil
	}
	st := stackErr.StackTrace()
	if len(st) == 0 {
		return nil
	}
	parts := strings.Split(fmt.Sprintf("%+v", st[0]), "\n\t")
	if len(parts) < 2 {
		return nil
	}
	return strings.TrimPrefix(parts[1], modulePrefix) + " > " + strings.TrimPrefix(parts[0], modulePrefix)
}

func InitConsoleStdErrLog() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerolog.ErrorStackMarshaler = stackMarshaler
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return strings.TrimPrefix(file, modulePrefix) + ":" + strconv.Itoa(line)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Caller().
		Logger()
}

// SetLevel applies a level name such as "debug" or "warn". Empty keeps the current level.
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// fatalStackHook adds stack traces to Fatal level logs
type fatalStackHook struct{}

func (h fatalStackHook) Run(e *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.FatalLevel {
		e.Stack()
	}
}

// InitLogFile redirects the global logger to cli.LogPath, ~/.chartfmt/chartfmt.log by default.
func InitLogFile(cliInstance *types.CLI, version string) error {
	logPath := ""
	if cliInstance != nil {
		logPath = cliInstance.LogPath
	}
	if logPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		logPath = filepath.Join(home, ".chartfmt", "chartfmt.log")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return errors.Wrap(err, "failed to create log directory")
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "failed to open log file")
	}

	log.Logger = zerolog.New(zerolog.SyncWriter(&textWriter{Out: logFile})).
		With().
		Timestamp().
		Caller().
		Str("version", version).
		Logger().
		Hook(fatalStackHook{})
	return nil
}
