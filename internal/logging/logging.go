package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// Logger is the process-wide logger. Until Setup runs it writes JSON to stderr.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// ParseLevel maps a config level name to a zerolog level. Unknown names mean info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(name) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Setup points Logger at a console writer on w and applies the global level. Extra
// writers, such as a Graylog sink, get the raw JSON events as well.
func Setup(level string, w io.Writer, extra ...io.Writer) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    w != os.Stdout && w != os.Stderr,
		},
	}
	writers = append(writers, extra...)

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()

	Logger.Debug().Str("loglevel", zerolog.GlobalLevel().String()).Msg("Logging set up")
}

// GraylogWriter sends log events to a GELF UDP endpoint such as "graylog:12201".
func GraylogWriter(addr string) (*gelf.Writer, error) {
	w, err := gelf.NewWriter(addr)
	if err != nil {
		return nil, fmt.Errorf("graylog writer: %w", err)
	}
	return w, nil
}

// SetupWithGraylog is Setup that also ships events to graylogAddr when it is set.
func SetupWithGraylog(level, graylogAddr string, w io.Writer) error {
	if graylogAddr == "" {
		Setup(level, w)
		return nil
	}
	gw, err := GraylogWriter(graylogAddr)
	if err != nil {
		Setup(level, w)
		return err
	}
	Setup(level, w, gw)
	return nil
}

// For returns a child logger tagged with the subsystem name.
func For(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}
