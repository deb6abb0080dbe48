package logtrace

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger. The level string is
// parsed with zerolog.ParseLevel; unknown or empty levels fall back to info.
// With pretty set, output goes through a human readable console writer.
func InitLogger(level string, pretty bool) {
	InitLoggerWithWriter(os.Stderr, level, pretty)
}

func InitLoggerWithWriter(w io.Writer, level string, pretty bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

func zerologTraceEnabled() bool {
	return zerolog.GlobalLevel() <= zerolog.TraceLevel
}
