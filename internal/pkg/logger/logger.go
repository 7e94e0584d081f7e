package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	log  zerolog.Logger
)

// Get returns the process-wide logger. Output is JSON unless APP_MODE is dev
// or unset, in which case a console writer is used.
func Get() zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339

		level := zerolog.InfoLevel
		if lvl, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && lvl != zerolog.NoLevel {
			level = lvl
		}

		var out io.Writer = os.Stdout
		if mode := strings.TrimSpace(os.Getenv("APP_MODE")); mode == "" || mode == "dev" {
			out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		}

		log = zerolog.New(out).
			Level(level).
			With().
			Timestamp().
			Logger()
	})
	return log
}
