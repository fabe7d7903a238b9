// Package logger holds the process-wide zerolog instance.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.Mutex
	base *zerolog.Logger
)

// Init builds the process logger. The first call wins; later calls return
// the already-built instance. Pretty switches to console output for local
// development; production stays on JSON.
func Init(level string, pretty bool) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base != nil {
		return *base
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).Level(lvl).With().Timestamp().Caller().Logger()
	base = &l
	return l
}

// Get returns the process logger, initialising it with defaults when Init
// has not run yet.
func Get() zerolog.Logger {
	mu.Lock()
	if base != nil {
		l := *base
		mu.Unlock()
		return l
	}
	mu.Unlock()
	return Init("info", false)
}

// Reset clears the instance so tests can rebuild it with other settings.
func Reset() {
	mu.Lock()
	base = nil
	mu.Unlock()
}
