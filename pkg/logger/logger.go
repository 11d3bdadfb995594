// Package logger owns the process-wide zerolog logger.
//
// Call Init once from main; packages that are not handed a logger use Get
// or Component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Anything else means info.
	Level string
	// Pretty switches stdout to zerolog's console writer. The file sink
	// always receives JSON.
	Pretty bool
	// Output replaces stdout, mainly for tests.
	Output io.Writer
	// File, when set, also writes logs to a size-rotated file.
	File string
	// Service is attached to every entry as "service".
	Service string
}

// Rotation policy of the file sink.
const (
	fileMaxSizeMB  = 50
	fileMaxBackups = 5
	fileMaxAgeDays = 28
)

const defaultService = "expense-tracker"

var (
	mu       sync.RWMutex
	once     sync.Once
	instance *zerolog.Logger
)

// Init builds the logger on its first call and returns it. Later calls
// return the same logger and ignore opts.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		lvl := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		service := opts.Service
		if service == "" {
			service = defaultService
		}

		l := zerolog.New(writer(opts)).
			Level(lvl).
			With().
			Timestamp().
			Str("service", service).
			Caller().
			Logger()

		mu.Lock()
		instance = &l
		mu.Unlock()
	})
	return Get()
}

// writer combines the console or stdout sink with the optional file sink.
func writer(opts Options) io.Writer {
	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	if opts.File == "" {
		return out
	}
	return zerolog.MultiLevelWriter(out, &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    fileMaxSizeMB,
		MaxBackups: fileMaxBackups,
		MaxAge:     fileMaxAgeDays,
		Compress:   true,
	})
}

// Get returns the process logger. It panics before Init.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("logger: Get() called before Init()")
	}
	return *instance
}

// Component returns the process logger tagged with a "component" field.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset drops the logger so the next Init builds a new one. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	instance = nil
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
