package observability

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configure NewLogger. An empty LogPath disables the file sink.
type Options struct {
	LogPath    string
	LogLevel   string
	Console    bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger takes a message followed by key/value pairs:
//
//	logger.Info("page converted", "url", u, "items", n)
type Logger struct {
	zl     zerolog.Logger
	closer io.Closer
}

func NewLogger(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}

	var writers []io.Writer
	var closer io.Closer
	if opts.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogPath), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		rotating := &lumberjack.Logger{
			Filename:   opts.LogPath,
			MaxSize:    orDefault(opts.MaxSizeMB, 50),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 14),
			Compress:   true,
		}
		writers = append(writers, rotating)
		closer = rotating
	}
	if opts.Console || len(writers) == 0 {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()

	return &Logger{zl: zl, closer: closer}, nil
}

// New wraps an existing writer; used by tests and the CLI.
func New(w io.Writer, level zerolog.Level) *Logger {
	return &Logger{zl: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.zl.Debug().Fields(pairs(fields)).Msg(msg)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.zl.Info().Fields(pairs(fields)).Msg(msg)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.zl.Warn().Fields(pairs(fields)).Msg(msg)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.zl.Error().Fields(pairs(fields)).Msg(msg)
}

// With returns a child logger that adds the given pairs to every entry.
func (l *Logger) With(fields ...interface{}) *Logger {
	return &Logger{zl: l.zl.With().Fields(pairs(fields)).Logger(), closer: l.closer}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// pairs turns k1, v1, k2, v2 into a map. A trailing key without a value is
// kept under "extra"; non-string keys are formatted.
func pairs(fields []interface{}) map[string]interface{} {
	if len(fields) == 0 {
		return nil
	}
	m := make(map[string]interface{}, len(fields)/2+1)
	for i := 0; i < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}
		if i+1 == len(fields) {
			m["extra"] = fields[i]
			break
		}
		if err, ok := fields[i+1].(error); ok {
			m[key] = err.Error()
			continue
		}
		m[key] = fields[i+1]
	}
	return m
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
