// Package logger provides the process-wide zerolog logger with rotating
// file output.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// File formats.
const (
	FormatJSON  = "json"
	FormatFixed = "fixed"
)

const consoleQueueSize = 1000

// Config holds the logger configuration, as read from Logging.json.
type Config struct {
	Level      string `json:"Level"`
	FilePath   string `json:"FilePath"`
	MaxSizeMB  int    `json:"MaxSizeMB"`
	MaxBackups int    `json:"MaxBackups"`
	MaxAgeDays int    `json:"MaxAgeDays"`
	Compress   bool   `json:"Compress"`
	Console    bool   `json:"Console"`
	Format     string `json:"Format"`
}

// DefaultConfig returns the logging defaults.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		FilePath:   "log/SiliconStats/siliconstats.log",
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 30,
		Compress:   true,
		Console:    false,
		Format:     FormatFixed,
	}
}

var (
	// mu serializes Init and Close. Readers only Load globalLogger.
	mu           sync.Mutex
	globalLogger atomic.Pointer[zerolog.Logger]
	fileWriter   io.Closer
	consoleAsync *asyncWriter
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	nop := zerolog.Nop()
	globalLogger.Store(&nop)
}

// Init (re)configures the global logger. Writers from a previous Init are
// closed once the new logger is in place, so Init doubles as the hot reload
// entry point. On error the previous logger stays active.
func Init(cfg Config) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if l, err := zerolog.ParseLevel(strings.ToLower(cfg.Level)); err == nil {
			level = l
		}
	}
	zerolog.SetGlobalLevel(level)

	mu.Lock()
	defer mu.Unlock()

	var (
		writers []io.Writer
		newFile io.Closer
		newCons *asyncWriter
	)

	if cfg.FilePath != "" && level != zerolog.Disabled {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return err
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		newFile = lj
		if strings.EqualFold(cfg.Format, FormatFixed) {
			writers = append(writers, NewFixedFormatWriter(lj))
		} else {
			writers = append(writers, lj)
		}
	}

	if cfg.Console {
		newCons = newAsyncWriter(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05.000",
		}, consoleQueueSize)
		writers = append(writers, newCons)
	}

	var output io.Writer
	switch len(writers) {
	case 0:
		output = os.Stderr
	case 1:
		output = writers[0]
	default:
		output = zerolog.MultiLevelWriter(writers...)
	}

	l := zerolog.New(output).With().Timestamp().Caller().Logger()
	globalLogger.Store(&l)

	closeWritersLocked()
	fileWriter, consoleAsync = newFile, newCons
	return nil
}

// Close flushes the console queue and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	nop := zerolog.Nop()
	globalLogger.Store(&nop)
	closeWritersLocked()
}

func closeWritersLocked() {
	if fileWriter != nil {
		_ = fileWriter.Close()
		fileWriter = nil
	}
	if consoleAsync != nil {
		consoleAsync.Close()
		consoleAsync = nil
	}
}

// Logger returns the global logger.
func Logger() *zerolog.Logger {
	return globalLogger.Load()
}

func Debug() *zerolog.Event { return globalLogger.Load().Debug() }

func Info() *zerolog.Event { return globalLogger.Load().Info() }

func Warn() *zerolog.Event { return globalLogger.Load().Warn() }

func Error() *zerolog.Event { return globalLogger.Load().Error() }

// Fatal logs and exits the process.
func Fatal() *zerolog.Event { return globalLogger.Load().Fatal() }

// WithComponent returns a child logger tagged with a component field.
func WithComponent(component string) zerolog.Logger {
	return globalLogger.Load().With().Str("component", component).Logger()
}
