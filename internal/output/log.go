// Package output provides terminal output utilities.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance, writing to stderr.
var Logger *log.Logger

// fileLogger additionally receives every log line when --log-file is set.
var fileLogger *log.Logger

const timeFormat = "15:04:05"

func init() {
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// LogConfig holds the logging options of the command line.
type LogConfig struct {
	// Verbose enables debug level, timestamps and caller information.
	Verbose bool

	// Quiet only lets errors through to stderr. The log file is unaffected.
	Quiet bool

	// Timestamps overrides the timestamp default (off) unless Verbose is set.
	Timestamps *bool

	// Level is an explicit log level name (debug, info, warn, error).
	Level string

	// File is a path that receives an uncoloured copy of the log.
	File string
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

func (c LogConfig) level() (log.Level, error) {
	if c.Level != "" {
		lvl, err := log.ParseLevel(c.Level)
		if err != nil {
			return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", c.Level, err)
		}
		return lvl, nil
	}
	if c.Verbose {
		return log.DebugLevel, nil
	}
	return log.InfoLevel, nil
}

func (c LogConfig) timestamps() bool {
	if c.Verbose {
		return true
	}
	return c.Timestamps != nil && *c.Timestamps
}

// SetupLogging configures the global loggers. The returned function closes
// the log file, if any.
func SetupLogging(cfg LogConfig) (func() error, error) {
	level, err := cfg.level()
	if err != nil {
		return nil, err
	}

	stderrLevel := level
	if cfg.Quiet {
		stderrLevel = log.ErrorLevel
	}
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           stderrLevel,
		ReportTimestamp: cfg.timestamps(),
		ReportCaller:    cfg.Verbose,
		TimeFormat:      timeFormat,
	})

	fileLogger = nil
	if cfg.File == "" {
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	// a non-terminal writer gets no colours
	fileLogger = log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
	return func() error {
		fileLogger = nil
		return f.Close()
	}, nil
}

// SetLogWriter redirects the stderr logger, e.g. into a buffer in tests.
func SetLogWriter(w io.Writer) {
	Logger.SetOutput(w)
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
	if fileLogger != nil {
		fileLogger.Debug(msg, keyvals...)
	}
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
	if fileLogger != nil {
		fileLogger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
	if fileLogger != nil {
		fileLogger.Warn(msg, keyvals...)
	}
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
	if fileLogger != nil {
		fileLogger.Error(msg, keyvals...)
	}
}
