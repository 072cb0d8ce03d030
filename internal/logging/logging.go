// Package logging provides the zerolog plumbing shared by every facedeck
// component: logger construction, context propagation, and component-scoped
// child loggers.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Log output formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Log output destinations.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// logFilePerm is the mode for created log files.
const logFilePerm = 0600

// Config describes how to build a logger.
type Config struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	// Unparseable or empty levels fall back to info.
	Level string

	// Format selects console, json, or auto. Auto picks console when stderr
	// is a terminal and json otherwise.
	Format string

	// Output selects stderr, stdout, or file.
	Output string

	// File is the log file path when Output is "file".
	File string

	// Caller adds the caller field to every event.
	Caller bool
}

// LogPathResult reports where NewLoggerWithPath actually sent log output,
// including the fallback taken when a file sink could not be opened.
type LogPathResult struct {
	Logger         zerolog.Logger
	UsingFile      bool
	FilePath       string
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file handle, if one is open.
func (r *LogPathResult) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// New builds a logger writing to the configured output. File sinks are not
// opened here; use NewLoggerWithPath when Output is "file".
func New(cfg Config) zerolog.Logger {
	var out io.Writer = os.Stderr
	if cfg.Output == OutputStdout {
		out = os.Stdout
	}
	return build(cfg, out)
}

// NewLoggerWithPath builds a logger, opening the configured log file in
// append mode when Output is "file". If the file cannot be opened the
// logger falls back to stderr and the result records why.
func NewLoggerWithPath(cfg Config) LogPathResult {
	if cfg.Output != OutputFile || cfg.File == "" {
		return LogPathResult{Logger: New(cfg)}
	}

	file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFilePerm)
	if err != nil {
		return LogPathResult{
			Logger:         New(Config{Level: cfg.Level, Format: cfg.Format, Caller: cfg.Caller}),
			FallbackUsed:   true,
			FallbackReason: err.Error(),
		}
	}

	fileCfg := cfg
	// Console formatting makes no sense inside a file sink.
	fileCfg.Format = FormatJSON
	return LogPathResult{
		Logger:    build(fileCfg, file),
		UsingFile: true,
		FilePath:  cfg.File,
		file:      file,
	}
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none was attached. Attach one with zerolog's Logger.WithContext.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// ComponentLogger returns a child logger with the component field bound.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where file logging landed.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user file logging fell back to stderr.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file (%s), logging to stderr\n", reason)
}

func build(cfg Config, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	if resolveFormat(cfg.Format) == FormatConsole {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	logCtx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		logCtx = logCtx.Caller()
	}
	return logCtx.Logger()
}

func resolveFormat(format string) string {
	switch format {
	case FormatConsole, FormatJSON:
		return format
	default:
		if term.IsTerminal(int(os.Stderr.Fd())) {
			return FormatConsole
		}
		return FormatJSON
	}
}
