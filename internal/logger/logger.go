// Package logger configures the structured logger handed to the allocator.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger instance. It's initialized to discard all output by default.
// Call Init() to enable logging.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	defaultName   = "buddy"
	logSuffix     = ".log"
	retentionDays = 30
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Name    string     // Log file prefix, e.g. "buddyctl". Default: "buddy"
	LogDir  string     // Write JSON logs to a dated file in this directory instead of stderr
	Level   slog.Level // Minimum log level. Default: LevelDebug when enabled
	Stderr  io.Writer  // Text handler destination when LogDir is empty. Default: os.Stderr
}

// Init configures logging. Call before building a pool.
// If opts.Enabled is false, all log output is discarded.
func Init(opts Options) (func() error, error) {
	noop := func() error { return nil }
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return noop, nil
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.LogDir == "" {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		L = slog.New(slog.NewTextHandler(w, handlerOpts))
		return noop, nil
	}

	if err := os.MkdirAll(opts.LogDir, 0o755); err != nil {
		return noop, err
	}

	prefix := opts.Name
	if prefix == "" {
		prefix = defaultName
	}
	prefix += "-"

	// Clean up old logs (best-effort, ignore errors)
	cleanOldLogs(opts.LogDir, prefix, time.Now())

	filename := filepath.Join(opts.LogDir, prefix+time.Now().Format("2006-01-02")+logSuffix)
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return noop, err
	}

	L = slog.New(slog.NewJSONHandler(f, handlerOpts))
	return f.Close, nil
}

// cleanOldLogs removes log files older than retentionDays.
func cleanOldLogs(logDir, prefix string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		// Parse date from filename: buddyctl-2024-01-05.log
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), prefix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}
