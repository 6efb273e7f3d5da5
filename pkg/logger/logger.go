// Package logger provides the structured logger shared by the CLI, the HTTP
// surface and the services. It wraps log/slog so every component logs with
// the same handler, level and format.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu       sync.RWMutex
	root     *slog.Logger
	levelVar slog.LevelVar
)

// Init configures the global logger. Text output is used unless jsonFormat is set.
func Init(level slog.Level, jsonFormat bool) {
	InitWithWriter(os.Stdout, level, jsonFormat)
}

// InitWithWriter is Init with an explicit destination, used by tests.
func InitWithWriter(w io.Writer, level slog.Level, jsonFormat bool) {
	levelVar.Set(level)
	opts := &slog.HandlerOptions{
		Level:     &levelVar,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	mu.Lock()
	root = slog.New(handler)
	mu.Unlock()
	slog.SetDefault(root)
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// SetLevel changes the level of the global logger at runtime
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// L returns the global logger, initializing a text logger at info level on first use.
func L() *slog.Logger {
	mu.RLock()
	l := root
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(slog.LevelInfo, false)
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Component returns a logger tagged with the component name.
//
//	log := logger.Component("picks")
//	log.Info("saved picks", "event_id", id, "inserted", n)
func Component(name string) *slog.Logger {
	return L().With("component", name)
}
