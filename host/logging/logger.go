package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Logger is a duck-typed interface satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	moduleLoggers   = make(map[string]*slog.Logger)
	moduleLevelVars = make(map[string]*slog.LevelVar)
	globalConfig    Config
	isInitialized   bool
	mutex           sync.RWMutex
)

var output io.Writer = os.Stderr

// Config represents logging configuration.
type Config struct {
	Level   string            `toml:"level"`
	Format  string            `toml:"format"`
	Modules map[string]string `toml:"modules"`
}

// Initialize sets up the logging system.
// Loggers handed out earlier pick up the new levels and format.
func Initialize(config Config) {
	mutex.Lock()
	defer mutex.Unlock()

	globalConfig = config
	isInitialized = true

	for module, levelVar := range moduleLevelVars {
		levelVar.Set(moduleLevel(module))
		moduleLoggers[module] = slog.New(createHandler(config.Format, levelVar)).With("module", module)
	}

	globalLevel := &slog.LevelVar{}
	globalLevel.Set(levelOrDefault(config.Level))
	slog.SetDefault(slog.New(createHandler(config.Format, globalLevel)))
}

// SetOutput redirects all loggers created afterwards.
func SetOutput(w io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	output = w
}

// GetLogger returns a logger for the specified module, creating it if needed.
func GetLogger(module string) *slog.Logger {
	mutex.RLock()
	if logger, exists := moduleLoggers[module]; exists {
		mutex.RUnlock()
		return logger
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	if logger, exists := moduleLoggers[module]; exists {
		return logger
	}

	levelVar := &slog.LevelVar{}
	format := "text"
	if isInitialized {
		levelVar.Set(moduleLevel(module))
		format = globalConfig.Format
	} else {
		levelVar.Set(slog.LevelInfo)
	}

	logger := slog.New(createHandler(format, levelVar)).With("module", module)
	moduleLoggers[module] = logger
	moduleLevelVars[module] = levelVar
	return logger
}

// moduleLevel resolves the level for a module; caller holds mutex.
func moduleLevel(module string) slog.Level {
	if levelStr, exists := globalConfig.Modules[module]; exists {
		if parsed := parseLevel(levelStr); parsed != nil {
			return *parsed
		}
	}
	return levelOrDefault(globalConfig.Level)
}

func createHandler(format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(output, opts)
	}
	return slog.NewTextHandler(output, opts)
}

func levelOrDefault(level string) slog.Level {
	if parsed := parseLevel(level); parsed != nil {
		return *parsed
	}
	return slog.LevelInfo
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) *slog.Level {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return nil
	}
	return &l
}
