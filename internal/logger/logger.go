package logger

import (
	"log/slog"
	"os"
	"strings"
)

// process-wide logger, configured once at startup
var defaultLogger = newLogger()

// builds the logger from the environment. the devserver runs with
// FRAMEGEN_ENV=production and logs JSON on stdout for log shippers;
// everything else - the CLI, the TUI, tests - logs text on stderr so
// log lines stay out of command output.
func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: level()}

	if production() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// resolves FRAMEGEN_LOG_LEVEL; unset means info in production and
// debug everywhere else
func level() slog.Level {
	switch strings.ToLower(os.Getenv("FRAMEGEN_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if production() {
		return slog.LevelInfo
	}

	return slog.LevelDebug
}

func production() bool {
	return os.Getenv("FRAMEGEN_ENV") == "production"
}

// logs a debug message
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// logs an info message
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// logs a warning message
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// logs an error message
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// logs an error with context
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Error(msg, args...)
}

// logs a fatal error and exits (for CLI tools)
func Fatal(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
	os.Exit(1)
}
