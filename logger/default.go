package logger

import (
	"fmt"
	"sync"

	"github.com/philipp01105/dailylog/core"
	"github.com/philipp01105/dailylog/handler/consolehandler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	// colorized lines on stdout until something calls SetDefault
	defaultLogger = NewBuilder().
		WithHandler(consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{})).
		WithLevel(core.InfoLevel).
		Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger. They call
// log directly so caller and stack capture see the right frames.

// Log logs at level using the default logger
func Log(level core.Level, msg interface{}, args ...interface{}) {
	if l := Default(); l.Enabled(level) {
		l.log(0, l.now(), level, msg, args)
	}
}

// Debug logs a debug message using the default logger
func Debug(msg interface{}, args ...interface{}) {
	if l := Default(); l.Enabled(core.DebugLevel) {
		l.log(0, l.now(), core.DebugLevel, msg, args)
	}
}

// Info logs an info message using the default logger
func Info(msg interface{}, args ...interface{}) {
	if l := Default(); l.Enabled(core.InfoLevel) {
		l.log(0, l.now(), core.InfoLevel, msg, args)
	}
}

// Warn logs a warning message using the default logger
func Warn(msg interface{}, args ...interface{}) {
	if l := Default(); l.Enabled(core.WarnLevel) {
		l.log(0, l.now(), core.WarnLevel, msg, args)
	}
}

// Error logs an error message using the default logger
func Error(msg interface{}, args ...interface{}) {
	if l := Default(); l.Enabled(core.ErrorLevel) {
		l.log(0, l.now(), core.ErrorLevel, msg, args)
	}
}

// Fatal logs a fatal message using the default logger and exits the program
func Fatal(msg interface{}, args ...interface{}) {
	Default().logAndExit(1, msg, args)
}

// Panic logs a panic message using the default logger and panics
func Panic(msg interface{}, args ...interface{}) {
	Default().logAndPanic(1, msg, args)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	if l := Default(); l.Enabled(core.DebugLevel) {
		l.log(0, l.now(), core.DebugLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	if l := Default(); l.Enabled(core.InfoLevel) {
		l.log(0, l.now(), core.InfoLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...interface{}) {
	if l := Default(); l.Enabled(core.WarnLevel) {
		l.log(0, l.now(), core.WarnLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	if l := Default(); l.Enabled(core.ErrorLevel) {
		l.log(0, l.now(), core.ErrorLevel, fmt.Sprintf(format, args...), nil)
	}
}

// Fatalf logs a formatted fatal message using the default logger and exits the program
func Fatalf(format string, args ...interface{}) {
	Default().logAndExit(1, fmt.Sprintf(format, args...), nil)
}

// Panicf logs a formatted panic message using the default logger and panics
func Panicf(format string, args ...interface{}) {
	Default().logAndPanic(1, fmt.Sprintf(format, args...), nil)
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}

// Flush flushes the default logger
func Flush() error {
	return Default().Flush()
}
