package logger

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/dailylog/core"
	"github.com/philipp01105/dailylog/formatter"
	"github.com/philipp01105/dailylog/handler"
)

// osExit is a variable to allow overriding os.Exit in tests
var osExit = os.Exit

// ErrorHandler receives failures the logger cannot return to the caller:
// pipeline errors (a value that could not be serialized) and handler write
// errors.
type ErrorHandler func(err error)

// StderrErrorHandler writes the error as one line to os.Stderr.
func StderrErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "dailylog: %v\n", err)
}

// Logger is the main logging interface (immutable)
type Logger struct {
	handler       handler.Handler
	level         core.Level
	fields        []core.Field
	pipeline      formatter.Pipeline
	onError       ErrorHandler
	now           func() time.Time
	includeCaller bool
	callerSkip    int
	recycleEntry  bool
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	handler       handler.Handler
	level         core.Level
	fields        []core.Field
	pipeline      formatter.Pipeline
	onError       ErrorHandler
	now           func() time.Time
	includeCaller bool
	callerSkip    int
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.InfoLevel,
		pipeline:   formatter.DefaultPipeline(formatter.DefaultTimestampFormat),
		onError:    StderrErrorHandler,
		now:        time.Now,
		callerSkip: 3, // GetCaller, log, the exported method
	}
}

// WithHandler sets the handler
func (b *Builder) WithHandler(h handler.Handler) *Builder {
	b.handler = h
	return b
}

// WithLevel sets the minimum level
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithFields adds default fields to all log entries
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithPipeline replaces the formatter pipeline run on every record.
func (b *Builder) WithPipeline(p formatter.Pipeline) *Builder {
	b.pipeline = p
	return b
}

// WithErrorHandler sets where logging failures go. nil discards them.
func (b *Builder) WithErrorHandler(fn ErrorHandler) *Builder {
	b.onError = fn
	return b
}

// WithClock sets the time source used to stamp records.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	return &Logger{
		handler:       b.handler,
		level:         b.level,
		fields:        append([]core.Field(nil), b.fields...),
		pipeline:      b.pipeline,
		onError:       b.onError,
		now:           b.now,
		includeCaller: b.includeCaller,
		callerSkip:    b.callerSkip,
		recycleEntry:  b.handler != nil && handler.CanRecycle(b.handler),
	}
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	child := *l
	child.fields = newFields
	return &child
}

// Level returns the minimum level
func (l *Logger) Level() core.Level {
	return l.level
}

// Enabled reports whether records at level pass the level gate.
func (l *Logger) Enabled(level core.Level) bool {
	return level >= l.level
}

// Handler returns the handler records are dispatched to.
func (l *Logger) Handler() handler.Handler {
	return l.handler
}

// Log logs msg at the specified level. msg may be any value: strings are
// interpolated with args, everything else is rendered as JSON. core.Field
// args become structured fields and an error arg becomes the record error.
func (l *Logger) Log(level core.Level, msg interface{}, args ...interface{}) {
	if level < l.level {
		return
	}
	l.log(0, l.now(), level, msg, args)
}

// Emit logs with an explicit time and without the exit or panic that Fatal
// and Panic imply. It is meant for bridges from other logging APIs.
func (l *Logger) Emit(t time.Time, level core.Level, msg interface{}, args ...interface{}) {
	if level < l.level {
		return
	}
	if t.IsZero() {
		t = l.now()
	}
	l.log(0, t, level, msg, args)
}

// log builds the entry, runs the pipeline once and dispatches it. depth
// counts wrapper frames between the caller and the exported method.
func (l *Logger) log(depth int, t time.Time, level core.Level, msg interface{}, args []interface{}) {
	if l.handler == nil {
		return
	}

	entry := core.GetEntry()
	entry.Time = t
	entry.Level = level
	entry.Value = msg

	if len(l.fields) > 0 {
		entry.Fields = append(entry.Fields, l.fields...)
	}
	hasErr := isError(msg)
	for _, arg := range args {
		if f, ok := arg.(core.Field); ok {
			entry.Fields = append(entry.Fields, f)
			continue
		}
		if isError(arg) {
			hasErr = true
		}
		entry.Args = append(entry.Args, arg)
	}

	if l.includeCaller {
		entry.Caller = core.GetCaller(l.callerSkip + depth)
	}
	if hasErr {
		entry.PCs = core.CaptureStack(l.callerSkip - 1 + depth)
	}

	if err := l.pipeline.Apply(entry); err != nil {
		l.reportError(err)
	}
	if err := l.handler.Handle(entry); err != nil {
		l.reportError(err)
	}

	if l.recycleEntry {
		core.PutEntry(entry)
	}
}

func isError(v interface{}) bool {
	_, ok := v.(error)
	return ok
}

func (l *Logger) reportError(err error) {
	if l.onError != nil {
		l.onError(err)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg interface{}, args ...interface{}) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(0, l.now(), core.DebugLevel, msg, args)
}

// Info logs an info message
func (l *Logger) Info(msg interface{}, args ...interface{}) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(0, l.now(), core.InfoLevel, msg, args)
}

// Warn logs a warning message
func (l *Logger) Warn(msg interface{}, args ...interface{}) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(0, l.now(), core.WarnLevel, msg, args)
}

// Error logs an error message
func (l *Logger) Error(msg interface{}, args ...interface{}) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(0, l.now(), core.ErrorLevel, msg, args)
}

// Fatal logs a fatal message, flushes the handler and exits the program
// with os.Exit(1)
func (l *Logger) Fatal(msg interface{}, args ...interface{}) {
	l.logAndExit(1, msg, args)
}

// Panic logs a panic message, flushes the handler and panics with msg
func (l *Logger) Panic(msg interface{}, args ...interface{}) {
	l.logAndPanic(1, msg, args)
}

func (l *Logger) logAndExit(depth int, msg interface{}, args []interface{}) {
	if core.FatalLevel >= l.level {
		l.log(depth, l.now(), core.FatalLevel, msg, args)
	}
	_ = l.Flush()
	osExit(1)
}

func (l *Logger) logAndPanic(depth int, msg interface{}, args []interface{}) {
	if core.PanicLevel >= l.level {
		l.log(depth, l.now(), core.PanicLevel, msg, args)
	}
	_ = l.Flush()
	panic(msg)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(0, l.now(), core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(0, l.now(), core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(0, l.now(), core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(0, l.now(), core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Fatalf logs a fatal message with formatting and exits the program with os.Exit(1)
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logAndExit(1, fmt.Sprintf(format, args...), nil)
}

// Panicf logs a panic message with formatting and panics
func (l *Logger) Panicf(format string, args ...interface{}) {
	l.logAndPanic(1, fmt.Sprintf(format, args...), nil)
}

// Flush flushes buffered output of the handler, waiting for async queues
// to drain.
func (l *Logger) Flush() error {
	if l.handler == nil {
		return nil
	}
	return handler.Flush(l.handler)
}

// Close flushes and closes the logger's handler. Loggers derived with With
// share the handler and must not be used afterwards.
func (l *Logger) Close() error {
	if l.handler == nil {
		return nil
	}
	return multierr.Append(l.Flush(), l.handler.Close())
}
