// Package logger is the public logging API of dailylog.
//
// A Logger is immutable after construction: the level, default fields,
// formatter pipeline and handler are set once via the Builder. It is safe
// for concurrent use without locking on the read path.
//
// Messages may be any value. A string is interpolated printf-style with the
// arguments that follow it; any other value is rendered as JSON that keeps
// every digit of large integers:
//
//	log.Info("user %s signed in", name)
//	log.Info(order) // {"id":9007199254740993,...}
//
// core.Field arguments (String, Int, Any, ...) are attached as structured
// fields rather than interpolated. An error argument, or an error logged as
// the message, becomes the record error and its stack trace is rendered
// after the line.
//
// The formatter pipeline runs once per record before the handler sees it,
// so every sink renders the same message and timestamp. Failures that
// cannot be returned to the caller (a value that does not serialize, a sink
// that cannot write) go to the ErrorHandler, one stderr line by default.
//
// The package keeps a default Logger (colorized lines on stdout, info
// level) used by the package-level functions. The factory package replaces
// it with the configured process-wide logger.
package logger
