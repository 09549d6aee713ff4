// Package consolehandler provides the console transport: rendered log
// entries written to any io.Writer (default: os.Stdout), with colorized
// level labels unless a different Formatter is configured.
//
// NewConsoleHandler returns a synchronous ConsoleHandler, or the same
// handler behind an asynchandler queue when Async is set.
package consolehandler
