// Package filehandler provides the daily rotating file transport.
//
// Entries are written to <Dir>/<date>.log, one file per day named with
// DatePattern. Inside a day lumberjack caps each file at MaxSize and moves
// the overflow to timestamped backups. Dated files older than MaxDays are
// removed, and every dated file is recorded with its md5 hash in an audit
// file (hash-audit.json by default) that uses the winston-daily-rotate-file
// layout, so existing tooling can read it.
//
// NewFileHandler returns a synchronous FileHandler, or the same handler
// behind an asynchandler queue when Async is set.
package filehandler
