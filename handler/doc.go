// Package handler provides the Handler interface shared by all log
// transports, plus the pieces that are not tied to one destination.
//
// A Handler receives entries that the logger has already run through the
// formatter pipeline, renders them with its own Formatter and writes them
// out. The built-in transports live in sub-packages:
//
//   - consolehandler writes to an io.Writer (default: stdout), usually with
//     colorized level labels.
//   - filehandler writes to one file per day under a logs directory, caps
//     file size, expires old days and keeps an audit file of what it wrote.
//   - asynchandler puts any Handler behind a bounded queue drained by a
//     background goroutine.
//
// MultiHandler fans one entry out to several children and reports every
// child failure, combined with go.uber.org/multierr.
//
// When an async queue is full, the per-level OverflowPolicy decides:
// DropNewest (default for debug, info and warn), DropOldest, or Block with
// a timeout (default for error and worse). Stats counts dropped, blocked,
// processed and failed entries.
package handler
