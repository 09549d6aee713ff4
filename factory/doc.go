// Package factory builds the process-wide logger.
//
// Get reads the configuration from the environment once and returns the
// same Logger on every call:
//
//	log := factory.Get()
//	log.Info("server listening on %s", addr)
//	defer factory.Close()
//
// The logger writes records at info level and above. Each record is
// rendered as
//
//	[<level>][<YYYY-MM-DD HH:mm:ss>]: <message>
//
// and sent to up to two sinks:
//
//   - a daily rotating file, ./logs/<date>.log, capped at 20MB per file and
//     kept for 14 days, with an audit of the dated files in
//     ./logs/hash-audit.json. Only enabled when ServerEnvironment reports
//     a local disk.
//   - the console, unless APP_ENV is "production".
//
// New builds a logger from an explicit Config for callers that do not want
// the environment-driven singleton.
package factory
