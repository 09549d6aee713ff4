// Package core defines the shared types used across dailylog.
//
// It provides the Level type for severity filtering, the Entry type that
// represents a single log record, and the Field type for structured
// key-value metadata.
//
// An Entry starts with what the caller handed to the logger (Value and
// Args) and is completed by the formatter pipeline, which fills in
// Timestamp, Message and Stack exactly once per record. Handlers only read
// the completed entry, so every sink renders the same text.
//
// Entry objects are pooled via sync.Pool. Callers get an Entry with
// GetEntry and return it with PutEntry once every handler has consumed it.
//
// CaptureStack and FormatStack record and render the call-site stack for
// records that carry an error without a stack of their own.
package core
