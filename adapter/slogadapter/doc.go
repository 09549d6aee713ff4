// Package slogadapter lets log/slog write through a dailylog Logger.
//
//	slog.SetDefault(slog.New(slogadapter.New(factory.Get())))
//
// Attributes are flattened into fields; group names become dotted key
// prefixes.
package slogadapter
