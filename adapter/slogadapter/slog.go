package slogadapter

import (
	"context"
	"log/slog"

	"github.com/philipp01105/dailylog/core"
	"github.com/philipp01105/dailylog/logger"
)

// Handler implements slog.Handler on top of a Logger, so code written
// against log/slog ends up in the same sinks as the rest of the process.
type Handler struct {
	log   *logger.Logger
	attrs []core.Field
	group string
}

// New returns a slog.Handler writing through log. The Logger's level
// decides which records are enabled.
func New(log *logger.Logger) *Handler {
	return &Handler{log: log}
}

// Enabled reports whether the wrapped Logger accepts records at level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.log.Enabled(Level(level))
}

// Handle converts record into a Logger record. Attributes become fields;
// the message is never interpolated.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	args := make([]interface{}, 0, len(h.attrs)+record.NumAttrs())
	for _, f := range h.attrs {
		args = append(args, f)
	}
	record.Attrs(func(a slog.Attr) bool {
		for _, f := range appendAttr(nil, h.group, a) {
			args = append(args, f)
		}
		return true
	})

	h.log.Emit(record.Time, Level(record.Level), record.Message, args...)
	return nil
}

// WithAttrs returns a Handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	fields := make([]core.Field, len(h.attrs), len(h.attrs)+len(attrs))
	copy(fields, h.attrs)
	for _, a := range attrs {
		fields = appendAttr(fields, h.group, a)
	}
	return &Handler{log: h.log, attrs: fields, group: h.group}
}

// WithGroup returns a Handler that qualifies later attribute keys with
// name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &Handler{log: h.log, attrs: h.attrs, group: joinKey(h.group, name)}
}

// Level maps a slog level onto the nearest Logger level at or below it.
func Level(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttr flattens a into fields with dotted keys. Empty attributes are
// dropped and groups with an empty key are inlined, as slog.Handler requires.
func appendAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return fields
		}
		prefix := group
		if a.Key != "" {
			prefix = joinKey(group, a.Key)
		}
		for _, ga := range attrs {
			fields = appendAttr(fields, prefix, ga)
		}
		return fields
	}

	key := joinKey(group, a.Key)
	switch a.Value.Kind() {
	case slog.KindString:
		return append(fields, logger.String(key, a.Value.String()))
	case slog.KindInt64:
		return append(fields, logger.Int64(key, a.Value.Int64()))
	case slog.KindUint64:
		return append(fields, logger.Uint64(key, a.Value.Uint64()))
	case slog.KindFloat64:
		return append(fields, logger.Float64(key, a.Value.Float64()))
	case slog.KindBool:
		return append(fields, logger.Bool(key, a.Value.Bool()))
	case slog.KindTime:
		return append(fields, logger.Time(key, a.Value.Time()))
	case slog.KindDuration:
		return append(fields, logger.Duration(key, a.Value.Duration()))
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(fields, core.Field{Key: key, Type: core.ErrorType, Str: err.Error()})
		}
		return append(fields, logger.Any(key, a.Value.Any()))
	}
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}
