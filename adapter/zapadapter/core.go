package zapadapter

import (
	"sort"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/dailylog/core"
	"github.com/philipp01105/dailylog/logger"
)

// Core is a zapcore.Core that writes through a Logger. It lets libraries
// that take a *zap.Logger share the process-wide sinks.
type Core struct {
	log    *logger.Logger
	fields []core.Field
}

// NewCore returns a zapcore.Core writing to log.
func NewCore(log *logger.Logger) *Core {
	return &Core{log: log}
}

// Enabled reports whether the wrapped Logger accepts records at level.
func (c *Core) Enabled(level zapcore.Level) bool {
	return c.log.Enabled(Level(level))
}

// With returns a Core that adds fields to every record.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	if len(fields) == 0 {
		return c
	}
	merged := make([]core.Field, len(c.fields), len(c.fields)+len(fields))
	copy(merged, c.fields)
	return &Core{log: c.log, fields: appendFields(merged, fields)}
}

// Check adds c to ce when the entry is enabled.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write emits one record. Entries above error level are flushed before
// Write returns since zap exits or panics right after.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	all := make([]core.Field, 0, len(c.fields)+len(fields)+2)
	if ent.LoggerName != "" {
		all = append(all, logger.String("logger", ent.LoggerName))
	}
	all = append(all, c.fields...)
	all = appendFields(all, fields)
	if ent.Stack != "" {
		all = append(all, logger.String("stacktrace", ent.Stack))
	}

	args := make([]interface{}, len(all))
	for i, f := range all {
		args[i] = f
	}
	c.log.Emit(ent.Time, Level(ent.Level), ent.Message, args...)

	if ent.Level > zapcore.ErrorLevel {
		return c.Sync()
	}
	return nil
}

// Sync flushes the wrapped Logger.
func (c *Core) Sync() error {
	return c.log.Flush()
}

// Level maps a zap level onto a Logger level. DPanic is logged as an
// error.
func Level(level zapcore.Level) core.Level {
	switch {
	case level <= zapcore.DebugLevel:
		return core.DebugLevel
	case level == zapcore.InfoLevel:
		return core.InfoLevel
	case level == zapcore.WarnLevel:
		return core.WarnLevel
	case level <= zapcore.DPanicLevel:
		return core.ErrorLevel
	case level == zapcore.PanicLevel:
		return core.PanicLevel
	default:
		return core.FatalLevel
	}
}

// appendFields converts zap fields, in order. Each field is encoded on
// its own so objects and arrays keep their zap rendering; namespaces are
// not supported and are skipped.
func appendFields(dst []core.Field, fields []zapcore.Field) []core.Field {
	for _, f := range fields {
		switch f.Type {
		case zapcore.SkipType, zapcore.NamespaceType:
			continue
		case zapcore.ErrorType:
			if err, ok := f.Interface.(error); ok && err != nil {
				dst = append(dst, core.Field{Key: f.Key, Type: core.ErrorType, Str: err.Error()})
			}
			continue
		}

		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)
		keys := make([]string, 0, len(enc.Fields))
		for k := range enc.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			dst = append(dst, toField(k, enc.Fields[k]))
		}
	}
	return dst
}

func toField(key string, v interface{}) core.Field {
	switch val := v.(type) {
	case string:
		return logger.String(key, val)
	case int64:
		return logger.Int64(key, val)
	case int:
		return logger.Int(key, val)
	case float64:
		return logger.Float64(key, val)
	case bool:
		return logger.Bool(key, val)
	case time.Time:
		return logger.Time(key, val)
	case time.Duration:
		return logger.Duration(key, val)
	default:
		return logger.Any(key, val)
	}
}
