package benchmark

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/dailylog/adapter/zapadapter"
	"github.com/philipp01105/dailylog/core"
	"github.com/philipp01105/dailylog/formatter"
	"github.com/philipp01105/dailylog/handler"
	"github.com/philipp01105/dailylog/handler/consolehandler"
	"github.com/philipp01105/dailylog/logger"
)

// ---------------------------------------------------------------------------
// Helpers – identical sink for every framework (io.Discard, one line each)
// ---------------------------------------------------------------------------

func newDailylogLogger(w io.Writer, level core.Level) *logger.Logger {
	h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer:    w,
		Formatter: formatter.NewLineFormatter(formatter.LineConfig{}),
	})
	return logger.NewBuilder().
		WithHandler(h).
		WithLevel(level).
		Build()
}

func newZapLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
}

func newSlogLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newLogrusLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	l.SetLevel(level)
	return l
}

func newZerologLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}

// ---------------------------------------------------------------------------
// Scenario 1 – Info message, no arguments
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_InfoNoArgs(b *testing.B) {
	b.Run("dailylog", func(b *testing.B) {
		l := newDailylogLogger(io.Discard, core.InfoLevel)
		defer l.Close()
		b.ReportAllocs()
		for b.Loop() {
			l.Info("info message")
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard, zap.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Info("info message")
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger(io.Discard, slog.LevelInfo)
		b.ReportAllocs()
		for b.Loop() {
			l.Info("info message")
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(io.Discard, logrus.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Info("info message")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(io.Discard, zerolog.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Info().Msg("info message")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 2 – printf-style interpolation
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_Interpolation(b *testing.B) {
	b.Run("dailylog", func(b *testing.B) {
		l := newDailylogLogger(io.Discard, core.InfoLevel)
		defer l.Close()
		b.ReportAllocs()
		for b.Loop() {
			l.Info("user %s fetched %d rows in %v", "ana", 42, 150*time.Millisecond)
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard, zap.InfoLevel).Sugar()
		b.ReportAllocs()
		for b.Loop() {
			l.Infof("user %s fetched %d rows in %v", "ana", 42, 150*time.Millisecond)
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(io.Discard, logrus.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Infof("user %s fetched %d rows in %v", "ana", 42, 150*time.Millisecond)
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(io.Discard, zerolog.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Info().Msgf("user %s fetched %d rows in %v", "ana", 42, 150*time.Millisecond)
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 3 – Structured fields
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_InfoWithFields(b *testing.B) {
	b.Run("dailylog", func(b *testing.B) {
		l := newDailylogLogger(io.Discard, core.InfoLevel)
		defer l.Close()
		b.ReportAllocs()
		for b.Loop() {
			l.Info("request handled",
				logger.String("method", "GET"),
				logger.String("path", "/api/users"),
				logger.Int("status", 200),
				logger.Duration("latency", 150*time.Millisecond),
			)
		}
	})

	b.Run("dailylog_via_zap", func(b *testing.B) {
		l := zap.New(zapadapter.NewCore(newDailylogLogger(io.Discard, core.InfoLevel)))
		b.ReportAllocs()
		for b.Loop() {
			l.Info("request handled",
				zap.String("method", "GET"),
				zap.String("path", "/api/users"),
				zap.Int("status", 200),
				zap.Duration("latency", 150*time.Millisecond),
			)
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard, zap.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Info("request handled",
				zap.String("method", "GET"),
				zap.String("path", "/api/users"),
				zap.Int("status", 200),
				zap.Duration("latency", 150*time.Millisecond),
			)
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger(io.Discard, slog.LevelInfo)
		b.ReportAllocs()
		for b.Loop() {
			l.Info("request handled",
				slog.String("method", "GET"),
				slog.String("path", "/api/users"),
				slog.Int("status", 200),
				slog.Duration("latency", 150*time.Millisecond),
			)
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(io.Discard, logrus.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.WithFields(logrus.Fields{
				"method":  "GET",
				"path":    "/api/users",
				"status":  200,
				"latency": 150 * time.Millisecond,
			}).Info("request handled")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(io.Discard, zerolog.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Info().
				Str("method", "GET").
				Str("path", "/api/users").
				Int("status", 200).
				Dur("latency", 150*time.Millisecond).
				Msg("request handled")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 4 – Non-string message rendered as JSON
// ---------------------------------------------------------------------------

type order struct {
	ID     uint64  `json:"id"`
	Status string  `json:"status"`
	Total  float64 `json:"total"`
}

func BenchmarkCompetitive_ObjectMessage(b *testing.B) {
	o := order{ID: 9007199254740993, Status: "paid", Total: 19.99}

	b.Run("dailylog", func(b *testing.B) {
		l := newDailylogLogger(io.Discard, core.InfoLevel)
		defer l.Close()
		b.ReportAllocs()
		for b.Loop() {
			l.Info(o)
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard, zap.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Info("", zap.Any("order", o))
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(io.Discard, zerolog.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Info().Interface("order", o).Send()
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 5 – Error with stack trace
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_ErrorWithStack(b *testing.B) {
	err := errors.New("connection reset")

	b.Run("dailylog", func(b *testing.B) {
		l := newDailylogLogger(io.Discard, core.InfoLevel)
		defer l.Close()
		b.ReportAllocs()
		for b.Loop() {
			l.Error("query failed:", err)
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard, zap.InfoLevel).WithOptions(zap.AddStacktrace(zap.ErrorLevel))
		b.ReportAllocs()
		for b.Loop() {
			l.Error("query failed", zap.Error(err))
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(io.Discard, logrus.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.WithError(err).Error("query failed")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 6 – Disabled level (level-check overhead)
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_DisabledLevel(b *testing.B) {
	b.Run("dailylog", func(b *testing.B) {
		l := newDailylogLogger(io.Discard, core.InfoLevel)
		defer l.Close()
		b.ReportAllocs()
		for b.Loop() {
			l.Debug("debug message", logger.String("key", "value"))
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard, zap.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Debug("debug message", zap.String("key", "value"))
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger(io.Discard, slog.LevelInfo)
		b.ReportAllocs()
		for b.Loop() {
			l.Debug("debug message", slog.String("key", "value"))
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(io.Discard, logrus.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.WithField("key", "value").Debug("debug message")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(io.Discard, zerolog.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Debug().Str("key", "value").Msg("debug message")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 7 – Parallel logging
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_Parallel(b *testing.B) {
	b.Run("dailylog", func(b *testing.B) {
		l := newDailylogLogger(io.Discard, core.InfoLevel)
		defer l.Close()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("parallel log %d", 42, logger.String("key", "value"))
			}
		})
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard, zap.InfoLevel)
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("parallel log 42", zap.String("key", "value"))
			}
		})
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(io.Discard, zerolog.InfoLevel)
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info().Str("key", "value").Msg("parallel log 42")
			}
		})
	})
}

// ---------------------------------------------------------------------------
// Scenario 8 – File output (real I/O, equal conditions)
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_FileOutput(b *testing.B) {
	b.Run("dailylog", func(b *testing.B) {
		f, err := os.CreateTemp(b.TempDir(), "bench-dailylog-*.log")
		if err != nil {
			b.Fatal(err)
		}
		l := newDailylogLogger(f, core.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Info("file log", logger.String("key", "value"))
		}
		b.StopTimer()
		l.Close()
		f.Close()
	})

	b.Run("dailylog_async", func(b *testing.B) {
		f, err := os.CreateTemp(b.TempDir(), "bench-dailylog-async-*.log")
		if err != nil {
			b.Fatal(err)
		}
		h := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
			Writer:         f,
			Formatter:      formatter.NewLineFormatter(formatter.LineConfig{}),
			Async:          true,
			BufferSize:     8192,
			OverflowPolicy: map[core.Level]handler.OverflowPolicy{core.InfoLevel: handler.Block},
		})
		l := logger.NewBuilder().WithHandler(h).Build()
		b.ReportAllocs()
		for b.Loop() {
			l.Info("file log", logger.String("key", "value"))
		}
		b.StopTimer()
		l.Close()
		f.Close()
	})

	b.Run("zap", func(b *testing.B) {
		f, err := os.CreateTemp(b.TempDir(), "bench-zap-*.log")
		if err != nil {
			b.Fatal(err)
		}
		l := newZapLogger(f, zap.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Info("file log", zap.String("key", "value"))
		}
		b.StopTimer()
		l.Sync()
		f.Close()
	})

	b.Run("logrus", func(b *testing.B) {
		f, err := os.CreateTemp(b.TempDir(), "bench-logrus-*.log")
		if err != nil {
			b.Fatal(err)
		}
		l := newLogrusLogger(f, logrus.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.WithField("key", "value").Info("file log")
		}
		b.StopTimer()
		f.Close()
	})

	b.Run("zerolog", func(b *testing.B) {
		f, err := os.CreateTemp(b.TempDir(), "bench-zerolog-*.log")
		if err != nil {
			b.Fatal(err)
		}
		l := newZerologLogger(f, zerolog.InfoLevel)
		b.ReportAllocs()
		for b.Loop() {
			l.Info().Str("key", "value").Msg("file log")
		}
		b.StopTimer()
		f.Close()
	})
}
