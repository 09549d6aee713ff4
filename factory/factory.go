package factory

import (
	"fmt"
	"sync"

	"github.com/philipp01105/dailylog/core"
	"github.com/philipp01105/dailylog/formatter"
	"github.com/philipp01105/dailylog/handler"
	"github.com/philipp01105/dailylog/handler/consolehandler"
	"github.com/philipp01105/dailylog/handler/filehandler"
	"github.com/philipp01105/dailylog/logger"
)

var (
	once     sync.Once
	instance *logger.Logger
)

// Get returns the process-wide logger, building it from the environment on
// the first call. Every call returns the same Logger, which is also
// installed as logger.Default. Get panics when the environment describes an
// invalid configuration or the logs directory cannot be created, since the
// process would otherwise run without logs.
func Get() *logger.Logger {
	once.Do(func() {
		cfg, err := ConfigFromEnv()
		if err != nil {
			panic(err)
		}
		l, err := New(cfg)
		if err != nil {
			panic(err)
		}
		instance = l
		logger.SetDefault(l)
	})
	return instance
}

// Close flushes and closes the process-wide logger if Get built one.
func Close() error {
	if instance == nil {
		return nil
	}
	return instance.Close()
}

// New builds a logger from cfg. Records at or above cfg.MinLevel go through
// the default formatter pipeline once and then to each enabled sink: the
// daily rotating file first, then the console.
func New(cfg Config) (*logger.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		handlers []handler.Handler
		fields   []core.Field
	)

	if cfg.EnableFileRotation {
		fh, err := newFileHandler(cfg)
		if err != nil {
			return nil, fmt.Errorf("create file transport: %w", err)
		}
		handlers = append(handlers, fh)
		fields = append(fields, logger.String(AuditFileField, cfg.AuditFilePath()))
	}

	if cfg.EnableConsole {
		handlers = append(handlers, newConsoleHandler(cfg))
	}

	b := logger.NewBuilder().
		WithLevel(cfg.MinLevel).
		WithPipeline(formatter.DefaultPipeline(cfg.TimestampFormat)).
		WithFields(fields...).
		WithClock(cfg.Clock)

	switch len(handlers) {
	case 0:
	case 1:
		b.WithHandler(handlers[0])
	default:
		b.WithHandler(handler.NewMultiHandler(handlers...))
	}
	return b.Build(), nil
}

func newFileHandler(cfg Config) (handler.Handler, error) {
	var f formatter.Formatter
	if cfg.FileFormat == FileFormatJSON {
		f = formatter.NewJSONFormatter(formatter.Config{TimestampFormat: cfg.TimestampFormat})
	} else {
		f = formatter.NewLineFormatter(formatter.LineConfig{
			Config: formatter.Config{TimestampFormat: cfg.TimestampFormat},
		})
	}

	maxDays := cfg.MaxRetentionDays
	if maxDays == 0 {
		maxDays = -1
	}

	return filehandler.NewFileHandler(filehandler.FileConfig{
		Dir:         cfg.LogsDirectory,
		DatePattern: cfg.DatePattern,
		MaxSize:     cfg.MaxFileSizeBytes,
		MaxDays:     maxDays,
		AuditFile:   cfg.AuditFilePath(),
		Formatter:   f,
		Async:       cfg.Async,
		BufferSize:  cfg.BufferSize,
		Now:         cfg.Clock,
	})
}

func newConsoleHandler(cfg Config) handler.Handler {
	return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer: cfg.ConsoleWriter,
		Formatter: formatter.NewLineFormatter(formatter.LineConfig{
			Config:   formatter.Config{TimestampFormat: cfg.TimestampFormat},
			Colorize: cfg.ConsoleColor,
		}),
		Async:      cfg.Async,
		BufferSize: cfg.BufferSize,
	})
}
