package factory

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/philipp01105/dailylog/core"
	"github.com/philipp01105/dailylog/formatter"
	"github.com/philipp01105/dailylog/handler/filehandler"
)

var (
	ErrInvalidConfig        = errors.New("logger config not valid")
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")
)

// ProductionEnvironment is the deployment mode that turns the console off.
const ProductionEnvironment = "production"

// File formats for the rotating file sink.
const (
	FileFormatText = "text"
	FileFormatJSON = "json"
)

// AuditFileField is the default metadata key carrying the audit file path
// when file rotation is on.
const AuditFileField = "nodeAuditFile"

// Config describes the process-wide logger. New is a pure function of it
// plus the file system.
type Config struct {
	MinLevel           core.Level
	Environment        string
	EnableConsole      bool
	EnableFileRotation bool
	LogsDirectory      string
	AuditFileName      string
	MaxFileSizeBytes   int64
	// MaxRetentionDays of 0 keeps dated files forever
	MaxRetentionDays int
	TimestampFormat  string
	DatePattern      string
	ConsoleColor     bool
	FileFormat       string
	Async            bool
	BufferSize       int

	// ConsoleWriter replaces os.Stdout for the console sink
	ConsoleWriter io.Writer
	// Clock replaces time.Now for timestamps and file dates
	Clock func() time.Time
}

// envConfig is the environment layout read by ConfigFromEnv.
type envConfig struct {
	Environment      string     `env:"APP_ENV" envDefault:"development"`
	Level            core.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogsDirectory    string     `env:"LOG_DIR" envDefault:"./logs"`
	MaxFileSizeBytes int64      `env:"LOG_MAX_SIZE" envDefault:"20971520"`
	MaxRetentionDays int        `env:"LOG_MAX_DAYS" envDefault:"14"`
	FileRotation     bool       `env:"LOG_FILE_ROTATION" envDefault:"true"`
	FileFormat       string     `env:"LOG_FILE_FORMAT" envDefault:"text"`
	Color            bool       `env:"LOG_COLOR" envDefault:"true"`
	Async            bool       `env:"LOG_ASYNC" envDefault:"false"`
	BufferSize       int        `env:"LOG_BUFFER_SIZE" envDefault:"1000"`
}

// DefaultConfig returns the configuration used when nothing is set: info
// level, console on, file rotation wherever the runtime has a local disk.
func DefaultConfig() Config {
	return Config{
		MinLevel:           core.InfoLevel,
		Environment:        "development",
		EnableConsole:      true,
		EnableFileRotation: ServerEnvironment(),
		LogsDirectory:      filehandler.DefaultDir,
		AuditFileName:      filehandler.DefaultAuditName,
		MaxFileSizeBytes:   filehandler.DefaultMaxSize,
		MaxRetentionDays:   filehandler.DefaultMaxDays,
		TimestampFormat:    formatter.DefaultTimestampFormat,
		DatePattern:        filehandler.DefaultDatePattern,
		ConsoleColor:       true,
		FileFormat:         FileFormatText,
		BufferSize:         1000,
	}
}

// ConfigFromEnv reads the configuration from environment variables.
// The console is on unless APP_ENV is "production"; file rotation is on
// when LOG_FILE_ROTATION allows it and ServerEnvironment reports true.
func ConfigFromEnv() (Config, error) {
	return configFromEnv(ServerEnvironment())
}

func configFromEnv(server bool) (Config, error) {
	var envVars envConfig
	if err := env.Parse(&envVars); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	cfg := DefaultConfig()
	cfg.MinLevel = envVars.Level
	cfg.Environment = envVars.Environment
	cfg.EnableConsole = envVars.Environment != ProductionEnvironment
	cfg.EnableFileRotation = server && envVars.FileRotation
	cfg.LogsDirectory = envVars.LogsDirectory
	cfg.MaxFileSizeBytes = envVars.MaxFileSizeBytes
	cfg.MaxRetentionDays = envVars.MaxRetentionDays
	cfg.FileFormat = strings.ToLower(envVars.FileFormat)
	cfg.ConsoleColor = envVars.Color
	cfg.Async = envVars.Async
	cfg.BufferSize = envVars.BufferSize

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrEnvVariablesNotValid, err)
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	problems := make([]string, 0)

	if c.MinLevel < core.DebugLevel || c.MinLevel > core.PanicLevel {
		problems = append(problems, fmt.Sprintf("level %d is out of range", c.MinLevel))
	}
	if c.Async && c.BufferSize <= 0 {
		problems = append(problems, "buffer size must be positive when async is on")
	}
	if c.EnableFileRotation {
		if c.LogsDirectory == "" {
			problems = append(problems, "logs directory is empty")
		}
		if c.AuditFileName == "" {
			problems = append(problems, "audit file name is empty")
		}
		if c.MaxFileSizeBytes <= 0 {
			problems = append(problems, "max file size must be positive")
		}
		if c.MaxRetentionDays < 0 {
			problems = append(problems, "max retention days must not be negative")
		}
		if c.DatePattern == "" {
			problems = append(problems, "date pattern is empty")
		}
		if c.FileFormat != FileFormatText && c.FileFormat != FileFormatJSON {
			problems = append(problems, fmt.Sprintf("file format %q is not one of text, json", c.FileFormat))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, ", "))
	}
	return nil
}

// AuditFilePath returns where the audit file lives.
func (c Config) AuditFilePath() string {
	return filepath.Join(c.LogsDirectory, c.AuditFileName)
}
