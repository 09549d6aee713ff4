package filehandler

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"
)

const megabyte = 1024 * 1024

// DailyWriter is an io.Writer that writes to <Dir>/<date>.log, switching to a
// new file when the date changes. Within one day lumberjack caps the file at
// MaxSize and keeps the overflow as timestamped backups next to it. Dated
// files older than MaxDays are removed and every file is recorded in the
// audit file.
type DailyWriter struct {
	dir         string
	datePattern string
	maxSizeMB   int
	maxDays     int
	now         func() time.Time
	audit       *Audit

	mu      sync.Mutex
	date    string
	current *lumberjack.Logger
}

// NewDailyWriter creates the logs directory, loads the audit file and
// prepares the file for the current date.
func NewDailyWriter(cfg FileConfig) (*DailyWriter, error) {
	applyFileDefaults(&cfg)

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create logs directory")
	}
	audit, err := LoadAudit(cfg.AuditFile, cfg.MaxDays)
	if err != nil {
		return nil, err
	}

	w := &DailyWriter{
		dir:         cfg.Dir,
		datePattern: cfg.DatePattern,
		maxSizeMB:   sizeInMegabytes(cfg.MaxSize),
		maxDays:     cfg.MaxDays,
		now:         cfg.Now,
		audit:       audit,
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.openLocked(w.now()); err != nil {
		return nil, err
	}
	return w, nil
}

// sizeInMegabytes converts a byte limit into lumberjack's unit, rounding up.
func sizeInMegabytes(n int64) int {
	if n <= 0 {
		return 0
	}
	return int((n + megabyte - 1) / megabyte)
}

// Write writes p to the file for the current date.
func (w *DailyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil {
		return 0, os.ErrClosed
	}
	now := w.now()
	if now.Format(w.datePattern) != w.date {
		if err := w.openLocked(now); err != nil {
			return 0, err
		}
	}
	return w.current.Write(p)
}

// openLocked switches to the file for now's date and applies retention.
func (w *DailyWriter) openLocked(now time.Time) error {
	var err error
	if w.current != nil {
		err = w.current.Close()
	}

	w.date = now.Format(w.datePattern)
	name := w.filename(w.date)
	w.current = &lumberjack.Logger{
		Filename:  name,
		MaxSize:   w.maxSizeMB,
		MaxAge:    max(w.maxDays, 0),
		LocalTime: true,
	}

	err = multierr.Append(err, w.audit.Add(name, now))
	if w.maxDays > 0 {
		err = multierr.Append(err, w.expire(now.AddDate(0, 0, -w.maxDays)))
	}
	return err
}

// expire removes dated files recorded before cutoff, along with the size
// backups lumberjack left for them.
func (w *DailyWriter) expire(cutoff time.Time) error {
	expired, err := w.audit.Expire(cutoff)
	for _, f := range expired {
		err = multierr.Append(err, removeIfExists(f.Name))
		ext := filepath.Ext(f.Name)
		backups, _ := filepath.Glob(strings.TrimSuffix(f.Name, ext) + "-*" + ext)
		for _, b := range backups {
			err = multierr.Append(err, removeIfExists(b))
		}
	}
	return err
}

func removeIfExists(name string) error {
	if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (w *DailyWriter) filename(date string) string {
	return filepath.Join(w.dir, date+".log")
}

// Filename returns the path of the file currently written to.
func (w *DailyWriter) Filename() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.filename(w.date)
}

// AuditFile returns the path of the audit file.
func (w *DailyWriter) AuditFile() string {
	return w.audit.Path()
}

// Close closes the current file. Writes after Close fail with os.ErrClosed.
func (w *DailyWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return nil
	}
	err := w.current.Close()
	w.current = nil
	return err
}
