package filehandler

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// AuditEntry records one dated log file. Date is the creation time in
// milliseconds since the epoch.
type AuditEntry struct {
	Date int64  `json:"date"`
	Name string `json:"name"`
	Hash string `json:"hash"`
}

type auditKeep struct {
	Days   bool `json:"days"`
	Amount int  `json:"amount"`
}

// auditDoc is the on-disk layout of the audit file, compatible with the
// audit files written by winston-daily-rotate-file.
type auditDoc struct {
	Keep     auditKeep    `json:"keep"`
	AuditLog string       `json:"auditLog"`
	Files    []AuditEntry `json:"files"`
	HashType string       `json:"hashType"`
}

// Audit keeps the list of dated log files and their hashes in a JSON file.
// It is not safe for concurrent use; DailyWriter guards it with its mutex.
type Audit struct {
	path string
	doc  auditDoc
}

// LoadAudit reads the audit file at path, or starts an empty one when it does
// not exist or cannot be parsed. Nothing is written until the first change.
func LoadAudit(path string, maxDays int) (*Audit, error) {
	a := &Audit{
		path: path,
		doc: auditDoc{
			Keep:     auditKeep{Days: true, Amount: maxDays},
			AuditLog: path,
			Files:    []AuditEntry{},
			HashType: "md5",
		},
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return a, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read audit file")
	}

	var doc auditDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		// a damaged audit only loses history, start over
		return a, nil
	}
	if doc.Files != nil {
		a.doc.Files = doc.Files
	}
	return a, nil
}

// Path returns the audit file location.
func (a *Audit) Path() string {
	return a.path
}

// Files returns the recorded log files, oldest first.
func (a *Audit) Files() []AuditEntry {
	return append([]AuditEntry(nil), a.doc.Files...)
}

// Add records a log file created at t. Adding a name that is already
// recorded is a no-op.
func (a *Audit) Add(name string, t time.Time) error {
	for _, f := range a.doc.Files {
		if f.Name == name {
			return nil
		}
	}
	date := t.UnixMilli()
	a.doc.Files = append(a.doc.Files, AuditEntry{
		Date: date,
		Name: name,
		Hash: auditHash(name, date),
	})
	return a.save()
}

// Expire drops every entry created before cutoff and returns the dropped
// entries. The caller removes the files themselves.
func (a *Audit) Expire(cutoff time.Time) ([]AuditEntry, error) {
	limit := cutoff.UnixMilli()
	var expired []AuditEntry
	kept := a.doc.Files[:0]
	for _, f := range a.doc.Files {
		if f.Date < limit {
			expired = append(expired, f)
			continue
		}
		kept = append(kept, f)
	}
	a.doc.Files = kept
	if len(expired) == 0 {
		return nil, nil
	}
	return expired, a.save()
}

func (a *Audit) save() error {
	data, err := json.MarshalIndent(a.doc, "", "    ")
	if err != nil {
		return errors.Wrap(err, "encode audit file")
	}
	tmp := a.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(err, "write audit file")
	}
	if err := os.Rename(tmp, filepath.Clean(a.path)); err != nil {
		return errors.Wrap(err, "replace audit file")
	}
	return nil
}

// auditHash matches the md5 hash winston-daily-rotate-file stores per file.
func auditHash(name string, date int64) string {
	sum := md5.Sum([]byte(name + "LOG_FILE" + strconv.FormatInt(date, 10)))
	return hex.EncodeToString(sum[:])
}
