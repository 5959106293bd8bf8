package joblogs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelFatal = "fatal"
)

// Report is the record of one run: what was found, what happened to each file,
// and how the run ended.
type Report struct {
	RunID      string         `json:"run_id"`
	Directory  string         `json:"directory"`
	NZBName    string         `json:"nzb_name,omitempty"`
	Category   string         `json:"category,omitempty"`
	DryRun     bool           `json:"dry_run"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	Status     int            `json:"status"`
	StatusCode string         `json:"status_code"`
	Totals     map[string]int `json:"totals"`
	Files      []FileEntry    `json:"files"`
	Logs       []LogEntry     `json:"logs"`
}

// FileEntry is the outcome for one file.
type FileEntry struct {
	Path    string `json:"path"`
	NewPath string `json:"new_path,omitempty"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

// LogEntry is a log line kept in the report.
type LogEntry struct {
	Level      string                 `json:"level"`
	Message    string                 `json:"message"`
	Data       map[string]interface{} `json:"data,omitempty"`
	StackTrace *string                `json:"stack_trace,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// NewReport starts a report for a run over directory.
func NewReport(directory string) *Report {
	return &Report{
		RunID:     uuid.New().String(),
		Directory: directory,
		StartedAt: time.Now(),
		Totals:    map[string]int{},
		Files:     []FileEntry{},
		Logs:      []LogEntry{},
	}
}

// Duration is the time between the start and the finish of the run, or since
// the start if it hasn't finished.
func (r *Report) Duration() time.Duration {
	if r.FinishedAt == nil {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// WriteFile writes the report as indented JSON to path. The file is written
// to a temporary sibling first and renamed into place.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WithStack(err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.WithStack(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return errors.WithStack(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WithStack(err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(os.Rename(tmp.Name(), path))
}
