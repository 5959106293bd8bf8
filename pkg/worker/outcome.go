package worker

import (
	"github.com/shishobooks/removecrud/pkg/joblogs"
)

// Outcome is what happened to one file.
type Outcome string

const (
	OutcomeRenamed      Outcome = "renamed"
	OutcomeNoChange     Outcome = "skipped-no-change"
	OutcomeUnsupported  Outcome = "skipped-unsupported-extension"
	OutcomeTargetExists Outcome = "skipped-target-exists"
	OutcomeMissing      Outcome = "skipped-missing"
	OutcomeDryRun       Outcome = "dry-run"
	OutcomeFailed       Outcome = "failed"
)

// Result is the outcome of processing one file. NewPath is set when a rename
// was attempted or planned; Err is set for OutcomeFailed.
type Result struct {
	Entry   FileEntry
	NewPath string
	Outcome Outcome
	Err     error
}

func (r Result) reportEntry() joblogs.FileEntry {
	entry := joblogs.FileEntry{
		Path:    r.Entry.Path,
		NewPath: r.NewPath,
		Outcome: string(r.Outcome),
	}
	if r.Err != nil {
		entry.Error = r.Err.Error()
	}
	return entry
}
