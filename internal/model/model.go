// Package model defines the results reported by a regen run.
package model

// JobKind names the kind of job that produced a result.
type JobKind string

const (
	Cases      JobKind = "cases"
	Paragraphs JobKind = "paragraphs"
	Counters   JobKind = "counters"
)

// Result describes the outcome for one document of one job.
type Result struct {
	Job  string
	Kind JobKind
	// Path is relative to the workspace root.
	Path string
	// Blocks is the number of blocks replaced (cases) or paragraphs
	// numbered (paragraphs). Counter jobs leave it at zero.
	Blocks int
	// Lines is the number of generated case lines (cases) or rewritten
	// literals (paragraphs, counters).
	Lines int
	// Changed reports whether the document differs from its old contents.
	Changed bool
	// Diff is a unified diff of the change, filled in only on request.
	Diff string
}

// Report is the full outcome of a run, ready for serialization.
type Report struct {
	Root    string
	DryRun  bool
	Results []Result
}

// Stale reports whether any document differs from its regenerated form.
func (r *Report) Stale() bool {
	for i := range r.Results {
		if r.Results[i].Changed {
			return true
		}
	}
	return false
}
