package domain

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
)

// Mode selects the loader's trust behavior for an invocation.
type Mode string

const (
	// ModeQuery asks for the computed environment without touching trust.
	ModeQuery Mode = "query"
	// ModeAllow records the directory's configuration as trusted, then queries.
	ModeAllow Mode = "allow"
	// ModeDeny revokes trust for the directory's configuration, then queries.
	ModeDeny Mode = "deny"
)

// Outcome classifies the result of one loader invocation.
type Outcome string

const (
	// OutcomeSuccess means the loader produced an environment; Diff is present.
	OutcomeSuccess Outcome = "success"
	// OutcomeNoChange means the directory has no loader configuration.
	OutcomeNoChange Outcome = "no-change"
	// OutcomeDenied means a configuration exists but is not trusted.
	OutcomeDenied Outcome = "denied"
	// OutcomeError means the loader failed; Message holds the diagnostic.
	OutcomeError Outcome = "error"
)

// Result is the fully recovered outcome of a loader invocation. Loader
// failures never surface as Go errors; they are folded into OutcomeError so
// every consumer always receives a well-formed value.
type Result struct {
	Outcome Outcome
	Diff    Diff
	Message string
}

// Status is the per-context trust state observable by consumers.
type Status string

const (
	// StatusNone means no loader configuration applies to the context.
	StatusNone Status = "none"
	// StatusOn means an environment diff is applied as the context's overlay.
	StatusOn Status = "on"
	// StatusError means the configuration is denied or the loader failed;
	// no overlay is applied.
	StatusError Status = "error"
)

// StatusFor maps a cache entry outcome to the context status it drives.
// No status is terminal; the next adoption may move to any other.
func StatusFor(o Outcome) Status {
	switch o {
	case OutcomeSuccess:
		return StatusOn
	case OutcomeNoChange:
		return StatusNone
	default:
		return StatusError
	}
}

// Entry is one cached loader result for a directory key, together with the
// base snapshot it was computed against. Entries are replaced wholesale on
// refresh, never mutated in place, so readers cannot observe a torn entry.
type Entry struct {
	Key        string
	Base       Snapshot
	Outcome    Outcome
	Diff       Diff
	Message    string
	ComputedAt time.Time
}

// NewEntry builds an entry from an invocation result. Diff is retained only
// for successful outcomes.
func NewEntry(key string, base Snapshot, res Result) *Entry {
	e := &Entry{
		Key:        key,
		Base:       base,
		Outcome:    res.Outcome,
		Message:    res.Message,
		ComputedAt: time.Now(),
	}
	if res.Outcome == OutcomeSuccess {
		e.Diff = res.Diff
	}
	return e
}

// Fresh reports whether the entry's stored base snapshot still matches the
// given current snapshot.
func (e *Entry) Fresh(current Snapshot) bool {
	return e.Base.Equal(current)
}

// CanonicalKey resolves a directory path to its canonical absolute form.
// Two contexts rooted at the same canonical directory share one cache entry.
func CanonicalKey(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve absolute path")
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", zerr.With(ErrDirectoryNotFound, "dir", dir)
		}
		return "", zerr.Wrap(err, "failed to resolve symlinks")
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", zerr.With(ErrDirectoryNotFound, "dir", dir)
	}
	if !info.IsDir() {
		return "", zerr.With(ErrNotADirectory, "dir", dir)
	}
	return resolved, nil
}
