package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/denv/internal/core/domain"
	"go.trai.ch/zerr"
)

// renderDiff writes the diff in the requested format. Output is sorted by
// variable name so it is stable across runs.
func renderDiff(w io.Writer, diff domain.Diff, format string) error {
	switch format {
	case "", "shell":
		return renderShell(w, diff)
	case "json":
		return renderJSON(w, diff)
	default:
		return zerr.With(domain.ErrUnknownFormat, "format", format)
	}
}

// renderShell emits `export`/`unset` lines suitable for eval by a POSIX
// shell.
func renderShell(w io.Writer, diff domain.Diff) error {
	for _, name := range diff.Names() {
		op := diff[name]
		var line string
		if op.Unset {
			line = "unset " + name + ";"
		} else {
			line = "export " + name + "=" + shellQuote(op.Value) + ";"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return zerr.Wrap(err, "failed to write export line")
		}
	}
	return nil
}

// renderJSON emits a single object mapping names to values, with null for
// unset operations.
func renderJSON(w io.Writer, diff domain.Diff) error {
	vars := make(map[string]*string, len(diff))
	for name, op := range diff {
		if op.Unset {
			vars[name] = nil
		} else {
			value := op.Value
			vars[name] = &value
		}
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(vars); err != nil {
		return zerr.Wrap(err, "failed to encode diff")
	}
	return nil
}

// shellQuote single-quotes a value for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
