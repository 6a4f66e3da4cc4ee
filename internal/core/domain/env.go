// Package domain contains the core value types for directory environments.
package domain

import (
	"encoding/hex"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is an immutable capture of a process environment as sorted
// "KEY=VALUE" pairs. Sorting makes two snapshots of the same environment
// comparable byte-for-byte regardless of capture order.
type Snapshot []string

// CaptureSnapshot captures the current process environment.
func CaptureSnapshot() Snapshot {
	env := os.Environ()
	s := make(Snapshot, len(env))
	copy(s, env)
	slices.Sort(s)
	return s
}

// NewSnapshot builds a Snapshot from a name->value map.
func NewSnapshot(vars map[string]string) Snapshot {
	s := make(Snapshot, 0, len(vars))
	for k, v := range vars {
		s = append(s, k+"="+v)
	}
	slices.Sort(s)
	return s
}

// Equal reports whether two snapshots are byte-for-byte identical.
// This is the sole staleness signal for base environment drift.
func (s Snapshot) Equal(other Snapshot) bool {
	return slices.Equal(s, other)
}

// Lookup returns the value of the named variable.
func (s Snapshot) Lookup(name string) (string, bool) {
	prefix := name + "="
	for _, entry := range s {
		if strings.HasPrefix(entry, prefix) {
			return entry[len(prefix):], true
		}
	}
	return "", false
}

// Map converts the snapshot to a name->value map.
func (s Snapshot) Map() map[string]string {
	m := make(map[string]string, len(s))
	for _, entry := range s {
		if k, v, ok := strings.Cut(entry, "="); ok {
			m[k] = v
		}
	}
	return m
}

// Fingerprint returns a short stable digest of the snapshot, used for log
// and span attributes. Equality decisions always use the full byte
// comparison, never the fingerprint alone.
func (s Snapshot) Fingerprint() string {
	d := xxhash.New()
	for _, entry := range s {
		_, _ = d.WriteString(entry)
		_, _ = d.Write([]byte{0})
	}
	var buf [8]byte
	sum := d.Sum64()
	for i := range buf {
		buf[i] = byte(sum >> (8 * (7 - i)))
	}
	return hex.EncodeToString(buf[:])
}

// Apply returns a new snapshot with the diff's operations applied.
// The receiver is never modified.
func (s Snapshot) Apply(d Diff) Snapshot {
	m := s.Map()
	for name, op := range d {
		if op.Unset {
			delete(m, name)
		} else {
			m[name] = op.Value
		}
	}
	return NewSnapshot(m)
}

// Op is a single variable mutation within a Diff.
type Op struct {
	Value string
	Unset bool
}

// String renders the op for diagnostics.
func (o Op) String() string {
	if o.Unset {
		return "<unset>"
	}
	return fmt.Sprintf("%q", o.Value)
}

// Diff maps variable names to mutations relative to a base snapshot.
// Keys are unique by construction.
type Diff map[string]Op

// Between computes the diff that transforms base into result: variables
// added or changed become Set ops, variables present only in base become
// Unset ops.
func Between(base, result Snapshot) Diff {
	baseMap := base.Map()
	resultMap := result.Map()

	d := make(Diff)
	for name, value := range resultMap {
		if old, ok := baseMap[name]; !ok || old != value {
			d[name] = Op{Value: value}
		}
	}
	for name := range baseMap {
		if _, ok := resultMap[name]; !ok {
			d[name] = Op{Unset: true}
		}
	}
	return d
}

// Names returns the diff's variable names in sorted order.
func (d Diff) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
