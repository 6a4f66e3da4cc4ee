// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/denv/internal/core/domain"
)

// Loader invokes the external environment loader for a directory.
//
//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type Loader interface {
	// Invoke spawns exactly one loader process for the directory, supplying
	// base as the process environment and mode as the trust behavior.
	//
	// All failures (spawn errors, non-zero exits, malformed output) are
	// folded into the returned Result's Outcome; Invoke never reports an
	// error of its own, so callers always receive a well-formed value.
	Invoke(ctx context.Context, dir string, base domain.Snapshot, mode domain.Mode) domain.Result
}
