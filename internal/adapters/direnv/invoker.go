// Package direnv wraps execution of the external environment loader.
//
// The loader is an opaque collaborator: it is invoked with the target
// directory as working directory, the current base environment as its
// process environment, and a single mode argument (query, allow or deny).
// It prints the complete resulting environment as a JSON object on stdout.
// A literal "null" (or empty) output signals that the directory has no
// loader configuration. Exit code 77, or a stderr diagnostic containing
// "is blocked", signals an untrusted configuration. Any other non-zero
// exit is a loader failure; the stderr text is preserved verbatim.
package direnv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/denv/internal/core/domain"
	"go.trai.ch/denv/internal/core/ports"
)

// deniedExitCode is the loader's dedicated exit code for an untrusted
// configuration.
const deniedExitCode = 77

// deniedStderrMarker matches the loader's human-readable "not trusted"
// diagnostic for loaders that do not use the dedicated exit code.
const deniedStderrMarker = "is blocked"

// Invoker implements ports.Loader by spawning the loader executable.
type Invoker struct {
	command string
	timeout time.Duration
	logger  ports.Logger
	tracer  trace.Tracer
}

var _ ports.Loader = (*Invoker)(nil)

// NewInvoker creates an Invoker for the given loader command. A zero
// timeout leaves invocations unbounded.
func NewInvoker(command string, timeout time.Duration, logger ports.Logger) *Invoker {
	return &Invoker{
		command: command,
		timeout: timeout,
		logger:  logger,
		tracer:  otel.Tracer("denv/loader"),
	}
}

// Invoke spawns exactly one loader process and folds every failure into the
// returned Result. There are no retries; a failed invocation is surfaced to
// the consumer as-is and retried only on explicit user action.
func (i *Invoker) Invoke(ctx context.Context, dir string, base domain.Snapshot, mode domain.Mode) domain.Result {
	ctx, span := i.tracer.Start(ctx, "loader.invoke", trace.WithAttributes(
		attribute.String("dir", dir),
		attribute.String("mode", string(mode)),
		attribute.String("base_fingerprint", base.Fingerprint()),
	))
	defer span.End()

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	res := i.run(ctx, dir, base, mode)
	span.SetAttributes(attribute.String("outcome", string(res.Outcome)))
	i.logger.Info(fmt.Sprintf("loader %s in %s: %s", mode, dir, res.Outcome))
	return res
}

func (i *Invoker) run(ctx context.Context, dir string, base domain.Snapshot, mode domain.Mode) domain.Result {
	//nolint:gosec // command comes from the user's own config
	cmd := exec.CommandContext(ctx, i.command, string(mode))
	cmd.Dir = dir
	cmd.Env = base

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	diagnostic := strings.TrimSpace(stderr.String())

	if err != nil {
		return classifyFailure(err, diagnostic)
	}

	out := bytes.TrimSpace(stdout.Bytes())
	if len(out) == 0 || bytes.Equal(out, []byte("null")) {
		return domain.Result{Outcome: domain.OutcomeNoChange}
	}

	var vars map[string]string
	if unmarshalErr := json.Unmarshal(out, &vars); unmarshalErr != nil {
		return domain.Result{
			Outcome: domain.OutcomeError,
			Message: fmt.Sprintf("malformed loader output: %v", unmarshalErr),
		}
	}

	result := domain.NewSnapshot(vars)
	return domain.Result{
		Outcome: domain.OutcomeSuccess,
		Diff:    domain.Between(base, result),
	}
}

// classifyFailure maps a process failure to a recovered Result. The raw
// stderr text is preserved for display; nothing escapes as a Go error.
func classifyFailure(err error, diagnostic string) domain.Result {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() == deniedExitCode || strings.Contains(diagnostic, deniedStderrMarker) {
			return domain.Result{Outcome: domain.OutcomeDenied, Message: diagnostic}
		}
		msg := diagnostic
		if msg == "" {
			msg = err.Error()
		}
		return domain.Result{
			Outcome: domain.OutcomeError,
			Message: fmt.Sprintf("loader exited with code %d: %s", exitErr.ExitCode(), msg),
		}
	}

	// Spawn failure or caller timeout.
	return domain.Result{
		Outcome: domain.OutcomeError,
		Message: "failed to run loader: " + err.Error(),
	}
}
