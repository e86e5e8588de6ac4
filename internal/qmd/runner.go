package qmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/quakeboy/qmd-search-obsidian/internal/domain"
)

// Request describes one qmd invocation
type Request struct {
	Executable string
	Mode       domain.Mode
	Query      string
	Collection string
	Limit      int
	ExtraPath  string
	Debug      bool
}

// Result carries the raw output of a completed invocation
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner executes qmd searches
type Runner interface {
	Run(ctx context.Context, req Request) (Result, error)
}

// execRunner spawns the real qmd binary
type execRunner struct{}

// NewRunner creates a runner backed by the qmd executable
func NewRunner() Runner {
	return execRunner{}
}

// Run invokes `qmd <mode> <query> --json -c <collection> -n <limit>` and
// accumulates stdout and stderr in full. The output is only valid once the
// process exits, so there is no streaming. A context cancellation kills the
// process and is reported as ctx.Err(), never as a tool failure.
func (execRunner) Run(ctx context.Context, req Request) (Result, error) {
	exe := req.Executable
	if exe == "" {
		exe = "qmd"
	}

	args := []string{
		string(req.Mode), req.Query,
		"--json",
		"-c", req.Collection,
		"-n", strconv.Itoa(req.Limit),
	}

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Env = Env(os.Environ(), req.ExtraPath)
	// Orphaned children of a killed qmd can keep the output pipes open;
	// abandon them after the kill instead of waiting out their lifetime
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if req.Debug {
		log.Printf("qmd %s %q: exit=%v stdout=%dB stderr=%dB",
			req.Mode, req.Query, cmd.ProcessState, stdout.Len(), stderr.Len())
	}

	// A killed process has no usable output; report cancellation, not failure
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res := Result{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.Bytes(),
				Stderr:   stderr.Bytes(),
			}
			return res, exitError(res)
		}
		// Spawn failure: executable missing, not executable, etc.
		return Result{}, fmt.Errorf("failed to run %s: %w", exe, err)
	}

	return Result{ExitCode: 0, Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}

// exitError builds the user-facing error for a nonzero exit: stderr trimmed,
// or a generic message when the tool said nothing
func exitError(res Result) error {
	msg := strings.TrimSpace(string(res.Stderr))
	if msg == "" {
		msg = fmt.Sprintf("qmd exited with code %d", res.ExitCode)
	}
	return errors.New(msg)
}
