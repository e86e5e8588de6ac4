//go:build unix

package qmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quakeboy/qmd-search-obsidian/internal/domain"
)

// writeStub drops an executable shell script standing in for the qmd binary
func writeStub(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qmd")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))
	return path
}

func baseRequest(exe string) Request {
	return Request{
		Executable: exe,
		Mode:       domain.ModeSearch,
		Query:      "project plan",
		Collection: "obsidian",
		Limit:      16,
	}
}

func TestRun_Success(t *testing.T) {
	exe := writeStub(t, `echo "Loading collection..."
echo '[{"docId":"1","score":0.87,"file":"obsidian/Projects/Q3 Plan.md","title":"Q3 Plan"}]'
`)

	res, err := NewRunner().Run(context.Background(), baseRequest(exe))
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)

	results, err := ParseResults(res.Stdout)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Q3 Plan", results[0].Title)
}

func TestRun_ArgumentShape(t *testing.T) {
	exe := writeStub(t, `echo "$@"`)

	res, err := NewRunner().Run(context.Background(), baseRequest(exe))
	require.NoError(t, err)
	require.Equal(t, "search project plan --json -c obsidian -n 16\n", string(res.Stdout))
}

func TestRun_NonZeroExitUsesStderr(t *testing.T) {
	exe := writeStub(t, `echo "collection not found" >&2
exit 1
`)

	res, err := NewRunner().Run(context.Background(), baseRequest(exe))
	require.Error(t, err)
	require.Equal(t, "collection not found", err.Error())
	require.Equal(t, 1, res.ExitCode)
}

func TestRun_NonZeroExitEmptyStderr(t *testing.T) {
	exe := writeStub(t, `exit 3`)

	_, err := NewRunner().Run(context.Background(), baseRequest(exe))
	require.Error(t, err)
	require.Equal(t, "qmd exited with code 3", err.Error())
}

func TestRun_MissingExecutable(t *testing.T) {
	req := baseRequest(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := NewRunner().Run(context.Background(), req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to run")
}

func TestRun_CancellationIsNotAFailure(t *testing.T) {
	exe := writeStub(t, `sleep 5`)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	res, err := NewRunner().Run(ctx, baseRequest(exe))
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
	require.Empty(t, res.Stdout, "killed process produces no output")
	require.Less(t, time.Since(start), 2*time.Second, "cancel kills the process")
}
