// Package testutil provides shared WAV assertions and skip helpers for tests.
//
// Skip helpers call t.Skip with a clear reason when a prerequisite is absent,
// so slow or environment-dependent tests stay runnable in partial setups.
//
// Typical usage:
//
//	func TestLongTone(t *testing.T) {
//	    testutil.RequireLong(t)
//	    data := mustEncode(t, 60)
//	    testutil.AssertValidWAV(t, data, testutil.Layout{SampleRate: 44100, Channels: 1, BitsPerSample: 16})
//	}
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// LongEnv enables long-running tests when set to a non-empty value.
const LongEnv = "WAVTONE_LONG_TESTS"

// RequireLong skips the test in -short mode or when LongEnv is unset.
func RequireLong(tb testing.TB) {
	tb.Helper()

	if testing.Short() {
		tb.Skipf("long test skipped in -short mode")
		return
	}

	if os.Getenv(LongEnv) == "" {
		tb.Skipf("long test skipped; set %s=1 to run", LongEnv)
	}
}

// RequireWritableDir skips the test if dir cannot be created or written to.
func RequireWritableDir(tb testing.TB, dir string) {
	tb.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		tb.Skipf("directory %q not writable: %v", dir, err)
		return
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		tb.Skipf("directory %q not writable: %v", dir, err)
		return
	}

	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
}

// ReadWAV reads a generated file, failing the test on error.
func ReadWAV(tb testing.TB, path string) []byte {
	tb.Helper()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}

	return data
}
