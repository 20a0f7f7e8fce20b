package doctor_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-wavtone/internal/audio"
	"github.com/example/go-wavtone/internal/doctor"
	"github.com/example/go-wavtone/internal/sample"
)

// ---------------------------------------------------------------------------
// all-pass scenario
// ---------------------------------------------------------------------------

func TestRun_AllChecksPass(t *testing.T) {
	var out strings.Builder
	result := doctor.Run(doctor.Config{OutputDir: t.TempDir()}, &out)

	if result.Failed() {
		t.Fatalf("expected all checks to pass; failures: %v\noutput:\n%s", result.Failures(), out.String())
	}

	for _, name := range sample.Names() {
		if !strings.Contains(out.String(), "format "+name) {
			t.Errorf("output should mention format %s", name)
		}
	}

	if !strings.Contains(out.String(), "reference encoder 16-bit") {
		t.Error("output should mention the 16-bit reference check")
	}

	if strings.Contains(out.String(), doctor.FailMark) {
		t.Errorf("output should not contain %s:\n%s", doctor.FailMark, out.String())
	}
}

// ---------------------------------------------------------------------------
// injected failures
// ---------------------------------------------------------------------------

func TestRun_InspectFailureFailsEveryFormat(t *testing.T) {
	cfg := doctor.Config{
		Inspect: func([]byte) (audio.Info, error) {
			return audio.Info{}, errors.New("decoder exploded")
		},
		SkipReference: true,
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if got, want := len(result.Failures()), len(sample.Names()); got != want {
		t.Fatalf("failures = %d; want %d (%v)", got, want, result.Failures())
	}

	if !strings.Contains(out.String(), "decoder exploded") {
		t.Error("output should include the decoder error")
	}
}

func TestRun_LayoutMismatchFails(t *testing.T) {
	cfg := doctor.Config{
		Encoders: []audio.Encoder{audio.NewEncoder(sample.Int16)},
		Inspect: func(data []byte) (audio.Info, error) {
			info, err := audio.Inspect(data)
			info.SampleRate++
			return info, err
		},
		SkipReference: true,
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure when decoded sample rate differs")
	}

	if !strings.Contains(result.Failures()[0], "format i16") {
		t.Errorf("failure should name the format: %q", result.Failures()[0])
	}
}

func TestRun_ReferenceFailure(t *testing.T) {
	cfg := doctor.Config{
		Encoders: []audio.Encoder{},
		Reference: func(audio.Params, int) ([]byte, error) {
			return nil, errors.New("no reference")
		},
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if got := len(result.Failures()); got != 2 {
		t.Fatalf("failures = %d; want 2 (%v)", got, result.Failures())
	}

	for _, f := range result.Failures() {
		if !strings.HasPrefix(f, "reference encoder") {
			t.Errorf("unexpected failure %q", f)
		}
	}
}

func TestRun_SkipReference(t *testing.T) {
	called := false
	cfg := doctor.Config{
		Encoders: []audio.Encoder{},
		Reference: func(audio.Params, int) ([]byte, error) {
			called = true
			return nil, nil
		},
		SkipReference: true,
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Fatalf("unexpected failures: %v", result.Failures())
	}

	if called {
		t.Error("reference encoder should not be called when skipped")
	}

	if !strings.Contains(out.String(), "reference encoder: skipped") {
		t.Errorf("output should report skip:\n%s", out.String())
	}
}

func TestRun_InvalidParamsFail(t *testing.T) {
	p := doctor.DefaultParams()
	p.Channels = 0

	cfg := doctor.Config{
		Encoders:      []audio.Encoder{audio.NewEncoder(sample.Uint8)},
		Params:        p,
		SkipReference: true,
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure for zero channels")
	}
}

func TestRun_OutputDirNotWritable(t *testing.T) {
	// A regular file where the directory should be.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := doctor.Config{
		Encoders:      []audio.Encoder{},
		SkipReference: true,
		OutputDir:     filepath.Join(blocker, "out"),
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure for unwritable output dir")
	}

	if !strings.Contains(out.String(), doctor.FailMark+" output dir") {
		t.Errorf("output should mark the output dir check failed:\n%s", out.String())
	}
}

func TestResult_AddFailure(t *testing.T) {
	var r doctor.Result
	if r.Failed() {
		t.Fatal("zero Result reports failure")
	}

	r.AddFailure("external")
	if !r.Failed() || r.Failures()[0] != "external" {
		t.Fatalf("Failures() = %v; want [external]", r.Failures())
	}

	// Failures returns a copy.
	r.Failures()[0] = "mutated"
	if r.Failures()[0] != "external" {
		t.Fatal("Failures() exposed internal slice")
	}
}
