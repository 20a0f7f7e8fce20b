// Package doctor self-checks the encoders: every format is encoded, decoded
// back with the reference WAV decoder and compared against the layout it was
// asked for.
package doctor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/go-wavtone/internal/audio"
	"github.com/example/go-wavtone/internal/signal"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// InspectFunc decodes an encoded file and reports its layout.
type InspectFunc func(data []byte) (audio.Info, error)

// ReferenceFunc encodes p with an independent encoder at the given bit depth.
type ReferenceFunc func(p audio.Params, bitDepth int) ([]byte, error)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// Encoders are the formats to check. Nil means every built-in format.
	Encoders []audio.Encoder
	// Params is the tone each check encodes. The zero value means
	// DefaultParams.
	Params audio.Params
	// Inspect defaults to audio.Inspect.
	Inspect InspectFunc
	// Reference defaults to audio.EncodeReference.
	Reference ReferenceFunc
	// SkipReference skips the reference encoder parity check.
	SkipReference bool
	// OutputDir is checked for writability when non-empty.
	OutputDir string
}

// DefaultParams is a short stereo tone, long enough to cover several periods.
func DefaultParams() audio.Params {
	return audio.Params{
		Params: signal.Params{
			Duration:   0.05,
			Frequency:  440,
			Amplitude:  1,
			SampleRate: 44100,
		},
		Channels: 2,
	}
}

// referenceDepths are the integer widths compared with the reference encoder.
var referenceDepths = []int{16, 24}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	encoders := cfg.Encoders
	if encoders == nil {
		encoders = audio.DefaultRegistry().Encoders()
	}
	params := cfg.Params
	if params == (audio.Params{}) {
		params = DefaultParams()
	}
	inspect := cfg.Inspect
	if inspect == nil {
		inspect = audio.Inspect
	}
	reference := cfg.Reference
	if reference == nil {
		reference = audio.EncodeReference
	}

	// ---- per-format round trip -------------------------------------------
	for _, enc := range encoders {
		name := enc.Format().Name()
		if err := checkEncoder(enc, params, inspect); err != nil {
			res.fail(fmt.Sprintf("format %s: %v", name, err))
			fmt.Fprintf(w, "%s format %s: %v\n", FailMark, name, err)
		} else {
			fmt.Fprintf(w, "%s format %s: %d-bit, decodes as written\n", PassMark, name, enc.Format().BitsPerSample())
		}
	}

	// ---- reference encoder parity ----------------------------------------
	if cfg.SkipReference {
		fmt.Fprintf(w, "%s reference encoder: skipped\n", PassMark)
	} else {
		for _, depth := range referenceDepths {
			if err := checkReference(params, depth, inspect, reference); err != nil {
				res.fail(fmt.Sprintf("reference encoder %d-bit: %v", depth, err))
				fmt.Fprintf(w, "%s reference encoder %d-bit: %v\n", FailMark, depth, err)
			} else {
				fmt.Fprintf(w, "%s reference encoder %d-bit: layout matches\n", PassMark, depth)
			}
		}
	}

	// ---- output directory ------------------------------------------------
	if cfg.OutputDir != "" {
		if err := checkWritable(cfg.OutputDir); err != nil {
			res.fail(fmt.Sprintf("output dir %q: %v", cfg.OutputDir, err))
			fmt.Fprintf(w, "%s output dir %s: %v\n", FailMark, cfg.OutputDir, err)
		} else {
			fmt.Fprintf(w, "%s output dir: %s\n", PassMark, cfg.OutputDir)
		}
	}

	return res
}

func checkEncoder(enc audio.Encoder, p audio.Params, inspect InspectFunc) error {
	data, err := enc.Encode(p)
	if err != nil {
		return err
	}

	want := audio.HeaderSize + int(p.PayloadSize(enc.Format()))
	if len(data) != want {
		return fmt.Errorf("%w: %d bytes, want %d", audio.ErrFormatMismatch, len(data), want)
	}

	info, err := inspect(data)
	if err != nil {
		return err
	}

	return info.Match(audio.Expect(p, int(enc.Format().BitsPerSample())))
}

func checkReference(p audio.Params, depth int, inspect InspectFunc, reference ReferenceFunc) error {
	ref, err := reference(p, depth)
	if err != nil {
		return err
	}

	info, err := inspect(ref)
	if err != nil {
		return err
	}

	return info.Match(audio.Expect(p, depth))
}

// checkWritable creates dir if needed and writes then removes a probe file.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	probe, err := os.CreateTemp(dir, ".wavtone-doctor-*")
	if err != nil {
		return err
	}

	name := probe.Name()
	if err := probe.Close(); err != nil {
		return err
	}

	return os.Remove(filepath.Clean(name))
}
