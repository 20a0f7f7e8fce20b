// Package stageprof splits an encode into its generate and encode stages,
// times each and labels them for CPU profiles.
package stageprof

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/example/go-wavtone/internal/audio"
	"github.com/example/go-wavtone/internal/signal"
)

// Options controls a profiling session.
type Options struct {
	Runs       int
	Warmup     int
	CPUProfile string // file path; empty disables CPU profiling
}

// Timings are per-run averages when returned from Profile.
type Timings struct {
	Generate time.Duration
	Encode   time.Duration
	Total    time.Duration
	Samples  int
	Runs     int
}

// Profile runs the staged encode opts.Warmup times untimed, then opts.Runs
// times under an optional CPU profile, and returns average stage timings.
func Profile(ctx context.Context, enc audio.Encoder, p audio.Params, opts Options) (Timings, error) {
	if opts.Runs < 1 {
		return Timings{}, errors.New("runs must be >= 1")
	}

	for i := range opts.Warmup {
		if _, err := runOnce(ctx, enc, p); err != nil {
			return Timings{}, fmt.Errorf("warmup run %d failed: %w", i+1, err)
		}
	}

	if opts.CPUProfile != "" {
		f, err := os.Create(opts.CPUProfile)
		if err != nil {
			return Timings{}, fmt.Errorf("create cpuprofile: %w", err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return Timings{}, fmt.Errorf("start cpuprofile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	var agg Timings
	for i := range opts.Runs {
		t, err := runOnce(ctx, enc, p)
		if err != nil {
			return Timings{}, fmt.Errorf("profiled run %d failed: %w", i+1, err)
		}

		agg.Generate += t.Generate
		agg.Encode += t.Encode
		agg.Total += t.Total
		agg.Samples = t.Samples
	}

	n := time.Duration(opts.Runs)

	return Timings{
		Generate: agg.Generate / n,
		Encode:   agg.Encode / n,
		Total:    agg.Total / n,
		Samples:  agg.Samples,
		Runs:     opts.Runs,
	}, nil
}

// ProfilePath returns the CPU profile file for format when several formats are
// profiled in one invocation: "cpu.out" becomes "cpu_f32.out". An empty base
// stays empty.
func ProfilePath(base, format string) string {
	if base == "" {
		return ""
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_" + format + ext
}

func runOnce(ctx context.Context, enc audio.Encoder, p audio.Params) (Timings, error) {
	if err := ctx.Err(); err != nil {
		return Timings{}, err
	}

	var out Timings
	startTotal := time.Now()

	var raw []float32

	pprof.Do(ctx, pprof.Labels("stage", "generate"), func(context.Context) {
		start := time.Now()
		raw = signal.Generate(p.Sine(), p.NumSamples())
		out.Generate = time.Since(start)
	})

	var encErr error

	pprof.Do(ctx, pprof.Labels("stage", "encode"), func(context.Context) {
		start := time.Now()
		_, encErr = enc.EncodeSignal(p, raw)
		out.Encode = time.Since(start)
	})

	if encErr != nil {
		return out, fmt.Errorf("encode wav: %w", encErr)
	}

	out.Total = time.Since(startTotal)
	out.Samples = len(raw)

	return out, nil
}

// Write prints t as key: value lines, the way the bench command reports a
// stage profile.
func Write(w io.Writer, format string, p audio.Params, t Timings) {
	avgGenerate := t.Generate.Seconds() * 1000
	avgEncode := t.Encode.Seconds() * 1000
	avgTotal := t.Total.Seconds() * 1000

	audioMS := float64(t.Samples) * 1000.0 / p.SampleRate

	fmt.Fprintf(w, "format: %s\n", format)
	fmt.Fprintf(w, "runs: %d\n", t.Runs)
	fmt.Fprintf(w, "samples: %d\n", t.Samples)
	fmt.Fprintf(w, "audio_ms: %.2f\n", audioMS)
	fmt.Fprintf(w, "avg_generate_ms: %.3f\n", avgGenerate)
	fmt.Fprintf(w, "avg_encode_ms: %.3f\n", avgEncode)
	fmt.Fprintf(w, "avg_total_ms: %.3f\n", avgTotal)

	if audioMS > 0 {
		fmt.Fprintf(w, "rtf: %.5f\n", avgTotal/audioMS)
	}

	if avgTotal > 0 {
		fmt.Fprintf(w, "share_generate_pct: %.2f\n", 100*avgGenerate/avgTotal)
		fmt.Fprintf(w, "share_encode_pct: %.2f\n", 100*avgEncode/avgTotal)
	}
}
