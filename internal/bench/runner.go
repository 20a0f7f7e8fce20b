package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/go-wavtone/internal/audio"
)

// Run encodes p with enc runs times and reports the timing of each run. The
// first run is marked cold.
func Run(ctx context.Context, enc audio.Encoder, p audio.Params, runs int) (Report, error) {
	if runs < 1 {
		return Report{}, errors.New("runs must be >= 1")
	}

	name := enc.Format().Name()
	rep := Report{Format: name, Runs: make([]RunResult, 0, runs)}
	durations := make([]time.Duration, 0, runs)

	var rtfSum float64
	for i := range runs {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		start := time.Now()
		data, err := enc.Encode(p)
		elapsed := time.Since(start)
		if err != nil {
			return Report{}, fmt.Errorf("run %d: %w", i+1, err)
		}

		wavDur, err := WAVDuration(data)
		if err != nil {
			return Report{}, fmt.Errorf("run %d: %w", i+1, err)
		}

		r := RunResult{
			Index:       i,
			Cold:        i == 0,
			Duration:    elapsed,
			WAVDuration: wavDur,
			Bytes:       len(data),
			RTF:         CalcRTF(elapsed, wavDur),
		}
		slog.Debug("bench run", "format", name, "run", i+1, "ms", millis(elapsed), "rtf", r.RTF)

		rep.Runs = append(rep.Runs, r)
		durations = append(durations, elapsed)
		rtfSum += r.RTF
	}

	rep.Stats = ComputeStats(durations)
	rep.MeanRTF = rtfSum / float64(runs)

	return rep, nil
}

// RunAll benchmarks every encoder in order.
func RunAll(ctx context.Context, encoders []audio.Encoder, p audio.Params, runs int) ([]Report, error) {
	reports := make([]Report, 0, len(encoders))
	for _, enc := range encoders {
		rep, err := Run(ctx, enc, p, runs)
		if err != nil {
			return nil, fmt.Errorf("bench %s: %w", enc.Format().Name(), err)
		}
		reports = append(reports, rep)
	}

	return reports, nil
}

// CheckReports applies CheckRTFThreshold to every report.
func CheckReports(reports []Report, threshold float64) error {
	var errs []error
	for _, rep := range reports {
		if err := CheckRTFThreshold(rep.MeanRTF, threshold); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", rep.Format, err))
		}
	}

	return errors.Join(errs...)
}
