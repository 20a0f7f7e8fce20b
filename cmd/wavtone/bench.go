package main

import (
	"fmt"

	"github.com/example/go-wavtone/internal/audio"
	"github.com/example/go-wavtone/internal/bench"
	"github.com/example/go-wavtone/internal/bench/stageprof"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		runs         int
		report       string
		rtfThreshold float64
		all          bool
		stages       bool
		cpuprofile   string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark encode latency and realtime factor per format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if report != "table" && report != "json" {
				return fmt.Errorf("--report must be 'table' or 'json'")
			}

			encoders, err := selectEncoders(audio.DefaultRegistry(), cfg.Tone.Format, all)
			if err != nil {
				return err
			}

			p, err := cfg.Tone.Params()
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()

			if stages {
				for _, enc := range encoders {
					profile := cpuprofile
					if len(encoders) > 1 {
						profile = stageprof.ProfilePath(cpuprofile, enc.Format().Name())
					}
					t, err := stageprof.Profile(cmd.Context(), enc, p, stageprof.Options{
						Runs:       runs,
						Warmup:     1,
						CPUProfile: profile,
					})
					if err != nil {
						return err
					}
					stageprof.Write(stdout, enc.Format().Name(), p, t)
				}
				return nil
			}

			reports, err := bench.RunAll(cmd.Context(), encoders, p, runs)
			if err != nil {
				return err
			}

			switch report {
			case "json":
				if err := bench.FormatJSON(reports, stdout); err != nil {
					return err
				}
			default:
				bench.FormatTable(reports, stdout)
			}

			return bench.CheckReports(reports, rtfThreshold)
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 5, "Number of encode runs per format")
	cmd.Flags().StringVar(&report, "report", "table", "Report format: table|json")
	cmd.Flags().Float64Var(&rtfThreshold, "rtf-threshold", 0, "Exit non-zero if a format's mean RTF exceeds this value (0 = disabled)")
	cmd.Flags().BoolVar(&all, "all", false, "Benchmark every sample format")
	cmd.Flags().BoolVar(&stages, "stages", false, "Report per-stage timings instead of per-run results")
	cmd.Flags().StringVar(&cpuprofile, "cpuprofile", "", "Write a CPU profile of the --stages runs to this file; with --all each format gets its own file")

	return cmd
}
