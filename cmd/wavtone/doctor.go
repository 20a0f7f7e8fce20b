package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/go-wavtone/internal/doctor"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var skipReference bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Self-check every sample format against the reference WAV decoder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()

			result := doctor.Run(doctor.Config{
				SkipReference: skipReference,
				OutputDir:     cfg.Output.Dir,
			}, stdout)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(stdout, "doctor checks passed")

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipReference, "skip-reference", false, "Skip the cwbudde/wav reference encoder parity check")

	return cmd
}
