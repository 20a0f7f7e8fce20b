package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/example/go-wavtone/internal/audio"
	"github.com/example/go-wavtone/internal/config"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var out string
	var all bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a sine tone as WAV in one or every sample format",
		Long: "Encodes a sine tone and writes sine_<format>.wav into the output directory.\n" +
			"Use --out to choose the file name, or --out - to write the WAV to stdout.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			encoders, err := selectEncoders(audio.DefaultRegistry(), cfg.Tone.Format, all)
			if err != nil {
				return err
			}
			if out != "" && len(encoders) > 1 {
				return errors.New("--out cannot be combined with more than one format")
			}

			p, err := cfg.Tone.Params()
			if err != nil {
				return err
			}

			for _, enc := range encoders {
				path := out
				if path == "" {
					path = defaultOutputPath(cfg.Output.Dir, enc.Format().Name())
				}

				if err := generateOne(enc, p, path, cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file path, or - for stdout (default <out-dir>/sine_<format>.wav)")
	cmd.Flags().BoolVar(&all, "all", false, "Generate every sample format")

	return cmd
}

// selectEncoders resolves the configured format, or every registered format
// when all is set or the name is "all".
func selectEncoders(reg *audio.Registry, format string, all bool) ([]audio.Encoder, error) {
	name, err := config.NormalizeFormat(format)
	if err != nil {
		return nil, err
	}

	if all || name == config.FormatAll {
		return reg.Encoders(), nil
	}

	enc, ok := reg.Get(name)
	if !ok {
		return nil, fmt.Errorf("format %q is not registered", name)
	}

	return []audio.Encoder{enc}, nil
}

func defaultOutputPath(dir, format string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "sine_"+format+".wav")
}

func generateOne(enc audio.Encoder, p audio.Params, path string, stdout io.Writer) error {
	data, err := enc.Encode(p)
	if err != nil {
		return err
	}

	if path != "-" {
		ensureDir(filepath.Dir(path))
	}

	if err := writeOutput(path, data, stdout); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	slog.Info("wrote tone",
		"format", enc.Format().Name(),
		"path", path,
		"bytes", len(data),
	)

	return nil
}

// ensureDir creates dir if needed. Failure is only logged; the write that
// follows reports the actual error.
func ensureDir(dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Warn("could not create output directory", "dir", dir, "error", err)
	}
}

func writeOutput(outPath string, wavData []byte, stdout io.Writer) error {
	if outPath == "-" {
		if stdout == nil {
			return fmt.Errorf("stdout writer is nil")
		}
		_, err := stdout.Write(wavData)
		return err
	}
	return os.WriteFile(outPath, wavData, 0o644)
}
