package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/go-wavtone/internal/audio"
	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported sample formats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeFormats(cmd.OutOrStdout(), audio.DefaultRegistry())
		},
	}
}

func writeFormats(w io.Writer, reg *audio.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBITS\tBYTES\tMIN\tMAX")

	for _, enc := range reg.Encoders() {
		f := enc.Format()
		lo, hi := f.Bounds()
		fmt.Fprintf(tw, "%s\t%d\t%d\t%g\t%g\n", f.Name(), f.BitsPerSample(), f.Size(), lo, hi)
	}

	return tw.Flush()
}
