// Package bench times tone encoding per sample format and reports the
// realtime factor of each.
package bench

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing and audio metadata for a single encode run.
type RunResult struct {
	Index       int
	Cold        bool // true for the first run (cold-start)
	Duration    time.Duration
	WAVDuration time.Duration
	Bytes       int
	RTF         float64
}

// Report groups the runs of one format.
type Report struct {
	Format  string
	Runs    []RunResult
	Stats   Stats
	MeanRTF float64
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
// The slice must be non-empty.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// ---------------------------------------------------------------------------
// RTF helpers
// ---------------------------------------------------------------------------

// CalcRTF returns encode_duration / audio_duration.
// Returns 0 if audioDur is zero to avoid division by zero.
func CalcRTF(synthDur, audioDur time.Duration) float64 {
	if audioDur <= 0 {
		return 0
	}
	return float64(synthDur) / float64(audioDur)
}

// WAVDuration returns the playback duration of a WAV file from its RIFF
// header. Any sample width works since frames are counted by block alignment.
func WAVDuration(wav []byte) (time.Duration, error) {
	// Minimal RIFF/WAV header is 44 bytes.
	if len(wav) < 44 {
		return 0, fmt.Errorf("wav too short (%d bytes)", len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return 0, fmt.Errorf("not a RIFF/WAVE file")
	}

	// Walk chunks to find "fmt "; it may not always be at offset 12.
	pos := 12
	for pos+8 <= len(wav) {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		if chunkID == "fmt " {
			if pos+8+16 > len(wav) {
				return 0, fmt.Errorf("fmt chunk too short")
			}
			sampleRate := int64(binary.LittleEndian.Uint32(wav[pos+8+4 : pos+8+8]))
			blockAlign := int64(binary.LittleEndian.Uint16(wav[pos+8+12 : pos+8+14]))
			if sampleRate == 0 || blockAlign == 0 {
				return 0, fmt.Errorf("invalid fmt chunk: sampleRate=%d blockAlign=%d", sampleRate, blockAlign)
			}

			// Find data chunk size.
			dataSize, err := findDataChunkSize(wav)
			if err != nil {
				return 0, err
			}

			frames := dataSize / blockAlign
			nanos := frames * int64(time.Second) / sampleRate
			return time.Duration(nanos), nil
		}
		pos += 8 + chunkSize
		if chunkSize%2 != 0 {
			pos++ // RIFF pad byte
		}
	}
	return 0, fmt.Errorf("fmt chunk not found")
}

func findDataChunkSize(wav []byte) (int64, error) {
	pos := 12
	for pos+8 <= len(wav) {
		chunkID := string(wav[pos : pos+4])
		chunkSize := int64(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		if chunkID == "data" {
			return chunkSize, nil
		}
		pos += 8 + int(chunkSize)
		if chunkSize%2 != 0 {
			pos++
		}
	}
	return 0, fmt.Errorf("data chunk not found")
}

// ---------------------------------------------------------------------------
// RTF threshold gate
// ---------------------------------------------------------------------------

// CheckRTFThreshold returns an error if meanRTF > threshold.
// A threshold of 0 disables the gate.
func CheckRTFThreshold(meanRTF, threshold float64) error {
	if threshold <= 0 {
		return nil
	}
	if meanRTF > threshold {
		return fmt.Errorf("mean RTF %.3f exceeds threshold %.3f", meanRTF, threshold)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable ASCII table per format to w.
func FormatTable(reports []Report, w io.Writer) {
	sb := &strings.Builder{}

	for i, rep := range reports {
		if i > 0 {
			fmt.Fprintln(sb)
		}
		fmt.Fprintf(sb, "format %s\n", rep.Format)
		fmt.Fprintf(sb, "%-5s  %-5s  %10s  %12s  %10s  %8s\n", "Run", "Cold", "MS", "Audio(ms)", "Bytes", "RTF")
		fmt.Fprintln(sb, strings.Repeat("-", 60))

		for _, r := range rep.Runs {
			cold := ""
			if r.Cold {
				cold = "yes"
			}
			fmt.Fprintf(sb, "%-5d  %-5s  %10.3f  %12.1f  %10d  %8.4f\n",
				r.Index+1,
				cold,
				millis(r.Duration),
				millis(r.WAVDuration),
				r.Bytes,
				r.RTF,
			)
		}

		fmt.Fprintln(sb, strings.Repeat("-", 60))
		fmt.Fprintf(sb, "%-5s  %-5s  %10.3f  %12s  %10s  %8s  (min)\n", "", "", millis(rep.Stats.Min), "", "", "")
		fmt.Fprintf(sb, "%-5s  %-5s  %10.3f  %12s  %10s  %8.4f  (mean)\n", "", "", millis(rep.Stats.Mean), "", "", rep.MeanRTF)
		fmt.Fprintf(sb, "%-5s  %-5s  %10.3f  %12s  %10s  %8s  (max)\n", "", "", millis(rep.Stats.Max), "", "", "")
	}

	fmt.Fprint(w, sb.String())
}

// millis converts d to fractional milliseconds.
func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// jsonReport is the per-format JSON structure emitted by FormatJSON.
type jsonReport struct {
	Format  string    `json:"format"`
	Runs    []jsonRun `json:"runs"`
	Stats   jsonStats `json:"stats"`
	MeanRTF float64   `json:"mean_rtf"`
}

type jsonRun struct {
	Index      int     `json:"index"`
	Cold       bool    `json:"cold"`
	DurationMS float64 `json:"duration_ms"`
	AudioMS    float64 `json:"audio_ms"`
	Bytes      int     `json:"bytes"`
	RTF        float64 `json:"rtf"`
}

type jsonStats struct {
	MinMS  float64 `json:"min_ms"`
	MeanMS float64 `json:"mean_ms"`
	MaxMS  float64 `json:"max_ms"`
}

// FormatJSON writes a JSON array with one report per format to w.
func FormatJSON(reports []Report, w io.Writer) error {
	out := make([]jsonReport, len(reports))
	for i, rep := range reports {
		jr := jsonReport{
			Format: rep.Format,
			Runs:   make([]jsonRun, len(rep.Runs)),
			Stats: jsonStats{
				MinMS:  millis(rep.Stats.Min),
				MeanMS: millis(rep.Stats.Mean),
				MaxMS:  millis(rep.Stats.Max),
			},
			MeanRTF: rep.MeanRTF,
		}
		for j, r := range rep.Runs {
			jr.Runs[j] = jsonRun{
				Index:      r.Index,
				Cold:       r.Cold,
				DurationMS: millis(r.Duration),
				AudioMS:    millis(r.WAVDuration),
				Bytes:      r.Bytes,
				RTF:        r.RTF,
			}
		}
		out[i] = jr
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
