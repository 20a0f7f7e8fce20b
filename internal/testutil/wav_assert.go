package testutil

import (
	"encoding/binary"
	"errors"
	"testing"
)

// Layout is the stream layout a WAV file is expected to declare.
type Layout struct {
	SampleRate    uint32
	Channels      uint16
	BitsPerSample uint16
}

// AssertValidWAV checks that data is a canonical PCM WAV file declaring
// layout: RIFF/WAVE markers, fmt fields consistent with each other, and a
// data chunk whose size matches the bytes that follow the header.
func AssertValidWAV(tb testing.TB, data []byte, layout Layout) {
	tb.Helper()

	if len(data) < 44 {
		tb.Fatalf("WAV data too short: %d bytes", len(data))
	}

	if string(data[0:4]) != "RIFF" {
		tb.Fatalf("WAV: missing RIFF header (got %q)", string(data[0:4]))
	}

	if riffSize := binary.LittleEndian.Uint32(data[4:8]); int(riffSize) != len(data)-8 {
		tb.Fatalf("WAV: RIFF size %d, want %d", riffSize, len(data)-8)
	}

	if string(data[8:12]) != "WAVE" {
		tb.Fatalf("WAV: missing WAVE marker (got %q)", string(data[8:12]))
	}

	if string(data[12:16]) != "fmt " {
		tb.Fatalf("WAV: missing fmt chunk (got %q)", string(data[12:16]))
	}

	// fmt chunk fields (little-endian).
	audioFmt := binary.LittleEndian.Uint16(data[20:22])
	if audioFmt != 1 {
		tb.Fatalf("WAV: expected PCM format (1), got %d", audioFmt)
	}

	channels := binary.LittleEndian.Uint16(data[22:24])
	if channels != layout.Channels {
		tb.Fatalf("WAV: expected %d channels, got %d", layout.Channels, channels)
	}

	sampleRate := binary.LittleEndian.Uint32(data[24:28])
	if sampleRate != layout.SampleRate {
		tb.Fatalf("WAV: expected sample rate %d, got %d", layout.SampleRate, sampleRate)
	}

	bitDepth := binary.LittleEndian.Uint16(data[34:36])
	if bitDepth != layout.BitsPerSample {
		tb.Fatalf("WAV: expected %d-bit depth, got %d", layout.BitsPerSample, bitDepth)
	}

	blockAlign := binary.LittleEndian.Uint16(data[32:34])
	if want := channels * bitDepth / 8; blockAlign != want {
		tb.Fatalf("WAV: block align %d, want %d", blockAlign, want)
	}

	byteRate := binary.LittleEndian.Uint32(data[28:32])
	if want := sampleRate * uint32(blockAlign); byteRate != want {
		tb.Fatalf("WAV: byte rate %d, want %d", byteRate, want)
	}

	dataSize, err := findDataChunkSize(data)
	if err != nil {
		tb.Fatalf("WAV: %v", err)
	}

	if int(dataSize) != len(data)-44 {
		tb.Fatalf("WAV: data chunk declares %d bytes, file carries %d", dataSize, len(data)-44)
	}

	if dataSize%uint32(blockAlign) != 0 {
		tb.Fatalf("WAV: data size %d is not a whole number of %d-byte frames", dataSize, blockAlign)
	}
}

// AssertWAVDurationApprox asserts that the WAV audio duration falls within
// [minSec, maxSec]. The frame size and rate are read from the fmt chunk.
func AssertWAVDurationApprox(tb testing.TB, data []byte, minSec, maxSec float64) {
	tb.Helper()

	if len(data) < 44 {
		tb.Fatalf("WAV duration check: data too short: %d bytes", len(data))
	}

	dataSize, err := findDataChunkSize(data)
	if err != nil {
		tb.Fatalf("WAV duration check: %v", err)
	}

	sampleRate := binary.LittleEndian.Uint32(data[24:28])
	blockAlign := binary.LittleEndian.Uint16(data[32:34])
	if sampleRate == 0 || blockAlign == 0 {
		tb.Fatalf("WAV duration check: sample rate %d, block align %d", sampleRate, blockAlign)
	}

	frames := dataSize / uint32(blockAlign)

	durationSec := float64(frames) / float64(sampleRate)
	if durationSec < minSec || durationSec > maxSec {
		tb.Fatalf("WAV duration %.3fs out of expected range [%.3fs, %.3fs]", durationSec, minSec, maxSec)
	}
}

// findDataChunkSize walks the WAV chunk list to locate the "data" sub-chunk
// and returns its size in bytes.
func findDataChunkSize(data []byte) (uint32, error) {
	// Start after the 12-byte RIFF/WAVE header.
	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])

		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		if id == "data" {
			return size, nil
		}

		offset += 8 + int(size)
		// Pad to even boundary.
		if size%2 != 0 {
			offset++
		}
	}

	return 0, errors.New("data chunk not found in WAV")
}
