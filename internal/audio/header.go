package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// HeaderSize is the length of the canonical RIFF/WAVE/fmt/data header.
const HeaderSize = 44

// MaxDataSize is the largest payload whose sizes still fit the 32-bit RIFF
// fields.
const MaxDataSize = math.MaxUint32 - HeaderSize

const (
	tagRIFF = "RIFF"
	tagWAVE = "WAVE"
	tagFmt  = "fmt "
	tagData = "data"

	fmtChunkSize = 16
	formatPCM    = 1
)

// Header is a PCM WAV header. A new Header is unsized and cannot be
// serialized until SetDataSize records the payload length.
type Header struct {
	fileSize      uint32
	numChannels   uint16
	sampleRate    uint32
	byteRate      uint32
	blockAlign    uint16
	bitsPerSample uint16
	dataSize      uint32
	sized         bool
}

// NewHeader derives the rate and alignment fields from the stream layout.
func NewHeader(sampleRate uint32, bitsPerSample, numChannels uint16) *Header {
	return &Header{
		numChannels:   numChannels,
		sampleRate:    sampleRate,
		byteRate:      uint32(uint64(sampleRate) * uint64(bitsPerSample) * uint64(numChannels) / 8),
		blockAlign:    bitsPerSample / 8 * numChannels,
		bitsPerSample: bitsPerSample,
	}
}

// SetDataSize records the payload length in bytes. The file size becomes
// HeaderSize + n. It panics if n exceeds MaxDataSize, since the RIFF size
// field would wrap; callers validate the payload size first.
func (h *Header) SetDataSize(n uint32) {
	if n > MaxDataSize {
		panic(fmt.Sprintf("audio: data size %d exceeds MaxDataSize %d", n, uint32(MaxDataSize)))
	}
	h.fileSize = HeaderSize + n
	h.dataSize = n
	h.sized = true
}

func (h *Header) Sized() bool           { return h.sized }
func (h *Header) FileSize() uint32      { return h.fileSize }
func (h *Header) DataSize() uint32      { return h.dataSize }
func (h *Header) SampleRate() uint32    { return h.sampleRate }
func (h *Header) NumChannels() uint16   { return h.numChannels }
func (h *Header) BitsPerSample() uint16 { return h.bitsPerSample }
func (h *Header) ByteRate() uint32      { return h.byteRate }
func (h *Header) BlockAlign() uint16    { return h.blockAlign }

// AppendBinary appends the little-endian header to b.
//
// The RIFF chunk size excludes the 8-byte chunk ID and size field, so it is
// written as FileSize - 8.
func (h *Header) AppendBinary(b []byte) ([]byte, error) {
	if !h.sized {
		return b, ErrUnsizedHeader
	}

	b = append(b, tagRIFF...)
	b = binary.LittleEndian.AppendUint32(b, h.fileSize-8)
	b = append(b, tagWAVE...)

	b = append(b, tagFmt...)
	b = binary.LittleEndian.AppendUint32(b, fmtChunkSize)
	b = binary.LittleEndian.AppendUint16(b, formatPCM)
	b = binary.LittleEndian.AppendUint16(b, h.numChannels)
	b = binary.LittleEndian.AppendUint32(b, h.sampleRate)
	b = binary.LittleEndian.AppendUint32(b, h.byteRate)
	b = binary.LittleEndian.AppendUint16(b, h.blockAlign)
	b = binary.LittleEndian.AppendUint16(b, h.bitsPerSample)

	b = append(b, tagData...)
	b = binary.LittleEndian.AppendUint32(b, h.dataSize)

	return b, nil
}

// MarshalBinary returns the 44 header bytes.
func (h *Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, HeaderSize))
}
