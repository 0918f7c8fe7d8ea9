// Package wavfile writes canonical RIFF/WAVE containers around 16-bit
// PCM sample data.
package wavfile

import (
	"bytes"
	"errors"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrInvalidSampleRate is returned when the requested sample rate is not
// positive.
var ErrInvalidSampleRate = errors.New("wavfile: sample rate must be positive")

const (
	bitsPerSample = 16
	pcmFormat     = 1 // audioFormat 1 = integer PCM
)

// Write renders mono 16-bit PCM samples into a canonical little-endian
// RIFF/WAVE byte stream: "RIFF" size "WAVE" "fmt " ... "data" size
// samples. Equal inputs always produce byte-identical output.
func Write(samples []int16, sampleRateHz int, channels int) ([]byte, error) {
	if sampleRateHz <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if channels <= 0 {
		channels = 1
	}

	buf := &memSeeker{}
	enc := wav.NewEncoder(buf, sampleRateHz, bitsPerSample, channels, pcmFormat)

	ints := make([]int, len(samples))
	for i, s := range samples {
		ints[i] = int(s)
	}

	intBuf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRateHz,
		},
		Data:           ints,
		SourceBitDepth: bitsPerSample,
	}

	if err := enc.Write(intBuf); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.bytes(), nil
}

// memSeeker is a minimal in-memory io.WriteSeeker: go-audio/wav.Encoder
// is file-oriented (it seeks back to patch the RIFF/data chunk sizes
// once the sample count is known), so this adapter lets it drive an
// in-memory byte slice instead of a real file.
type memSeeker struct {
	buf []byte
	pos int
}

func (m *memSeeker) Write(p []byte) (int, error) {
	end := m.pos + len(p)
	if end > len(m.buf) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memSeeker) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = int64(m.pos) + offset
	case io.SeekEnd:
		newPos = int64(len(m.buf)) + offset
	default:
		return 0, errors.New("wavfile: invalid seek whence")
	}
	if newPos < 0 {
		return 0, errors.New("wavfile: negative seek position")
	}
	m.pos = int(newPos)
	return newPos, nil
}

func (m *memSeeker) bytes() []byte {
	return bytes.Clone(m.buf)
}
