package audio

import (
	"errors"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrInvalidWAVFile indicates the source is not a readable WAV file.
var ErrInvalidWAVFile = errors.New("audio: not a valid WAV file")

// WaveReader reads an entire WAV file into a mono float32 PCM buffer at
// its native sample rate. Only channel 0 is read from multi-channel
// files — this matches the bulk pipeline's input contract (spec.md §6):
// the caller downmixes by reading channel 0, not by averaging channels.
type WaveReader struct {
	decoder *wav.Decoder
}

// NewWaveReader opens a WAV source for reading.
func NewWaveReader(r io.ReadSeeker) (*WaveReader, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAVFile
	}
	return &WaveReader{decoder: decoder}, nil
}

// SampleRate returns the file's native sample rate in Hz.
func (w *WaveReader) SampleRate() float64 {
	return float64(w.decoder.Format().SampleRate)
}

// Channels returns the number of channels in the source file.
func (w *WaveReader) Channels() int {
	return w.decoder.Format().NumChannels
}

// ReadAll decodes the entire file into a single mono float32 buffer,
// normalized to [-1.0, 1.0], taking channel 0 of each frame.
func (w *WaveReader) ReadAll() ([]float32, error) {
	buf := &audio.IntBuffer{
		Format:         w.decoder.Format(),
		SourceBitDepth: 16,
	}

	var mono []float32
	chunk := make([]int, 4096*max1(w.Channels()))
	for {
		buf.Data = chunk
		n, err := w.decoder.PCMBuffer(buf)
		if n == 0 && err == nil {
			break
		}
		if err != nil && err != io.EOF {
			return nil, err
		}
		buf.Data = buf.Data[:n]

		// AsFloatBuffer only converts the integer samples to float64;
		// dividing by SourceBitDepth's full scale gives a fixed [-1,1]
		// conversion — deliberately not peak-normalized, since the
		// envelope detector depends on the signal's true physical
		// amplitude staying consistent across chunks.
		fb := buf.AsFloatBuffer()
		scale := float64(int64(1) << uint(buf.SourceBitDepth-1))

		channels := w.Channels()
		for i := 0; i < len(fb.Data); i += channels {
			mono = append(mono, float32(fb.Data[i]/scale))
		}

		if n < len(chunk) {
			break
		}
	}

	return mono, nil
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
