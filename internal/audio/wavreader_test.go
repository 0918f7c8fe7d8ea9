package audio

import (
	"bytes"
	"math"
	"testing"

	"github.com/ColonelBlimp/cwdecoder/internal/wavfile"
)

func TestWaveReader_RoundTripsMonoSamples(t *testing.T) {
	samples := []int16{0, 16384, -16384, 0, 8192, -8192}
	data, err := wavfile.Write(samples, 8000, 1)
	if err != nil {
		t.Fatalf("wavfile.Write: %v", err)
	}

	r, err := NewWaveReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewWaveReader: %v", err)
	}
	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %v, want 8000", r.SampleRate())
	}
	if r.Channels() != 1 {
		t.Errorf("Channels() = %v, want 1", r.Channels())
	}

	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(samples) {
		t.Fatalf("len(samples) = %d, want %d", len(got), len(samples))
	}
	for i, s := range samples {
		want := float32(s) / 32768.0
		if math.Abs(float64(got[i]-want)) > 1e-3 {
			t.Errorf("sample[%d] = %v, want ~%v", i, got[i], want)
		}
	}
}

func TestNewWaveReader_InvalidFile(t *testing.T) {
	if _, err := NewWaveReader(bytes.NewReader([]byte("not a wav file"))); err == nil {
		t.Error("NewWaveReader(garbage) err = nil, want error")
	}
}
