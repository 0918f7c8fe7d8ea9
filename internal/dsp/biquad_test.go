package dsp

import (
	"math"
	"testing"
)

func TestNewBiquad_ValidConfig(t *testing.T) {
	b, err := NewBiquad(DefaultCenterHz, 44100, DefaultQ)
	if err != nil {
		t.Fatalf("NewBiquad() error = %v", err)
	}
	if b == nil {
		t.Fatal("NewBiquad() returned nil")
	}
}

func TestNewBiquad_InvalidSampleRate(t *testing.T) {
	if _, err := NewBiquad(600, 0, 5); err != ErrInvalidSampleRate {
		t.Errorf("got %v, want %v", err, ErrInvalidSampleRate)
	}
	if _, err := NewBiquad(600, -1, 5); err != ErrInvalidSampleRate {
		t.Errorf("got %v, want %v", err, ErrInvalidSampleRate)
	}
}

func TestNewBiquad_InvalidFrequency(t *testing.T) {
	if _, err := NewBiquad(0, 44100, 5); err != ErrInvalidFrequency {
		t.Errorf("got %v, want %v", err, ErrInvalidFrequency)
	}
	if _, err := NewBiquad(30000, 44100, 5); err != ErrInvalidFrequency {
		t.Errorf("got %v, want %v", err, ErrInvalidFrequency)
	}
}

func TestNewBiquad_InvalidQ(t *testing.T) {
	if _, err := NewBiquad(600, 44100, 0); err != ErrInvalidQ {
		t.Errorf("got %v, want %v", err, ErrInvalidQ)
	}
	if _, err := NewBiquad(600, 44100, -2); err != ErrInvalidQ {
		t.Errorf("got %v, want %v", err, ErrInvalidQ)
	}
}

func TestBiquad_ZeroInputAfterResetYieldsZero(t *testing.T) {
	b, err := NewBiquad(600, 44100, 5)
	if err != nil {
		t.Fatal(err)
	}
	// Warm up with noise then reset.
	for i := 0; i < 100; i++ {
		b.Process(float64(i%7) - 3)
	}
	b.Reset()
	for i := 0; i < 1000; i++ {
		y := b.Process(0)
		if y != 0 {
			t.Fatalf("Process(0) after reset = %v at sample %d, want 0", y, i)
		}
	}
}

func TestBiquad_PassesCenterFrequency(t *testing.T) {
	const fs = 8000.0
	b, err := NewBiquad(600, fs, 5)
	if err != nil {
		t.Fatal(err)
	}
	// Feed a steady 600 Hz tone and confirm settled output has comparable
	// amplitude to the input (a bandpass filter near its own center
	// frequency should pass it largely unattenuated).
	n := 4000
	var peak float64
	for i := 0; i < n; i++ {
		x := math.Sin(2 * math.Pi * 600 * float64(i) / fs)
		y := b.Process(x)
		if i > n/2 { // only look at the settled tail
			if math.Abs(y) > peak {
				peak = math.Abs(y)
			}
		}
	}
	if peak < 0.8 {
		t.Errorf("settled peak amplitude at center frequency = %v, want >= 0.8", peak)
	}
}

func TestBiquad_AttenuatesFarFromCenter(t *testing.T) {
	const fs = 8000.0
	b, err := NewBiquad(600, fs, 5)
	if err != nil {
		t.Fatal(err)
	}
	n := 4000
	var peak float64
	for i := 0; i < n; i++ {
		x := math.Sin(2 * math.Pi * 2000 * float64(i) / fs)
		y := b.Process(x)
		if i > n/2 {
			if math.Abs(y) > peak {
				peak = math.Abs(y)
			}
		}
	}
	if peak > 0.3 {
		t.Errorf("settled peak amplitude far from center = %v, want < 0.3", peak)
	}
}

func TestBiquad_ReconfigureDoesNotResetHistory(t *testing.T) {
	b, err := NewBiquad(600, 8000, 5)
	if err != nil {
		t.Fatal(err)
	}
	b.Process(1)
	b.Process(-1)
	before := b.x1
	if err := b.Configure(500, 8000, 3); err != nil {
		t.Fatal(err)
	}
	if b.x1 != before {
		t.Errorf("Configure reset history: x1 = %v, want %v", b.x1, before)
	}
}
