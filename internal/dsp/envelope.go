package dsp

import (
	"errors"
	"math"
)

var (
	// ErrInvalidThreshold indicates the detection threshold must be positive.
	ErrInvalidThreshold = errors.New("threshold must be positive")
	// ErrInvalidReleaseTau indicates the envelope release time constant must be positive.
	ErrInvalidReleaseTau = errors.New("release time constant must be positive")
	// ErrInvalidMinEventDuration indicates the glitch-suppression floor must be non-negative.
	ErrInvalidMinEventDuration = errors.New("minimum event duration must be non-negative")
)

// Default thresholds from spec.md §4.C.
const (
	DefaultReleaseSeconds  = 0.005
	DefaultMinEventSeconds = 0.005
	DefaultThresholdLive   = 0.01
	DefaultThresholdBatch  = 0.05
)

// Event is a duration event: a keyed tone interval (IsOn) or a silence,
// lasting Duration seconds.
type Event struct {
	Duration float64
	IsOn     bool
}

// EdgeDetectorConfig configures the envelope follower and edge detector.
type EdgeDetectorConfig struct {
	SampleRateHz    float64
	ReleaseSeconds  float64 // envelope release time constant τ
	Threshold       float64
	MinEventSeconds float64 // glitch-suppression floor
}

// EdgeDetector rectifies, peak-holds, and exponentially decays an audio
// signal's envelope, thresholds it, and debounces the result into a
// sequence of on/off duration events.
type EdgeDetector struct {
	cfg   EdgeDetectorConfig
	decay float64

	envelope   float64
	isSignalOn bool
	runFrames  uint64
}

// NewEdgeDetector creates an edge detector with the given configuration.
func NewEdgeDetector(cfg EdgeDetectorConfig) (*EdgeDetector, error) {
	if cfg.SampleRateHz <= 0 || math.IsNaN(cfg.SampleRateHz) {
		return nil, ErrInvalidSampleRate
	}
	if cfg.ReleaseSeconds <= 0 || math.IsNaN(cfg.ReleaseSeconds) {
		return nil, ErrInvalidReleaseTau
	}
	if cfg.Threshold <= 0 || math.IsNaN(cfg.Threshold) {
		return nil, ErrInvalidThreshold
	}
	if cfg.MinEventSeconds < 0 || math.IsNaN(cfg.MinEventSeconds) {
		return nil, ErrInvalidMinEventDuration
	}

	d := &EdgeDetector{cfg: cfg}
	d.decay = math.Exp(-1.0 / (cfg.SampleRateHz * cfg.ReleaseSeconds))
	return d, nil
}

// Process advances the envelope follower by one sample. It returns a
// confirmed event when a debounced transition completes, or ok=false
// when the sample merely continues the current run (or was absorbed as
// a glitch).
func (d *EdgeDetector) Process(x float32) (ev Event, ok bool) {
	a := math.Abs(float64(x))
	if a > d.envelope {
		d.envelope = a
	} else {
		d.envelope *= d.decay
	}

	nowOn := d.envelope > d.cfg.Threshold

	if nowOn == d.isSignalOn {
		d.runFrames++
		return Event{}, false
	}

	duration := float64(d.runFrames) / d.cfg.SampleRateHz
	if duration > d.cfg.MinEventSeconds {
		ev = Event{Duration: duration, IsOn: d.isSignalOn}
		d.isSignalOn = nowOn
		d.runFrames = 0
		return ev, true
	}

	// Glitch: too short to be real, stays part of the current run.
	d.runFrames++
	return Event{}, false
}

// FlushTrailing returns a final event for whatever run is currently in
// progress, for use at the end of a finite buffer (batch mode). It does
// not reset state.
func (d *EdgeDetector) FlushTrailing() (ev Event, ok bool) {
	if d.runFrames == 0 {
		return Event{}, false
	}
	duration := float64(d.runFrames) / d.cfg.SampleRateHz
	return Event{Duration: duration, IsOn: d.isSignalOn}, true
}

// CurrentSilenceDuration reports the in-progress run length in seconds
// when the detector is currently in a silence run; used by the live
// pipeline to drive the streaming decoder's timeout path without
// emitting a closed event. ok is false while a tone is in progress.
func (d *EdgeDetector) CurrentSilenceDuration() (seconds float64, ok bool) {
	if d.isSignalOn {
		return 0, false
	}
	return float64(d.runFrames) / d.cfg.SampleRateHz, true
}

// Envelope returns the current envelope magnitude (for testing/monitoring).
func (d *EdgeDetector) Envelope() float64 {
	return d.envelope
}

// Reset clears all follower and debounce state.
func (d *EdgeDetector) Reset() {
	d.envelope = 0
	d.isSignalOn = false
	d.runFrames = 0
}
