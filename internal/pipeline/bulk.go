// Package pipeline wires the biquad filter, envelope follower, and
// Morse decoders into the two end-to-end pipelines spec.md §4.J and
// §4.K describe: a synchronous bulk (whole-buffer) pipeline and an
// incremental live (per-chunk) pipeline.
package pipeline

import (
	"github.com/ColonelBlimp/cwdecoder/internal/cw"
	"github.com/ColonelBlimp/cwdecoder/internal/dsp"
)

// BulkResult is the output of running an entire PCM buffer through the
// bulk pipeline: decoded text, the same text with per-character
// timestamps, and the WPM the pipeline estimated from the buffer.
type BulkResult struct {
	Text         string
	TimedChars   []cw.TimedChar
	EstimatedWPM float64
}

// BulkConfig configures a one-shot bulk decode.
type BulkConfig struct {
	CenterHz  float64
	Q         float64
	Threshold float64
	ReleaseS  float64
	MinEventS float64
}

// DefaultBulkConfig returns the spec's default bandpass/envelope
// parameters tuned for batch (file) decoding.
func DefaultBulkConfig() BulkConfig {
	return BulkConfig{
		CenterHz:  dsp.DefaultCenterHz,
		Q:         dsp.DefaultQ,
		Threshold: dsp.DefaultThresholdBatch,
		ReleaseS:  dsp.DefaultReleaseSeconds,
		MinEventS: dsp.DefaultMinEventSeconds,
	}
}

// DecodeBuffer runs a complete mono float32 PCM buffer, at its native
// sample rate, through the filter and envelope detector to obtain an
// event list, estimates WPM from that list, then decodes it to text.
func DecodeBuffer(samples []float32, sampleRateHz float64, cfg BulkConfig) (BulkResult, error) {
	filter, err := dsp.NewBiquad(cfg.CenterHz, sampleRateHz, cfg.Q)
	if err != nil {
		return BulkResult{}, err
	}
	detector, err := dsp.NewEdgeDetector(dsp.EdgeDetectorConfig{
		SampleRateHz:    sampleRateHz,
		ReleaseSeconds:  cfg.ReleaseS,
		Threshold:       cfg.Threshold,
		MinEventSeconds: cfg.MinEventS,
	})
	if err != nil {
		return BulkResult{}, err
	}

	events := make([]dsp.Event, 0, len(samples)/8)
	for _, s := range samples {
		filtered := filter.Process(float64(s))
		if ev, ok := detector.Process(float32(filtered)); ok {
			events = append(events, ev)
		}
	}
	if ev, ok := detector.FlushTrailing(); ok {
		events = append(events, ev)
	}

	var onDurations []float64
	for _, ev := range events {
		if ev.IsOn {
			onDurations = append(onDurations, ev.Duration)
		}
	}
	wpm := cw.EstimateWPM(onDurations)

	decoder := cw.NewDecoder()
	timed := decoder.DecodeEventsTimed(events, wpm)
	var text []byte
	for _, tc := range timed {
		text = append(text, tc.Text...)
	}

	return BulkResult{
		Text:         string(text),
		TimedChars:   timed,
		EstimatedWPM: wpm,
	}, nil
}
