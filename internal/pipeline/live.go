package pipeline

import (
	"github.com/ColonelBlimp/cwdecoder/internal/cw"
	"github.com/ColonelBlimp/cwdecoder/internal/dsp"
)

// LiveConfig configures a persistent live-decode stream.
type LiveConfig struct {
	CenterHz  float64
	Q         float64
	Threshold float64
	ReleaseS  float64
	MinEventS float64
	WPM       float64
}

// DefaultLiveConfig returns the spec's default bandpass/envelope
// parameters tuned for realtime (microphone) decoding.
func DefaultLiveConfig() LiveConfig {
	return LiveConfig{
		CenterHz:  dsp.DefaultCenterHz,
		Q:         dsp.DefaultQ,
		Threshold: dsp.DefaultThresholdLive,
		ReleaseS:  dsp.DefaultReleaseSeconds,
		MinEventS: dsp.DefaultMinEventSeconds,
		WPM:       cw.DefaultWPM,
	}
}

// Live owns the filter, envelope detector, and streaming decoder for one
// continuous audio stream. These three must stay bound together for the
// life of the stream: envelope and decoder state both cross chunk
// boundaries, so a new Live instance must never be created per chunk.
type Live struct {
	filter   *dsp.Biquad
	detector *dsp.EdgeDetector
	decoder  *cw.StreamDecoder

	filterConfigured bool
	cfg              LiveConfig
}

// NewLive creates a live pipeline. The bandpass filter is left
// unconfigured until the first chunk is processed, since its sample
// rate is not known until then.
func NewLive(cfg LiveConfig) (*Live, error) {
	detector, err := dsp.NewEdgeDetector(dsp.EdgeDetectorConfig{
		// SampleRateHz is filled in on the first chunk; use a
		// placeholder that passes validation until then.
		SampleRateHz:    1,
		ReleaseSeconds:  cfg.ReleaseS,
		Threshold:       cfg.Threshold,
		MinEventSeconds: cfg.MinEventS,
	})
	if err != nil {
		return nil, err
	}

	return &Live{
		detector: detector,
		decoder:  cw.NewStreamDecoder(cfg.WPM),
		cfg:      cfg,
	}, nil
}

// ProcessBuffer decodes one incoming PCM chunk and returns the text it
// produced. On the first call, the bandpass filter (and the envelope
// detector's sample-rate-dependent decay) is configured for
// sampleRateHz; subsequent calls may pass the same rate.
func (l *Live) ProcessBuffer(samples []float32, sampleRateHz float64) (string, error) {
	if !l.filterConfigured {
		filter, err := dsp.NewBiquad(l.cfg.CenterHz, sampleRateHz, l.cfg.Q)
		if err != nil {
			return "", err
		}
		detector, err := dsp.NewEdgeDetector(dsp.EdgeDetectorConfig{
			SampleRateHz:    sampleRateHz,
			ReleaseSeconds:  l.cfg.ReleaseS,
			Threshold:       l.cfg.Threshold,
			MinEventSeconds: l.cfg.MinEventS,
		})
		if err != nil {
			return "", err
		}
		l.filter = filter
		l.detector = detector
		l.filterConfigured = true
	}

	var out []byte
	for _, s := range samples {
		filtered := l.filter.Process(float64(s))
		if ev, ok := l.detector.Process(float32(filtered)); ok {
			out = append(out, l.decoder.ProcessEvent(ev.Duration, ev.IsOn)...)
		}
	}

	if silence, ok := l.detector.CurrentSilenceDuration(); ok {
		out = append(out, l.decoder.CheckTimeout(silence)...)
	}

	return string(out), nil
}

// SetWPM adjusts the streaming decoder's assumed sending speed without
// disturbing filter or envelope state.
func (l *Live) SetWPM(wpm float64) {
	l.decoder.SetWPM(wpm)
}

// Reset clears filter history, envelope state, and decoder state,
// while keeping the configured bandpass/envelope parameters.
func (l *Live) Reset() {
	if l.filter != nil {
		l.filter.Reset()
	}
	l.detector.Reset()
	l.decoder.Reset()
}
