package synth

import (
	"math"

	"github.com/ColonelBlimp/cwdecoder/internal/dsp"
)

// Synthesis parameters.
const (
	DefaultFrequencyHz = 600.0
	DefaultSampleRate  = 44100.0
	EnvelopeRampMs     = 5.0

	// pcmAmplitude leaves headroom below the signed 16-bit ceiling
	// (32767) to avoid clipping on rounding.
	pcmAmplitude = 32000.0
)

// Synthesize renders a sequence of duration events to mono 16-bit PCM at
// the given frequency and sample rate. The sine phase is carried
// continuously across on-events (via a running frame counter) so
// adjacent tones stay phase-coherent; each on-event gets its own
// 5 ms linear attack/release ramp, clamped to half the event's length
// for very short events.
func Synthesize(events []dsp.Event, frequencyHz, sampleRateHz float64) []int16 {
	totalFrames := 0
	for _, ev := range events {
		totalFrames += framesFor(ev.Duration, sampleRateHz)
	}

	samples := make([]int16, totalFrames)
	rampFrames := int(math.Round(EnvelopeRampMs / 1000.0 * sampleRateHz))

	currentFrame := 0
	pos := 0
	for _, ev := range events {
		n := framesFor(ev.Duration, sampleRateHz)
		if !ev.IsOn {
			// Zero samples are the zero value already; just advance.
			currentFrame += n
			pos += n
			continue
		}

		ramp := rampFrames
		if half := n / 2; ramp > half {
			ramp = half
		}

		for i := 0; i < n; i++ {
			s := math.Sin(2 * math.Pi * frequencyHz * float64(currentFrame+i) / sampleRateHz)
			amplitude := 1.0
			if ramp > 0 {
				if i < ramp {
					amplitude = float64(i) / float64(ramp)
				} else if i > n-ramp {
					amplitude = float64(n-i) / float64(ramp)
				}
			}
			samples[pos+i] = int16(math.Round(s * amplitude * pcmAmplitude))
		}

		currentFrame += n
		pos += n
	}

	return samples
}

// framesFor converts an event duration in seconds to an integer sample
// count at the given sample rate.
func framesFor(durationSeconds, sampleRateHz float64) int {
	return int(math.Round(durationSeconds * sampleRateHz))
}
