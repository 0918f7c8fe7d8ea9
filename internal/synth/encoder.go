// Package synth implements the Morse text encoder and the sine-wave
// synthesizer that renders encoded events to 16-bit PCM.
package synth

import (
	"github.com/ColonelBlimp/cwdecoder/internal/cw"
	"github.com/ColonelBlimp/cwdecoder/internal/dsp"
	"github.com/ColonelBlimp/cwdecoder/internal/morse"
)

// EncodeText converts text into a sequence of duration events at the
// given WPM, following standard Paris timing. Unmapped characters are
// skipped; a space character emits a single 4-unit silence which,
// combined with the 3-unit trailing gap already appended after the
// previous character, forms the 7-unit inter-word gap.
//
// The returned sequence ends with 3 units of trailing silence after the
// last mapped character.
func EncodeText(text string, wpm float64) []dsp.Event {
	unit := cw.UnitSeconds(wpm)
	normalized := morse.Normalize(text)

	var events []dsp.Event

	// addOff accumulates consecutive silences into a single event: the
	// decoder classifies a silence by its total duration against fixed
	// thresholds, so a 3-unit inter-character gap must reach the
	// decoder as one event, not as a 1-unit and a 2-unit event in a row.
	addOff := func(d float64) {
		if n := len(events); n > 0 && !events[n-1].IsOn {
			events[n-1].Duration += d
			return
		}
		events = append(events, dsp.Event{Duration: d, IsOn: false})
	}

	for _, r := range normalized {
		if r == ' ' {
			addOff(4 * unit)
			continue
		}

		code, ok := morse.Encode(r)
		if !ok {
			continue
		}

		for _, sym := range code {
			switch sym {
			case '.':
				events = append(events, dsp.Event{Duration: unit, IsOn: true})
			case '-':
				events = append(events, dsp.Event{Duration: 3 * unit, IsOn: true})
			}
			addOff(unit)
		}

		// Upgrade the last symbol's 1-unit intra-symbol gap to the
		// 3-unit inter-character gap.
		addOff(2 * unit)
	}

	return events
}
