package cw

import (
	"github.com/ColonelBlimp/cwdecoder/internal/dsp"
	"github.com/ColonelBlimp/cwdecoder/internal/morse"
)

// TimedChar pairs a decoded character (or word-space) with the
// cumulative audio time at which its terminating gap ended.
type TimedChar struct {
	Text           string
	EndTimeSeconds float64
}

// Decoder consumes a finite event sequence and a WPM estimate and
// produces decoded text, optionally with per-character timestamps. It
// holds no state across calls to DecodeEvents/DecodeEventsTimed — each
// call processes one complete, self-contained event sequence.
type Decoder struct{}

// NewDecoder creates a batch Morse decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodeEvents decodes a finite event sequence at the given WPM into
// text. Unmapped dot/dash strings are silently dropped.
func (d *Decoder) DecodeEvents(events []dsp.Event, wpm float64) string {
	var out []byte
	for _, tc := range d.DecodeEventsTimed(events, wpm) {
		out = append(out, tc.Text...)
	}
	return string(out)
}

// DecodeEventsTimed decodes a finite event sequence at the given WPM
// into a sequence of timed characters (and word-space markers), each
// timestamped with the cumulative audio time at which its terminating
// gap ended.
func (d *Decoder) DecodeEventsTimed(events []dsp.Event, wpm float64) []TimedChar {
	unit := UnitSeconds(wpm)
	dotLimit := DotLimitUnits * unit
	symbolSpaceLimit := SymbolSpaceLimitUnits * unit
	wordSpaceLimit := WordSpaceLimitUnits * unit

	var out []TimedChar
	var currentSymbol []byte
	var accumulated float64
	lastWasSpace := false

	flush := func(at float64) {
		if len(currentSymbol) == 0 {
			return
		}
		if ch, ok := morse.Decode(string(currentSymbol)); ok {
			out = append(out, TimedChar{Text: string(ch), EndTimeSeconds: at})
			lastWasSpace = false
		}
		currentSymbol = currentSymbol[:0]
	}

	for _, ev := range events {
		accumulated += ev.Duration
		if ev.IsOn {
			if ev.Duration < dotLimit {
				currentSymbol = append(currentSymbol, '.')
			} else {
				currentSymbol = append(currentSymbol, '-')
			}
			continue
		}

		// Silence.
		if ev.Duration > wordSpaceLimit {
			flush(accumulated)
			if !lastWasSpace {
				out = append(out, TimedChar{Text: " ", EndTimeSeconds: accumulated})
				lastWasSpace = true
			}
		} else if ev.Duration > symbolSpaceLimit {
			flush(accumulated)
		}
		// else: intra-character gap, no action.
	}

	flush(accumulated)

	return out
}
