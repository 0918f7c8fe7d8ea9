package cw

import (
	"sync"

	"github.com/ColonelBlimp/cwdecoder/internal/morse"
)

// StreamDecoder is an incremental, event-by-event Morse decoder for live
// audio: it emits characters and spaces as they become certain, and can
// be driven by a periodic timeout check to flush a pending character
// across a long silence even when no further confirmed transition ever
// arrives.
//
// Unlike the original design this is ported from, CheckTimeout here
// tracks a wordSpacePending flag so that a silence which grows past the
// word-space threshold still emits exactly one word space even after
// the pending symbol (if any) has already been flushed by an earlier,
// smaller threshold crossing — the original's check_timeout only ever
// emitted a word space alongside a pending symbol flush, so silences
// that grew past the word threshold with no symbol pending produced no
// space at all.
type StreamDecoder struct {
	mu sync.Mutex

	wpm  float64
	unit float64

	currentSymbol []byte

	// wordSpacePending is set once a silence has crossed the
	// symbol-space threshold (so a character might already have been
	// flushed) and cleared either when the word space is actually
	// emitted or when a new on-transition begins a fresh character.
	wordSpacePending bool
	// wordSpaceEmitted guards against emitting more than one space for
	// the same continuously growing silence.
	wordSpaceEmitted bool
}

// NewStreamDecoder creates a streaming decoder at the given initial WPM.
func NewStreamDecoder(wpm float64) *StreamDecoder {
	d := &StreamDecoder{}
	d.SetWPM(wpm)
	return d
}

// SetWPM recomputes the unit time without touching any in-progress
// symbol or pending-flush state.
func (d *StreamDecoder) SetWPM(wpm float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.wpm = wpm
	d.unit = UnitSeconds(wpm)
}

// WPM returns the decoder's current WPM.
func (d *StreamDecoder) WPM() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wpm
}

// ProcessEvent processes one confirmed state transition (a completed
// on-run or a completed off-run) and returns any text it produces.
func (d *StreamDecoder) ProcessEvent(duration float64, isOn bool) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if isOn {
		// A new tone starting always means any pending word space has
		// been superseded by further traffic.
		d.wordSpacePending = false
		d.wordSpaceEmitted = false

		dotLimit := DotLimitUnits * d.unit
		if duration < dotLimit {
			d.currentSymbol = append(d.currentSymbol, '.')
		} else {
			d.currentSymbol = append(d.currentSymbol, '-')
		}
		return ""
	}

	symbolSpaceLimit := SymbolSpaceLimitUnits * d.unit
	wordSpaceLimit := WordSpaceLimitUnits * d.unit

	if duration > wordSpaceLimit {
		out := d.flushLocked()
		if !d.wordSpaceEmitted {
			out += " "
			d.wordSpaceEmitted = true
		}
		d.wordSpacePending = false
		return out
	}
	if duration > symbolSpaceLimit {
		out := d.flushLocked()
		d.wordSpacePending = true
		return out
	}
	// Intra-character gap: no action.
	return ""
}

// CheckTimeout is called periodically while a silence continues (i.e.
// no confirmed off-transition has closed it yet) to flush a pending
// character, and — per the corrected contract — to emit the word space
// exactly once even if no character was pending when the silence grew
// past the word-space threshold.
func (d *StreamDecoder) CheckTimeout(silenceDuration float64) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	symbolSpaceLimit := SymbolSpaceLimitUnits * d.unit
	wordSpaceLimit := WordSpaceLimitUnits * d.unit

	if silenceDuration > wordSpaceLimit {
		out := d.flushLocked()
		if !d.wordSpaceEmitted && (out != "" || d.wordSpacePending) {
			out += " "
			d.wordSpaceEmitted = true
		}
		d.wordSpacePending = false
		return out
	}
	if silenceDuration > symbolSpaceLimit {
		out := d.flushLocked()
		d.wordSpacePending = true
		return out
	}
	return ""
}

// flushLocked emits the current symbol as a character, if mapped, and
// clears it. Caller must hold d.mu.
func (d *StreamDecoder) flushLocked() string {
	if len(d.currentSymbol) == 0 {
		return ""
	}
	code := string(d.currentSymbol)
	d.currentSymbol = d.currentSymbol[:0]
	if ch, ok := morse.Decode(code); ok {
		return string(ch)
	}
	return ""
}

// Reset clears all decoder state, keeping the current WPM.
func (d *StreamDecoder) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.currentSymbol = d.currentSymbol[:0]
	d.wordSpacePending = false
	d.wordSpaceEmitted = false
}
