// Package morse provides the canonical ITU dot/dash code table used by
// both the decoder and the encoder.
package morse

import "strings"

// charToCode is the canonical letter/digit/punctuation table. Keys are
// lowercase; decoded output is uppercased by the caller.
var charToCode = map[rune]string{
	'a': ".-", 'b': "-...", 'c': "-.-.", 'd': "-..", 'e': ".",
	'f': "..-.", 'g': "--.", 'h': "....", 'i': "..", 'j': ".---",
	'k': "-.-", 'l': ".-..", 'm': "--", 'n': "-.", 'o': "---",
	'p': ".--.", 'q': "--.-", 'r': ".-.", 's': "...", 't': "-",
	'u': "..-", 'v': "...-", 'w': ".--", 'x': "-..-", 'y': "-.--",
	'z': "--..",

	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",

	'.': ".-.-.-", ',': "--..--", '?': "..--..", '/': "-..-.",
	'-': "-....-", '(': "-.--.", ')': "-.--.-",
}

// codeToChar is the inverse of charToCode, built once at init time.
var codeToChar map[string]rune

func init() {
	codeToChar = make(map[string]rune, len(charToCode))
	for ch, code := range charToCode {
		codeToChar[code] = ch
	}
}

// Encode returns the dot/dash code for a character. The character is
// normalized to lowercase before lookup. ok is false for characters not
// in the table (including the space character, which is never encoded
// through this table — word spacing is a timing artifact, not a symbol).
func Encode(ch rune) (code string, ok bool) {
	code, ok = charToCode[toLower(ch)]
	return code, ok
}

// Decode returns the uppercase character for a dot/dash code. ok is false
// for codes not in the table.
func Decode(code string) (ch rune, ok bool) {
	ch, ok = codeToChar[code]
	if ok {
		ch = toUpper(ch)
	}
	return ch, ok
}

// Normalize lowercases text for encoding, leaving spaces untouched.
func Normalize(text string) string {
	return strings.ToLower(text)
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
