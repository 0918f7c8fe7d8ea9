package morse

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for ch := range charToCode {
		code, ok := Encode(ch)
		if !ok {
			t.Fatalf("Encode(%q) not ok", ch)
		}
		decoded, ok := Decode(code)
		if !ok {
			t.Fatalf("Decode(%q) not ok", code)
		}
		if decoded != toUpper(ch) {
			t.Errorf("round trip %q: got %q, want %q", ch, decoded, toUpper(ch))
		}
	}
}

func TestEncodeCaseInsensitive(t *testing.T) {
	lower, ok := Encode('s')
	if !ok {
		t.Fatal("Encode('s') not ok")
	}
	upper, ok := Encode('S')
	if !ok {
		t.Fatal("Encode('S') not ok")
	}
	if lower != upper {
		t.Errorf("case mismatch: %q vs %q", lower, upper)
	}
	if lower != "..." {
		t.Errorf("Encode('s') = %q, want %q", lower, "...")
	}
}

func TestEncodeUnmapped(t *testing.T) {
	if _, ok := Encode('$'); ok {
		t.Error("Encode('$') should not be ok")
	}
	if _, ok := Encode(' '); ok {
		t.Error("Encode(' ') should not be ok; word space is timing, not a symbol")
	}
}

func TestParenCodes(t *testing.T) {
	code, ok := Encode('(')
	if !ok || code != "-.--." {
		t.Errorf("Encode('(') = %q, %v, want %q, true", code, ok, "-.--.")
	}
	code, ok = Encode(')')
	if !ok || code != "-.--.-" {
		t.Errorf("Encode(')') = %q, %v, want %q, true", code, ok, "-.--.-")
	}
}

func TestDecodeUnmapped(t *testing.T) {
	if _, ok := Decode("......"); ok {
		t.Error("Decode of an unmapped 6-symbol string should not be ok")
	}
	if _, ok := Decode(""); ok {
		t.Error("Decode(\"\") should not be ok")
	}
}

func TestSOS(t *testing.T) {
	want := "...---..."
	got := ""
	for _, ch := range "sos" {
		code, _ := Encode(ch)
		got += code
	}
	if got != want {
		t.Errorf("SOS encode = %q, want %q", got, want)
	}
}
