package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ColonelBlimp/cwdecoder/internal/synth"
	"github.com/ColonelBlimp/cwdecoder/internal/wavfile"
)

func TestDecodeCmd_DecodesEncodedWAVFile(t *testing.T) {
	resetViperForTest()
	if err := initConfigForTest(); err != nil {
		t.Fatalf("initConfigForTest: %v", err)
	}

	const wpm = 20.0
	events := synth.EncodeText("hi", wpm)
	samples := synth.Synthesize(events, synth.DefaultFrequencyHz, synth.DefaultSampleRate)

	data, err := wavfile.Write(samples, int(synth.DefaultSampleRate), 1)
	if err != nil {
		t.Fatalf("wavfile.Write() error = %v", err)
	}

	wavPath := filepath.Join(t.TempDir(), "hi.wav")
	if err := os.WriteFile(wavPath, data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var buf bytes.Buffer
	decodeCmd.SetOut(&buf)
	decodeCmd.SetErr(&buf)
	decodeCmd.SetArgs([]string{wavPath})

	if err := decodeCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := strings.TrimSpace(buf.String()); got != "HI" {
		t.Errorf("decode output = %q, want %q", got, "HI")
	}
}

func TestDecodeCmd_MissingFile(t *testing.T) {
	resetViperForTest()
	if err := initConfigForTest(); err != nil {
		t.Fatalf("initConfigForTest: %v", err)
	}

	decodeCmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.wav")})
	if err := decodeCmd.Execute(); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestDecodeCmd_RequiresArgument(t *testing.T) {
	resetViperForTest()
	decodeCmd.SetArgs([]string{})
	if err := decodeCmd.Execute(); err == nil {
		t.Error("expected error when no file argument is given")
	}
}
