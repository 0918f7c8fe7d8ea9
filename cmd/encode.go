// cmd/encode.go
package cmd

import (
	"fmt"
	"os"

	"github.com/ColonelBlimp/cwdecoder/internal/config"
	"github.com/ColonelBlimp/cwdecoder/internal/synth"
	"github.com/ColonelBlimp/cwdecoder/internal/wavfile"
	"github.com/spf13/cobra"
)

var encodeOut string

var encodeCmd = &cobra.Command{
	Use:   "encode [text]",
	Short: "Encode text as a CW tone and write it to a WAV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeOut, "out", "o", "cw.wav", "output WAV file path")
}

func runEncode(cmd *cobra.Command, args []string) error {
	settings, err := config.Get()
	if err != nil {
		return err
	}

	events := synth.EncodeText(args[0], float64(settings.WPM))
	samples := synth.Synthesize(events, settings.ToneFrequency, settings.OutputSampleRate)

	data, err := wavfile.Write(samples, int(settings.OutputSampleRate), 1)
	if err != nil {
		return err
	}

	if err := os.WriteFile(encodeOut, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", encodeOut, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d samples)\n", encodeOut, len(samples))
	return nil
}
