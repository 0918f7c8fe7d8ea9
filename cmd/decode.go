// cmd/decode.go
package cmd

import (
	"fmt"
	"os"

	"github.com/ColonelBlimp/cwdecoder/internal/audio"
	"github.com/ColonelBlimp/cwdecoder/internal/config"
	"github.com/ColonelBlimp/cwdecoder/internal/pipeline"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [wav file]",
	Short: "Decode a WAV file containing a CW transmission to text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	settings, err := config.Get()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	reader, err := audio.NewWaveReader(f)
	if err != nil {
		return err
	}

	samples, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("read wav samples: %w", err)
	}

	cfg := pipeline.DefaultBulkConfig()
	cfg.CenterHz = settings.CenterFrequency
	cfg.Q = settings.Q
	cfg.Threshold = settings.ThresholdBatch
	cfg.ReleaseS = settings.ReleaseSeconds
	cfg.MinEventS = settings.MinEventSeconds

	result, err := pipeline.DecodeBuffer(samples, reader.SampleRate(), cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", result.Text)
	if settings.Debug {
		fmt.Fprintf(cmd.OutOrStdout(), "estimated wpm: %.1f\n", result.EstimatedWPM)
	}
	return nil
}
