// cmd/listen.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ColonelBlimp/cwdecoder/internal/audio"
	"github.com/ColonelBlimp/cwdecoder/internal/config"
	"github.com/ColonelBlimp/cwdecoder/internal/pipeline"
	"github.com/ColonelBlimp/cwdecoder/internal/recovery"
	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Decode CW from a live microphone capture until interrupted",
	RunE:  runListen,
}

func runListen(cmd *cobra.Command, args []string) error {
	settings, err := config.Get()
	if err != nil {
		return err
	}

	capture := audio.New(audio.Config{
		DeviceIndex: settings.DeviceIndex,
		SampleRate:  uint32(settings.SampleRate),
		Channels:    1,
		BufferSize:  uint32(settings.BufferSize),
	})
	if err := capture.Init(); err != nil {
		return fmt.Errorf("init audio: %w", err)
	}
	defer capture.Close()

	cfg := pipeline.DefaultLiveConfig()
	cfg.CenterHz = settings.CenterFrequency
	cfg.Q = settings.Q
	cfg.Threshold = settings.ThresholdLive
	cfg.ReleaseS = settings.ReleaseSeconds
	cfg.MinEventS = settings.MinEventSeconds
	cfg.WPM = float64(settings.WPM)

	live, err := pipeline.NewLive(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := capture.Start(ctx); err != nil {
		return fmt.Errorf("start capture: %w", err)
	}

	go func() {
		defer recovery.HandlePanic()
		for samples := range capture.Samples {
			text, err := live.ProcessBuffer(samples, settings.SampleRate)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "decode error: %v\n", err)
				continue
			}
			if text != "" {
				fmt.Fprint(cmd.OutOrStdout(), text)
			}
		}
	}()

	// Start already stops the device on ctx.Done(); just wait here.
	<-ctx.Done()
	return nil
}
