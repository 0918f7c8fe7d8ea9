// cmd/devices.go
package cmd

import (
	"fmt"

	"github.com/ColonelBlimp/cwdecoder/internal/audio"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available audio capture devices",
	RunE:  runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	capture := audio.New(audio.DefaultConfig())
	if err := capture.Init(); err != nil {
		return fmt.Errorf("init audio: %w", err)
	}
	defer capture.Close()

	infos, err := capture.ListDevices()
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no capture devices found")
		return nil
	}

	for i, info := range infos {
		fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", i, info.Name())
	}
	return nil
}
