package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clapjump/internal/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio input devices",
	Long: `Show every input device PortAudio can see. Pass a name to --device, or
set capture.device in clap.yaml, to use one other than the default.

Examples:
  clapjump devices`,
	Args: cobra.NoArgs,
	Run:  runDevices,
}

func runDevices(_ *cobra.Command, _ []string) {
	devices, err := audio.ListInputDevices()
	if err != nil {
		fail("%v", err)
	}

	fmt.Println("Input devices")
	fmt.Println()

	if len(devices) == 0 {
		fmt.Println("No input devices found.")
		return
	}

	fmt.Printf("  %-1s  %-40s  %-8s  %s\n", "", "Name", "Channels", "Rate")
	fmt.Printf("  %-1s  %-40s  %-8s  %s\n", "", "----", "--------", "----")
	for _, dev := range devices {
		mark := " "
		if dev.IsDefault {
			mark = "*"
		}
		fmt.Printf("  %-1s  %-40s  %-8d  %.0f Hz\n", mark, dev.Name, dev.MaxInputChannels, dev.DefaultSampleRate)
	}
	fmt.Println()
	fmt.Println("* system default")
}
