package cli

import (
	"fmt"

	"github.com/mweber/serialtest/internal/serial"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available serial ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serial.Ports()
		if err != nil {
			return fmt.Errorf("failed to list ports: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(ports) == 0 {
			fmt.Fprintln(out, "No serial ports found.")
			return nil
		}
		for _, port := range ports {
			fmt.Fprintln(out, port)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
