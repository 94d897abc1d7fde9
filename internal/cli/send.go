package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/mweber/serialtest/internal/format"
	"github.com/mweber/serialtest/internal/serial"
	"github.com/spf13/cobra"
)

var (
	sendEcho           bool
	sendResponse       bool
	sendNewline        bool
	sendCarriageReturn bool
	sendEscape         bool
	sendFormat         textFlags
)

var sendCmd = &cobra.Command{
	Use:   "send <text>",
	Short: "Send data to the serial port",
	Long: `Writes the given text to the serial port.

With --show-response the command keeps printing whatever the device
sends back until a read times out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, settings, err := linkSettings(cmd)
		if err != nil {
			return err
		}

		text := args[0]
		if sendNewline {
			text += "\n"
		}
		if sendCarriageReturn {
			text += "\r"
		}
		if sendEscape {
			text = format.EscapeText(text)
		}

		s, err := serial.OpenWithSettings(port, settings)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.WriteFormat(text, sendFormat.input()); err != nil {
			return fmt.Errorf("failed to send text: %w", err)
		}

		out := cmd.OutOrStdout()
		if sendEcho {
			fmt.Fprintln(out, text)
		}
		if sendResponse {
			return printResponse(out, s, sendFormat.output())
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().BoolVarP(&sendEcho, "echo", "e", false, "echo the sent text on standard output")
	sendCmd.Flags().BoolVarP(&sendResponse, "show-response", "r", false, "show the response from the device")
	sendCmd.Flags().BoolVarP(&sendNewline, "newline", "N", false, "add newline at the end")
	sendCmd.Flags().BoolVarP(&sendCarriageReturn, "carriage-return", "R", false, "add carriage return at the end")
	sendCmd.Flags().BoolVarP(&sendEscape, "escape", "E", false, "enable input string escaping")
	addFormatFlags(sendCmd, &sendFormat)
	addInputFormatFlags(sendCmd, &sendFormat)
	addOutputFormatFlags(sendCmd, &sendFormat)

	rootCmd.AddCommand(sendCmd)
}

// printResponse prints incoming data until a read times out.
func printResponse(out io.Writer, s *serial.Serial, f format.TextFormat) error {
	for {
		text, err := s.ReadString(f)
		if err != nil {
			if errors.Is(err, serial.ErrTimeout) {
				break
			}
			return err
		}

		fmt.Fprint(out, text)
		if f != format.Text {
			fmt.Fprint(out, " ")
		}
	}

	fmt.Fprintln(out)
	return nil
}
