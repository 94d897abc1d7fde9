package cli

import (
	"fmt"
	"strings"

	"github.com/mweber/serialtest/internal/format"
	"github.com/mweber/serialtest/internal/serial"
	"github.com/spf13/cobra"
)

var (
	checkIgnoreCase     bool
	checkNewline        bool
	checkCarriageReturn bool
	checkEscape         bool
	checkFormat         textFlags
)

var checkCmd = &cobra.Command{
	Use:   "check <text> <response>",
	Short: "Send text and check the response",
	Long: `Writes the given text to the serial port and compares what comes
back against the expected response.

The command exits with a non-zero status when the response does not
match or the device stays silent.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, settings, err := linkSettings(cmd)
		if err != nil {
			return err
		}

		text, desired := args[0], args[1]
		if checkNewline {
			text += "\n"
		}
		if checkCarriageReturn {
			text += "\r"
		}
		if checkEscape {
			text = format.EscapeText(text)
		}
		if checkIgnoreCase {
			desired = strings.ToLower(desired)
		}

		s, err := serial.OpenWithSettings(port, settings)
		if err != nil {
			return err
		}
		defer s.Close()

		checkSettings := serial.CheckSettings{
			IgnoreCase:   checkIgnoreCase,
			InputFormat:  checkFormat.input(),
			OutputFormat: checkFormat.output(),
		}

		matched, response, err := s.CheckWithSettings(text, desired, checkSettings)
		if err != nil {
			return err
		}
		if !matched {
			return fmt.Errorf("mismatch: expected %q, got %q", desired, response)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Match: %q\n", response)
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVarP(&checkIgnoreCase, "ignore-case", "i", false, "compare the response case-insensitively")
	checkCmd.Flags().BoolVarP(&checkNewline, "newline", "N", false, "add newline at the end")
	checkCmd.Flags().BoolVarP(&checkCarriageReturn, "carriage-return", "R", false, "add carriage return at the end")
	checkCmd.Flags().BoolVarP(&checkEscape, "escape", "E", false, "enable input string escaping")
	addFormatFlags(checkCmd, &checkFormat)
	addInputFormatFlags(checkCmd, &checkFormat)
	addOutputFormatFlags(checkCmd, &checkFormat)

	rootCmd.AddCommand(checkCmd)
}
