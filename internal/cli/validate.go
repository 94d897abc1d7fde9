package cli

import (
	"fmt"

	"github.com/mweber/serialtest/internal/parser"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|dir>...",
	Short: "Validate test files without running them",
	Long: `Parses the given test files and reports what they contain.
Directories are searched recursively for ` + testFileExt + ` files.
No serial port is needed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := testFiles(args)
		if err != nil {
			return err
		}

		for _, path := range files {
			suites, err := parser.ParseFile(path)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}

			tests := 0
			for _, suite := range suites {
				tests += len(suite.Tests)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d suites, %d tests\n", path, len(suites), tests)
			log.Debugf("Parsed suites: %+v", suites)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
