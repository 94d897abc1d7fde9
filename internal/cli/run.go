package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/mweber/serialtest/internal/domain"
	"github.com/mweber/serialtest/internal/parser"
	"github.com/mweber/serialtest/internal/runner"
	"github.com/mweber/serialtest/internal/scanner"
	"github.com/mweber/serialtest/internal/serial"
	"github.com/spf13/cobra"
)

// testFileExt is the extension used when discovering test files in directories.
const testFileExt = ".sut"

var runCmd = &cobra.Command{
	Use:   "run <file|dir>...",
	Short: "Run test suites against a serial device",
	Long: `Parses the given test files and runs their suites in order against
the configured serial port. Directories are searched recursively for
` + testFileExt + ` files.

The command exits with a non-zero status when a file cannot be parsed
or a test fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, settings, err := linkSettings(cmd)
		if err != nil {
			return err
		}

		files, err := testFiles(args)
		if err != nil {
			return err
		}

		var suites []domain.TestSuite
		for _, path := range files {
			parsed, err := parser.ParseFile(path)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}

			log.Debugf("Parsed %s: %d suites", path, len(parsed))
			suites = append(suites, parsed...)
		}

		return runSuites(port, settings, suites, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// testFiles expands the given paths into test files, searching directories
// for files with the test extension.
func testFiles(paths []string) ([]string, error) {
	files, err := scanner.NewScanner(testFileExt).Scan(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no test files found")
	}
	return files, nil
}

// runSuites opens the port and executes all suites against it.
func runSuites(port string, settings serial.Settings, suites []domain.TestSuite, out io.Writer) error {
	s, err := serial.OpenWithSettings(port, settings)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := runner.NewRunner(s, log, out).Run(suites)
	if err != nil {
		return err
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d tests failed", summary.Failed, summary.Total)
	}
	return nil
}
