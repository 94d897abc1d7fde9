// Package runner executes parsed test suites against a device and reports
// the outcome.
package runner

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mweber/serialtest/internal/domain"
	"github.com/mweber/serialtest/internal/serial"
)

// Checker runs one send/expect exchange under a per-test timeout.
// *serial.Serial implements it.
type Checker interface {
	CheckWithTimeout(text, desired string, settings serial.CheckSettings, timeout time.Duration) (bool, string, error)
}

// Runner executes parsed test suites against a device.
type Runner interface {
	Run(suites []domain.TestSuite) (Summary, error)
}

// Summary counts the executed tests of a run.
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// DefaultRunner implements Runner against a Checker.
type DefaultRunner struct {
	checker Checker
	log     *logrus.Logger
	out     io.Writer
	runID   string
}

// NewRunner creates a DefaultRunner writing its report to out.
func NewRunner(checker Checker, log *logrus.Logger, out io.Writer) *DefaultRunner {
	return &DefaultRunner{
		checker: checker,
		log:     log,
		out:     out,
		runID:   uuid.NewString(),
	}
}

var (
	suiteColor = color.New(color.FgCyan, color.Bold)
	passColor  = color.New(color.FgGreen)
	failColor  = color.New(color.FgRed)
)

// Run executes every suite in order. Content mismatches and response
// timeouts count as failures; any other connection error aborts the run.
func (r *DefaultRunner) Run(suites []domain.TestSuite) (Summary, error) {
	r.log.Debugf("Starting run %s with %d suite(s)", r.runID, len(suites))

	var summary Summary

	for _, suite := range suites {
		r.printSuiteHeader(suite)

		for _, test := range suite.Tests {
			summary.Total++

			passed, detail, err := r.runTest(test)
			if err != nil {
				r.log.Errorf("Run %s aborted on %q: %v", r.runID, test.Title(), err)
				return summary, err
			}

			if passed {
				summary.Passed++
			} else {
				summary.Failed++
			}
			r.printResult(test, passed, detail)
		}
	}

	r.printSummary(summary)
	r.log.Debugf("Run %s finished: %d/%d passed", r.runID, summary.Passed, summary.Total)

	return summary, nil
}

// runTest executes one test, re-sending up to Repeat times. The first failed
// round stops the loop. A response timeout is a test failure, not a
// run-fatal error.
func (r *DefaultRunner) runTest(test domain.TestCase) (bool, string, error) {
	settings := serial.CheckSettings{
		IgnoreCase:   test.Settings.IgnoreCase,
		InputFormat:  test.Settings.InputFormat,
		OutputFormat: test.Settings.OutputFormat,
	}

	// The primitive only folds the response; fold the expectation here.
	desired := test.Output
	if settings.IgnoreCase {
		desired = strings.ToLower(desired)
	}

	for round := uint32(0); round < test.Settings.Repeat; round++ {
		if test.Settings.Delay > 0 {
			time.Sleep(test.Settings.Delay)
		}

		matched, response, err := r.checker.CheckWithTimeout(test.Input, desired, settings, test.Settings.Timeout)
		if errors.Is(err, serial.ErrTimeout) {
			r.log.Debugf("Test %q round %d: no response before timeout", test.Title(), round+1)
			return false, "no response", nil
		}
		if err != nil {
			return false, "", err
		}
		if !matched {
			r.log.Debugf("Test %q round %d: got %q", test.Title(), round+1, response)
			return false, fmt.Sprintf("expected %q, got %q", desired, response), nil
		}
	}

	return true, "", nil
}

func (r *DefaultRunner) printSuiteHeader(suite domain.TestSuite) {
	name := suite.Name
	if name == "" {
		name = "(default)"
	}
	suiteColor.Fprintf(r.out, "%s\n", name)
}

func (r *DefaultRunner) printResult(test domain.TestCase, passed bool, detail string) {
	if passed {
		passColor.Fprintf(r.out, "  ✓ %s\n", test.Title())
		return
	}

	failColor.Fprintf(r.out, "  ✗ %s", test.Title())
	if detail != "" {
		fmt.Fprintf(r.out, ": %s", detail)
	}
	fmt.Fprintln(r.out)
}

func (r *DefaultRunner) printSummary(summary Summary) {
	fmt.Fprintf(r.out, "\n%d tests, ", summary.Total)
	passColor.Fprintf(r.out, "%d passed", summary.Passed)
	fmt.Fprint(r.out, ", ")
	if summary.Failed > 0 {
		failColor.Fprintf(r.out, "%d failed", summary.Failed)
	} else {
		fmt.Fprint(r.out, "0 failed")
	}
	fmt.Fprintln(r.out)
}
