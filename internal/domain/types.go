package domain

import (
	"time"

	"github.com/mweber/serialtest/internal/format"
)

// TestSuite groups the test cases declared under one group header. Tests
// appearing before any header belong to an implicit suite with an empty name.
type TestSuite struct {
	Name  string
	Tests []TestCase
}

// TestCase is a single send/expect exchange against the device.
type TestCase struct {
	Name     string // optional test name, empty when unnamed
	Input    string // content sent to the device
	Output   string // response the device must produce
	Settings TestCaseSettings
}

// TestCaseSettings carries the per-test options. The formats describe how
// input and output content map to bytes on the wire.
type TestCaseSettings struct {
	IgnoreCase   bool
	InputFormat  format.TextFormat
	OutputFormat format.TextFormat
	Delay        time.Duration // wait before each send
	Timeout      time.Duration // response deadline per attempt
	Repeat       uint32        // number of send/expect rounds
}

// DefaultTestCaseSettings returns the settings of a test that declares no
// options.
func DefaultTestCaseSettings() TestCaseSettings {
	return TestCaseSettings{
		InputFormat:  format.Text,
		OutputFormat: format.Text,
		Timeout:      time.Second,
		Repeat:       1,
	}
}

// Title returns the name to report a test under: its declared name when it
// has one, otherwise its input content.
func (t TestCase) Title() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Input
}
