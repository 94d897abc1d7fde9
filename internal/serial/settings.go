package serial

import (
	"fmt"
	"time"

	goserial "go.bug.st/serial"
)

// Settings describes the serial link. Start from DefaultSettings; the zero
// value does not open.
type Settings struct {
	BaudRate    int
	DataBits    int
	Parity      string // "none", "odd" or "even"
	StopBits    int    // 1 or 2
	FlowControl string // only "none" is supported
	Timeout     time.Duration
}

// DefaultSettings returns a 9600-8-N-1 link with no flow control and a one
// second read timeout.
func DefaultSettings() Settings {
	return Settings{
		BaudRate:    9600,
		DataBits:    8,
		Parity:      "none",
		StopBits:    1,
		FlowControl: "none",
		Timeout:     time.Second,
	}
}

// mode translates the settings into the transport library's mode, validating
// each field.
func (s Settings) mode() (*goserial.Mode, error) {
	if s.BaudRate <= 0 {
		return nil, fmt.Errorf("invalid baud rate %d", s.BaudRate)
	}

	mode := &goserial.Mode{
		BaudRate: s.BaudRate,
		DataBits: s.DataBits,
	}

	switch s.DataBits {
	case 5, 6, 7, 8:
	default:
		return nil, fmt.Errorf("invalid data bits %d", s.DataBits)
	}

	switch s.Parity {
	case "none":
		mode.Parity = goserial.NoParity
	case "odd":
		mode.Parity = goserial.OddParity
	case "even":
		mode.Parity = goserial.EvenParity
	default:
		return nil, fmt.Errorf("invalid parity %q", s.Parity)
	}

	switch s.StopBits {
	case 1:
		mode.StopBits = goserial.OneStopBit
	case 2:
		mode.StopBits = goserial.TwoStopBits
	default:
		return nil, fmt.Errorf("invalid stop bits %d", s.StopBits)
	}

	// The transport library drives the port without flow control.
	if s.FlowControl != "none" {
		return nil, fmt.Errorf("unsupported flow control %q", s.FlowControl)
	}

	return mode, nil
}
