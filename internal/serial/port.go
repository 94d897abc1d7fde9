package serial

import (
	"errors"
	"time"

	goserial "go.bug.st/serial"
)

// ErrTimeout reports that no data arrived within the connection's read
// timeout. Callers separate it from content mismatches and other I/O
// failures with errors.Is.
var ErrTimeout = errors.New("connection timed out")

// Connection is the duplex byte transport the check primitive runs against.
// Hardware ports, mocks and network bridges all satisfy it. Read returns
// ErrTimeout when no data arrived within the read timeout.
type Connection interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	ReadTimeout() time.Duration
	SetReadTimeout(timeout time.Duration) error
	Close() error
}

// hwConnection adapts a go.bug.st port to Connection. The library signals a
// read timeout as a zero-byte read with a nil error; hwConnection maps that
// onto ErrTimeout. It also tracks the configured timeout, which the library
// does not expose.
type hwConnection struct {
	port    goserial.Port
	timeout time.Duration
}

func newHWConnection(port goserial.Port, timeout time.Duration) (*hwConnection, error) {
	conn := &hwConnection{port: port}
	if err := conn.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, err
	}
	return conn, nil
}

func (c *hwConnection) Read(p []byte) (int, error) {
	n, err := c.port.Read(p)
	if err != nil {
		return n, err
	}
	if n == 0 {
		return 0, ErrTimeout
	}
	return n, nil
}

func (c *hwConnection) Write(p []byte) (int, error) {
	return c.port.Write(p)
}

func (c *hwConnection) ReadTimeout() time.Duration {
	return c.timeout
}

func (c *hwConnection) SetReadTimeout(timeout time.Duration) error {
	if err := c.port.SetReadTimeout(timeout); err != nil {
		return err
	}
	c.timeout = timeout
	return nil
}

func (c *hwConnection) Close() error {
	return c.port.Close()
}

// Ports lists the serial ports available on this machine.
func Ports() ([]string, error) {
	return goserial.GetPortsList()
}
