// Package serial drives the device connection: link configuration, reads
// and writes in the content formats, and the check primitive that matches
// device responses against expectations.
package serial

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	goserial "go.bug.st/serial"

	"github.com/mweber/serialtest/internal/format"
)

const readBufferSize = 1000

// Serial owns a connection and a read buffer reused across calls. It is not
// safe for concurrent use; each Serial belongs to one goroutine.
type Serial struct {
	conn Connection
	buf  []byte
	lock *flock.Flock
}

// New wraps an existing connection.
func New(conn Connection) *Serial {
	return &Serial{conn: conn, buf: make([]byte, readBufferSize)}
}

// Open opens the named port with default settings.
func Open(port string) (*Serial, error) {
	return OpenWithSettings(port, DefaultSettings())
}

// OpenWithSettings opens the named port. An advisory lock file keeps two
// processes from sharing a device; Close releases it.
func OpenWithSettings(port string, settings Settings) (*Serial, error) {
	mode, err := settings.mode()
	if err != nil {
		return nil, err
	}

	lock := flock.New(lockPath(port))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking port %s: %w", port, err)
	}
	if !locked {
		return nil, fmt.Errorf("port %s is busy", port)
	}

	p, err := goserial.Open(port, mode)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("opening port %s: %w", port, err)
	}

	conn, err := newHWConnection(p, settings.Timeout)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	s := New(conn)
	s.lock = lock
	return s, nil
}

func lockPath(port string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(port)
	return filepath.Join(os.TempDir(), "serialtest-"+name+".lock")
}

// Close closes the connection and releases the port lock.
func (s *Serial) Close() error {
	err := s.conn.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// Write sends text as raw UTF-8 bytes.
func (s *Serial) Write(text string) error {
	return s.WriteFormat(text, format.Text)
}

// WriteFormat sends text per the input format. Binary and hex content is
// decoded to the bytes it denotes; all other formats send the raw UTF-8
// bytes. A write that times out counts as sent.
func (s *Serial) WriteFormat(text string, f format.TextFormat) error {
	var data []byte
	var err error

	switch f {
	case format.Binary:
		data, err = format.BytesFromBinaryString(text)
	case format.Hex:
		data, err = format.BytesFromHexString(text)
	default:
		data = []byte(text)
	}
	if err != nil {
		return err
	}

	if _, err := s.conn.Write(data); err != nil && !errors.Is(err, ErrTimeout) {
		return err
	}
	return nil
}

// Read reads one chunk into the internal buffer. The returned slice is only
// valid until the next read.
func (s *Serial) Read() ([]byte, error) {
	n, err := s.conn.Read(s.buf)
	if err != nil {
		return nil, err
	}
	return s.buf[:n], nil
}

// ReadString reads one chunk and renders it in the given format.
func (s *Serial) ReadString(f format.TextFormat) (string, error) {
	data, err := s.Read()
	if err != nil {
		return "", err
	}
	return format.RadixString(data, f), nil
}

// ReadWithTimeout reads one chunk under a temporary read timeout. The
// previous timeout is restored on every return path.
func (s *Serial) ReadWithTimeout(timeout time.Duration) (data []byte, err error) {
	restore, err := s.overrideTimeout(timeout)
	if err != nil {
		return nil, err
	}
	defer restore(&err)

	return s.Read()
}

// CheckSettings controls how the check primitive encodes its probe and
// decodes the response.
type CheckSettings struct {
	IgnoreCase   bool
	InputFormat  format.TextFormat
	OutputFormat format.TextFormat
}

// DefaultCheckSettings returns text in, text out, case-sensitive.
func DefaultCheckSettings() CheckSettings {
	return CheckSettings{InputFormat: format.Text, OutputFormat: format.Text}
}

// Check sends text and matches the response against desired using default
// settings.
func (s *Serial) Check(text, desired string) (bool, string, error) {
	return s.CheckWithSettings(text, desired, DefaultCheckSettings())
}

// CheckRead matches incoming data against desired without sending anything.
func (s *Serial) CheckRead(desired string) (bool, string, error) {
	return s.CheckReadWithSettings(desired, DefaultCheckSettings())
}

// CheckWithSettings sends text per the input format, then matches the
// response against desired.
func (s *Serial) CheckWithSettings(text, desired string, settings CheckSettings) (bool, string, error) {
	if err := s.WriteFormat(text, settings.InputFormat); err != nil {
		return false, "", err
	}
	return s.CheckReadWithSettings(desired, settings)
}

// CheckReadWithSettings accumulates response chunks until the response
// equals desired, stops being a prefix of desired, or the connection times
// out. A timeout before any data arrived is an ErrTimeout; a timeout after
// partial data ends the accumulation normally. Mismatch is a result, not an
// error. At least one read happens even when desired is empty.
func (s *Serial) CheckReadWithSettings(desired string, settings CheckSettings) (bool, string, error) {
	var response strings.Builder

	for {
		data, err := s.Read()
		if err != nil {
			if errors.Is(err, ErrTimeout) {
				if response.Len() == 0 {
					return false, "", err
				}
				break
			}
			return false, response.String(), err
		}

		chunk := format.RadixString(data, settings.OutputFormat)
		if settings.IgnoreCase {
			chunk = strings.ToLower(chunk)
		}
		response.WriteString(chunk)

		if response.String() == desired {
			break
		}
		if !strings.HasPrefix(desired, response.String()) {
			break
		}
	}

	r := response.String()
	return r == desired, r, nil
}

// CheckWithTimeout runs CheckWithSettings under a temporary read timeout,
// restoring the previous timeout on every return path.
func (s *Serial) CheckWithTimeout(text, desired string, settings CheckSettings, timeout time.Duration) (matched bool, response string, err error) {
	restore, err := s.overrideTimeout(timeout)
	if err != nil {
		return false, "", err
	}
	defer restore(&err)

	return s.CheckWithSettings(text, desired, settings)
}

// overrideTimeout swaps the connection's read timeout and returns a restore
// function. The restore error surfaces only when the caller would otherwise
// succeed.
func (s *Serial) overrideTimeout(timeout time.Duration) (func(*error), error) {
	previous := s.conn.ReadTimeout()
	if err := s.conn.SetReadTimeout(timeout); err != nil {
		return nil, err
	}

	return func(errp *error) {
		if restoreErr := s.conn.SetReadTimeout(previous); restoreErr != nil && *errp == nil {
			*errp = restoreErr
		}
	}, nil
}
