// Package format converts between raw bytes and their textual renderings in
// the supported input/output formats.
package format

import (
	"fmt"
	"strings"
)

// TextFormat selects how content text maps to bytes on the wire and back.
type TextFormat int

const (
	Text TextFormat = iota
	Binary
	Octal
	Decimal
	Hex
)

var formatNames = map[TextFormat]string{
	Text:    "text",
	Binary:  "binary",
	Octal:   "octal",
	Decimal: "decimal",
	Hex:     "hex",
}

func (f TextFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// RadixString renders data in the given format. Radix formats render each
// byte fixed-width (binary 8, octal 3, decimal 3, hex 2 digits) and
// concatenate without separators, so the rendering of a response can be
// compared directly against radix content from a test definition. Text
// returns the bytes as a string unchanged.
func RadixString(data []byte, f TextFormat) string {
	verb := ""
	switch f {
	case Binary:
		verb = "%08b"
	case Octal:
		verb = "%03o"
	case Decimal:
		verb = "%03d"
	case Hex:
		verb = "%02x"
	default:
		return string(data)
	}

	var sb strings.Builder
	for _, b := range data {
		fmt.Fprintf(&sb, verb, b)
	}
	return sb.String()
}
