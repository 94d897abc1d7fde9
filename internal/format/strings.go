package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BytesFromRadixString parses content text into the bytes it denotes in the
// given format. Text content maps to its raw UTF-8 bytes.
func BytesFromRadixString(s string, f TextFormat) ([]byte, error) {
	switch f {
	case Binary:
		return BytesFromBinaryString(s)
	case Octal:
		return BytesFromOctalString(s)
	case Decimal:
		return BytesFromDecimalString(s)
	case Hex:
		return BytesFromHexString(s)
	default:
		return []byte(s), nil
	}
}

// BytesFromHexString parses two hex digits per byte, ignoring spaces.
func BytesFromHexString(s string) ([]byte, error) {
	return bytesFromGroups(s, 2, 16, "hex")
}

// BytesFromBinaryString parses eight binary digits per byte, ignoring spaces.
func BytesFromBinaryString(s string) ([]byte, error) {
	return bytesFromGroups(s, 8, 2, "binary")
}

// BytesFromOctalString parses three octal digits per byte, ignoring spaces.
func BytesFromOctalString(s string) ([]byte, error) {
	return bytesFromGroups(s, 3, 8, "octal")
}

// BytesFromDecimalString parses three decimal digits per byte, ignoring
// spaces.
func BytesFromDecimalString(s string) ([]byte, error) {
	return bytesFromGroups(s, 3, 10, "decimal")
}

func bytesFromGroups(s string, width, base int, name string) ([]byte, error) {
	clean := strings.ReplaceAll(s, " ", "")
	if len(clean)%width != 0 {
		return nil, fmt.Errorf("truncated %s string %q", name, s)
	}

	data := make([]byte, 0, len(clean)/width)
	for i := 0; i < len(clean); i += width {
		group := clean[i : i+width]
		v, err := strconv.ParseUint(group, base, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q", name, group)
		}
		data = append(data, byte(v))
	}

	return data, nil
}

// GetBooleanValue parses a boolean option value. Accepted spellings are
// true/false, yes/no and 1/0, case-insensitive.
func GetBooleanValue(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}

// GetTimeValue parses a duration option value. A bare unsigned integer is
// taken as milliseconds; otherwise Go duration syntax applies. Negative
// durations are rejected.
func GetTimeValue(s string) (time.Duration, bool) {
	if ms, err := strconv.ParseUint(s, 10, 32); err == nil {
		return time.Duration(ms) * time.Millisecond, true
	}

	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, false
	}
	return d, true
}

// EscapeText interprets \n, \r, \t, \0, \\ and \xNN escape sequences.
// Sequences that do not parse are kept verbatim.
func EscapeText(s string) string {
	runes := []rune(s)
	var sb strings.Builder

	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 >= len(runes) {
			sb.WriteRune(runes[i])
			continue
		}

		i++
		switch runes[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '0':
			sb.WriteByte(0)
		case '\\':
			sb.WriteByte('\\')
		case 'x':
			if i+2 < len(runes) {
				if v, err := strconv.ParseUint(string(runes[i+1:i+3]), 16, 8); err == nil {
					sb.WriteByte(byte(v))
					i += 2
					continue
				}
			}
			sb.WriteString(`\x`)
		default:
			sb.WriteRune('\\')
			sb.WriteRune(runes[i])
		}
	}

	return sb.String()
}
