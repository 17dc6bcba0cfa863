package descriptor

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/japanese"
)

// Decode renders every layout field from header bytes into a name→string
// map. hdr must start at the layout base (or anchor) and be at least
// HeaderLen bytes.
func (l *Layout) Decode(hdr []byte) map[string]string {
	out := make(map[string]string, len(l.Fields))
	for _, f := range l.Fields {
		end := f.Offset + int64(f.Length)
		if end > int64(len(hdr)) {
			continue
		}
		raw := hdr[f.Offset:end]
		var value string
		switch f.Enc {
		case EncASCII:
			value = cleanASCII(raw)
		case EncShiftJIS:
			value = decodeShiftJIS(raw)
		case EncUint8:
			value = fmt.Sprintf("%d", raw[0])
		case EncHexByte:
			value = fmt.Sprintf("0x%02x", raw[0])
		case EncHexWordBE:
			value = fmt.Sprintf("0x%02x%02x", raw[0], raw[1])
		}
		if value != "" {
			out[f.Name] = value
		}
	}
	return out
}

func cleanASCII(b []byte) string {
	out := make([]byte, len(b))
	for i, v := range b {
		if v < ' ' || v > '~' {
			out[i] = ' '
		} else {
			out[i] = v
		}
	}
	return strings.TrimSpace(string(out))
}

// decodeShiftJIS decodes a domestic-title field. Japanese releases store
// these as Shift-JIS; when decoding fails the bytes are treated as ASCII
// with non-printables blanked, matching how overseas releases fill the
// field.
func decodeShiftJIS(b []byte) string {
	trimmed := strings.TrimRight(string(b), "\x00 ")
	if trimmed == "" {
		return ""
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().String(trimmed)
	if err != nil {
		return cleanASCII(b)
	}
	return strings.TrimSpace(decoded)
}
