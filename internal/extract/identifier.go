package extract

import (
	"errors"

	"gameid/internal/platform"
)

var (
	// ErrFormatMismatch reports that the source does not look like the
	// selected platform's format. No partial identifier is produced.
	ErrFormatMismatch = errors.New("format mismatch")

	// ErrUnsupportedPlatform reports a platform with no format descriptor.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// Identifier is the outcome of a successful extraction. Serial is normalized
// and ready for database lookups; RawSerial preserves the bytes as found.
// Title, Region, and Version are best-effort hints and may be empty.
type Identifier struct {
	Platform  platform.Tag      `json:"platform"`
	Serial    string            `json:"serial"`
	RawSerial string            `json:"raw_serial"`
	Title     string            `json:"title,omitempty"`
	Region    string            `json:"region,omitempty"`
	Version   string            `json:"version,omitempty"`
	Layout    string            `json:"layout,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}
