package binread

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrTruncatedInput reports that a source is shorter than a requested read
// requires. It is fatal to the single extraction, not to a batch run.
var ErrTruncatedInput = errors.New("truncated input")

// Source is a bounded random-access byte source.
type Source struct {
	r    io.ReaderAt
	size int64
}

// NewSource wraps a reader with an explicit size bound.
func NewSource(r io.ReaderAt, size int64) *Source {
	return &Source{r: r, size: size}
}

// FromFile builds a Source from an open file. Regular files take their size
// from stat; block devices (physical discs) report zero there, so the size
// comes from a device ioctl instead.
func FromFile(f *os.File) (*Source, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}
	size := info.Size()
	if info.Mode()&os.ModeDevice != 0 {
		devSize, err := deviceSize(f)
		if err != nil {
			return nil, fmt.Errorf("device size for %s: %w", f.Name(), err)
		}
		size = devSize
	}
	return &Source{r: f, size: size}, nil
}

// Size returns the total byte length of the source.
func (s *Source) Size() int64 {
	return s.size
}

// ReadAt returns exactly length bytes starting at offset, or
// ErrTruncatedInput when the source cannot satisfy the range.
func (s *Source) ReadAt(offset int64, length int) ([]byte, error) {
	if offset < 0 || length < 0 {
		return nil, fmt.Errorf("invalid range %d+%d", offset, length)
	}
	if offset+int64(length) > s.size {
		return nil, fmt.Errorf("%w: need %d bytes at offset %#x, source is %d bytes",
			ErrTruncatedInput, length, offset, s.size)
	}
	buf := make([]byte, length)
	if _, err := s.r.ReadAt(buf, offset); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: short read at offset %#x", ErrTruncatedInput, offset)
		}
		return nil, fmt.Errorf("read at %#x: %w", offset, err)
	}
	return buf, nil
}

// Section returns a bounded view of the source starting at offset. The view
// shares the underlying reader; it does not copy data.
func (s *Source) Section(offset, length int64) *Source {
	if offset < 0 {
		offset = 0
	}
	if offset > s.size {
		offset = s.size
	}
	if length < 0 || offset+length > s.size {
		length = s.size - offset
	}
	return &Source{r: io.NewSectionReader(s.r, offset, length), size: length}
}

// Uint8 reads one byte at offset.
func (s *Source) Uint8(offset int64) (byte, error) {
	b, err := s.ReadAt(offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16BE reads a big-endian 16-bit value at offset.
func (s *Source) Uint16BE(offset int64) (uint16, error) {
	b, err := s.ReadAt(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Uint16LE reads a little-endian 16-bit value at offset.
func (s *Source) Uint16LE(offset int64) (uint16, error) {
	b, err := s.ReadAt(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32BE reads a big-endian 32-bit value at offset.
func (s *Source) Uint32BE(offset int64) (uint32, error) {
	b, err := s.ReadAt(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Uint32LE reads a little-endian 32-bit value at offset.
func (s *Source) Uint32LE(offset int64) (uint32, error) {
	b, err := s.ReadAt(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// String reads a fixed-length field at offset and trims padding.
func (s *Source) String(offset int64, length int) (string, error) {
	b, err := s.ReadAt(offset, length)
	if err != nil {
		return "", err
	}
	return CleanString(b), nil
}

// CleanString renders a fixed-width header field as text: non-printable
// bytes become spaces and surrounding padding is trimmed.
func CleanString(b []byte) string {
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

// SwapPairs returns a copy of b with each 16-bit pair byte-swapped. Used for
// byte-swapped cartridge dumps; odd-length input keeps its final byte.
func SwapPairs(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	for i := 0; i+1 < len(out); i += 2 {
		out[i], out[i+1] = out[i+1], out[i]
	}
	return out
}
