package binread

import (
	"bytes"
	"errors"
	"testing"
)

func newTestSource(data []byte) *Source {
	return NewSource(bytes.NewReader(data), int64(len(data)))
}

func TestReadAtBounds(t *testing.T) {
	src := newTestSource([]byte{0x01, 0x02, 0x03, 0x04})

	got, err := src.ReadAt(1, 2)
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if !bytes.Equal(got, []byte{0x02, 0x03}) {
		t.Errorf("ReadAt(1, 2) = %v", got)
	}

	if _, err := src.ReadAt(2, 3); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("past-end read error = %v, want ErrTruncatedInput", err)
	}
	if _, err := src.ReadAt(10, 1); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("offset-beyond-end error = %v, want ErrTruncatedInput", err)
	}
}

func TestIntegerDecoding(t *testing.T) {
	src := newTestSource([]byte{0x12, 0x34, 0x56, 0x78})

	if v, err := src.Uint16BE(0); err != nil || v != 0x1234 {
		t.Errorf("Uint16BE = %#x, %v", v, err)
	}
	if v, err := src.Uint16LE(0); err != nil || v != 0x3412 {
		t.Errorf("Uint16LE = %#x, %v", v, err)
	}
	if v, err := src.Uint32BE(0); err != nil || v != 0x12345678 {
		t.Errorf("Uint32BE = %#x, %v", v, err)
	}
	if v, err := src.Uint32LE(0); err != nil || v != 0x78563412 {
		t.Errorf("Uint32LE = %#x, %v", v, err)
	}
	if v, err := src.Uint8(3); err != nil || v != 0x78 {
		t.Errorf("Uint8 = %#x, %v", v, err)
	}
}

func TestSection(t *testing.T) {
	src := newTestSource([]byte("0123456789"))

	sec := src.Section(3, 4)
	if sec.Size() != 4 {
		t.Fatalf("section size = %d, want 4", sec.Size())
	}
	got, err := sec.ReadAt(0, 4)
	if err != nil {
		t.Fatalf("section read: %v", err)
	}
	if string(got) != "3456" {
		t.Errorf("section bytes = %q", got)
	}
	if _, err := sec.ReadAt(2, 3); !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("section over-read error = %v, want ErrTruncatedInput", err)
	}

	// Length clamps to the source end.
	tail := src.Section(8, 100)
	if tail.Size() != 2 {
		t.Errorf("clamped section size = %d, want 2", tail.Size())
	}
}

func TestStringTrimsPadding(t *testing.T) {
	src := newTestSource([]byte("AB-12  \x00\x00\xff"))
	got, err := src.String(0, 10)
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if got != "AB-12" {
		t.Errorf("String = %q, want %q", got, "AB-12")
	}
}

func TestCleanString(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("SLUS-00594"), "SLUS-00594"},
		{[]byte("  TITLE \x00\x00"), "TITLE"},
		{[]byte{0x00, 0x01, 0x02}, ""},
		{[]byte("A\x00B"), "A B"},
	}
	for _, tc := range tests {
		if got := CleanString(tc.in); got != tc.want {
			t.Errorf("CleanString(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSwapPairs(t *testing.T) {
	got := SwapPairs([]byte{0x37, 0x80, 0x40, 0x12})
	if !bytes.Equal(got, []byte{0x80, 0x37, 0x12, 0x40}) {
		t.Errorf("SwapPairs = %v", got)
	}

	odd := SwapPairs([]byte{0x01, 0x02, 0x03})
	if !bytes.Equal(odd, []byte{0x02, 0x01, 0x03}) {
		t.Errorf("SwapPairs odd = %v", odd)
	}
}
