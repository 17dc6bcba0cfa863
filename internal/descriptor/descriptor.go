package descriptor

import (
	"bytes"
	"fmt"

	"gameid/internal/platform"
)

// Media distinguishes cartridge headers at fixed offsets from disc images
// whose identifying data may require filesystem traversal.
type Media int

// Media kinds.
const (
	MediaCartridge Media = iota
	MediaDisc
)

// Encoding selects how a field's raw bytes are rendered.
type Encoding int

// Field encodings.
const (
	// EncASCII trims padding and replaces non-printable bytes.
	EncASCII Encoding = iota
	// EncShiftJIS decodes Shift-JIS text (domestic titles on Sega
	// hardware), falling back to ASCII cleaning when the bytes do not
	// decode.
	EncShiftJIS
	// EncUint8 renders a single byte as decimal.
	EncUint8
	// EncHexByte renders a single byte as 0xNN.
	EncHexByte
	// EncHexWordBE renders a big-endian 16-bit value as 0xNNNN.
	EncHexWordBE
)

// Field names one fixed-width header field. Offsets are relative to the
// layout base (or to the anchor position for anchored layouts).
type Field struct {
	Name   string
	Offset int64
	Length int
	Enc    Encoding
}

// Validator confirms that header bytes plausibly belong to the layout's
// platform. hdr starts at the layout base and is HeaderLen bytes long.
type Validator func(hdr []byte) error

// Layout is one candidate header arrangement for a platform. Platforms with
// generational header revisions (SNES LoROM/HiROM, byte-swapped N64 dumps)
// declare several, tried in order.
type Layout struct {
	Name string
	// MinSize is the smallest source that can carry this layout. Shorter
	// sources are a truncation, not a mismatch.
	MinSize int64
	// Base is the header's byte offset in the (possibly swapped) image.
	Base int64
	// HeaderLen is how many bytes from Base the fields and validator need.
	HeaderLen int64
	// Anchor, when set, is a magic byte string searched for within the
	// first AnchorWindow bytes; field offsets then become relative to the
	// anchor position instead of Base.
	Anchor       []byte
	AnchorWindow int64
	// Swapped marks dumps stored with each 16-bit pair byte-swapped; the
	// header is un-swapped before validation and decoding.
	Swapped  bool
	Fields   []Field
	Validate Validator
}

// DiscRuleKind selects how a disc platform's serial is located.
type DiscRuleKind int

// Disc rule kinds.
const (
	// RuleRootSerialFile scans the root directory for a file whose name
	// starts with one of the serial prefixes; the filename is the serial
	// (PSX, PS2).
	RuleRootSerialFile DiscRuleKind = iota
	// RuleSystemFile reads the serial from the contents of a named root
	// file, up to a terminator byte (PSP).
	RuleSystemFile
	// RuleVolumeLabel uses the ISO 9660 volume identifier as the serial
	// (NeoGeoCD).
	RuleVolumeLabel
)

// DiscRule describes the ISO 9660 traversal a disc platform needs.
type DiscRule struct {
	Kind DiscRuleKind
	// SerialPrefixes are the known root-filename prefixes, most common
	// first (RuleRootSerialFile).
	SerialPrefixes []string
	// FileName is the system file holding the serial (RuleSystemFile).
	FileName string
	// Terminator ends the serial inside the system file (RuleSystemFile).
	Terminator byte
	// RawDataOffset is the per-sector user-data offset for raw dumps of
	// this platform (0x18 on PlayStation raw images).
	RawDataOffset int64
}

// Descriptor is the complete static format description of one platform.
type Descriptor struct {
	Platform platform.Tag
	Media    Media
	Layouts  []Layout
	Disc     *DiscRule
}

// For returns the descriptor for a platform, or false when the tag has no
// table entry.
func For(tag platform.Tag) (*Descriptor, bool) {
	d, ok := table[tag]
	return d, ok
}

// MinSize returns the smallest source any of the descriptor's layouts can
// be attempted against.
func (d *Descriptor) MinSize() int64 {
	min := int64(-1)
	for i := range d.Layouts {
		if min < 0 || d.Layouts[i].MinSize < min {
			min = d.Layouts[i].MinSize
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// Field looks up a layout field by name.
func (l *Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// table maps every supported platform to its descriptor. Initialized once;
// never mutated afterwards.
var table = map[platform.Tag]*Descriptor{}

func register(d *Descriptor) {
	if _, dup := table[d.Platform]; dup {
		panic(fmt.Sprintf("descriptor: duplicate registration for %s", d.Platform))
	}
	table[d.Platform] = d
}

func findAnchor(hdr []byte, anchor []byte) int {
	return bytes.Index(hdr, anchor)
}

// Locate resolves the layout's header window inside window bytes read from
// the start of the source. For anchored layouts the returned base is the
// anchor position; -1 means the anchor was not found.
func (l *Layout) Locate(window []byte) int64 {
	if len(l.Anchor) == 0 {
		return l.Base
	}
	idx := findAnchor(window, l.Anchor)
	if idx < 0 {
		return -1
	}
	return int64(idx)
}
