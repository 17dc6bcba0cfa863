// Package testsupport builds minimal synthetic game images that satisfy the
// per-platform format validators, so extraction tests do not depend on real
// dumps.
package testsupport

import (
	"encoding/binary"
	"testing"

	"gameid/internal/descriptor"
)

func padded(dst []byte, s string, pad byte) {
	for i := range dst {
		dst[i] = pad
	}
	copy(dst, s)
}

// GBImage builds a Game Boy ROM whose header checksum and global checksum
// both validate. The title doubles as the identifying string.
func GBImage(t testing.TB, title string) []byte {
	t.Helper()

	img := make([]byte, 0x8000)
	copy(img[0x104:], descriptor.NintendoLogoGB)
	padded(img[0x134:0x143], title, 0x00)
	img[0x147] = 0x01 // MBC1
	img[0x14C] = 0    // version

	var sum byte
	for _, b := range img[0x134:0x14D] {
		sum = sum - b - 1
	}
	img[0x14D] = sum

	var global uint16
	for i, b := range img {
		if i == 0x14E || i == 0x14F {
			continue
		}
		global += uint16(b)
	}
	binary.BigEndian.PutUint16(img[0x14E:0x150], global)
	return img
}

// GBAImage builds a Game Boy Advance ROM header with the boot logo in place.
func GBAImage(t testing.TB, title, serial string) []byte {
	t.Helper()

	img := make([]byte, 0x1000)
	copy(img[0x04:], descriptor.NintendoLogoGBA)
	padded(img[0xA0:0xAC], title, 0x00)
	padded(img[0xAC:0xB0], serial, 0x00)
	copy(img[0xB0:0xB2], "01")
	img[0xB2] = 0x96 // fixed value
	return img
}

// SNESImage builds a cartridge dump whose checksum/complement pair validates
// at the requested header arrangement.
func SNESImage(t testing.TB, title string, hirom, copier bool) []byte {
	t.Helper()

	base := int64(0x7FC0)
	if hirom {
		base = 0xFFC0
	}
	size := int64(0x10000)
	if copier {
		base += 512
		size += 512
	}
	img := make([]byte, size)
	hdr := img[base : base+0x20]
	padded(hdr[0x00:0x15], title, ' ')
	hdr[0x15] = 0x20 // map mode
	hdr[0x16] = 0x00 // chipset
	hdr[0x1A] = 0x33 // developer
	hdr[0x1B] = 0x00 // version
	binary.LittleEndian.PutUint16(hdr[0x1C:0x1E], 0x5A5A)
	binary.LittleEndian.PutUint16(hdr[0x1E:0x20], 0xA5A5)
	return img
}

// N64Image builds an N64 ROM header; swapped produces the v64 byte order.
func N64Image(t testing.TB, title, cartID string, country byte, version byte, swapped bool) []byte {
	t.Helper()

	img := make([]byte, 0x1000)
	copy(img[0:4], descriptor.N64FirstWord)
	padded(img[0x20:0x34], title, ' ')
	copy(img[0x3C:0x3E], cartID)
	img[0x3E] = country
	img[0x3F] = version
	if swapped {
		for i := 0; i+1 < len(img); i += 2 {
			img[i], img[i+1] = img[i+1], img[i]
		}
	}
	return img
}

// GenesisImage builds a Mega Drive ROM with a recognized system type string.
func GenesisImage(t testing.TB, serial, title string) []byte {
	t.Helper()

	img := make([]byte, 0x400)
	hdr := img[0x100:0x200]
	padded(hdr[0x00:0x10], "SEGA MEGA DRIVE", ' ')
	padded(hdr[0x13:0x17], "(C)T", ' ')
	copy(hdr[0x18:0x1C], "1994")
	copy(hdr[0x1D:0x20], "NOV")
	padded(hdr[0x20:0x50], title, ' ')
	padded(hdr[0x50:0x80], title, ' ')
	copy(hdr[0x80:0x82], "GM")
	padded(hdr[0x82:0x8B], serial, ' ')
	copy(hdr[0x8C:0x8E], "00")
	padded(hdr[0xF0:0xF3], "JUE", ' ')
	return img
}

// SaturnImage builds a cooked Saturn system area with the boot signature at
// offset zero.
func SaturnImage(t testing.TB, serial, title string) []byte {
	t.Helper()

	img := make([]byte, 0x1000)
	padded(img[0x00:0x10], "SEGA SEGASATURN", ' ')
	padded(img[0x10:0x20], "SEGA ENTERPRISES", ' ')
	padded(img[0x20:0x2A], serial, ' ')
	padded(img[0x2A:0x30], "V1.000", ' ')
	copy(img[0x30:0x38], "19961109")
	padded(img[0x38:0x40], "CD-1/1", ' ')
	padded(img[0x40:0x50], "JTUE", ' ')
	padded(img[0x50:0x60], "J", ' ')
	padded(img[0x60:0xD0], title, ' ')
	return img
}

// SegaCDImage builds a cooked Sega CD system area with the disc signature at
// offset zero and the cartridge-style header block after it.
func SegaCDImage(t testing.TB, serial, title string) []byte {
	t.Helper()

	img := make([]byte, 0x800)
	padded(img[0x00:0x10], "SEGADISCSYSTEM", 0x00)
	padded(img[0x10:0x1B], "TESTDISC", ' ')
	padded(img[0x100:0x110], "SEGA MEGA DRIVE", ' ')
	copy(img[0x118:0x11C], "1993")
	copy(img[0x11D:0x120], "MAR")
	padded(img[0x120:0x150], title, ' ')
	padded(img[0x150:0x180], title, ' ')
	padded(img[0x180:0x190], serial, ' ')
	padded(img[0x1F0:0x1F3], "JUE", ' ')
	return img
}

// GCImage builds a GameCube disc header with the magic word at 0x1C.
func GCImage(t testing.TB, serial, title string) []byte {
	t.Helper()

	img := make([]byte, 0x440)
	copy(img[0x00:0x04], serial)
	copy(img[0x04:0x06], "01")
	copy(img[0x1C:0x20], descriptor.GCMagicWord)
	padded(img[0x20:0x60], title, 0x00)
	return img
}
