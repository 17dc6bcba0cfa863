package descriptor

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"gameid/internal/platform"
)

// Game Boy header geometry. The header sits at 0x100; field offsets below
// are relative to that base.
const (
	GBHeaderBase   = 0x100
	GBHeaderLen    = 0x50
	gbChecksumFrom = 0x34 // 0x134: title start
	gbChecksumTo   = 0x4D // 0x14D: stored header checksum
)

// GBCartridgeTypes maps the cartridge-type byte at 0x147 to its mapper
// description.
var GBCartridgeTypes = map[byte]string{
	0x00: "ROM", 0x01: "MBC1", 0x02: "MBC1 + RAM", 0x03: "MBC1 + RAM + Battery",
	0x05: "MBC2", 0x06: "MBC2 + Battery", 0x08: "ROM + RAM", 0x09: "ROM + RAM + Battery",
	0x0B: "MMM01", 0x0C: "MMM01 + RAM", 0x0D: "MMM01 + RAM + Battery",
	0x0F: "MBC3 + Timer + Battery", 0x10: "MBC3 + Timer + RAM + Battery",
	0x11: "MBC3", 0x12: "MBC3 + RAM", 0x13: "MBC3 + RAM + Battery",
	0x19: "MBC5", 0x1A: "MBC5 + RAM", 0x1B: "MBC5 + RAM + Battery",
	0x1C: "MBC5 + Rumble", 0x1D: "MBC5 + Rumble + RAM", 0x1E: "MBC5 + Rumble + RAM + Battery",
	0x20: "MBC6", 0x22: "MBC7 + Sensor + Rumble + RAM + Battery",
	0xFC: "Pocket Camera", 0xFD: "Bandai TAMA5", 0xFE: "HuC3", 0xFF: "HuC1 + RAM + Battery",
}

// GenesisSystemTypes are the accepted console-name strings at 0x100 of a
// Mega Drive / Genesis ROM.
var GenesisSystemTypes = map[string]struct{}{
	"SEGA MEGA DRIVE": {}, "SEGA GENESIS": {}, "SEGA 32X": {},
	"SEGA EVERDRIVE": {}, "SEGA SSF": {}, "SEGA MEGAWIFI": {},
	"SEGA PICO": {}, "SEGA TERA68K": {}, "SEGA TERA286": {},
}

// validateGBHeaderChecksum recomputes the 8-bit header checksum over
// 0x134-0x14C and compares it against the stored byte at 0x14D.
func validateGBHeaderChecksum(hdr []byte) error {
	var sum byte
	for _, b := range hdr[gbChecksumFrom:gbChecksumTo] {
		sum = sum - b - 1
	}
	if sum != hdr[gbChecksumTo] {
		return fmt.Errorf("header checksum %#02x does not match stored %#02x", sum, hdr[gbChecksumTo])
	}
	return nil
}

func validateGBALogo(hdr []byte) error {
	if !bytes.Equal(hdr[0x04:0x04+len(NintendoLogoGBA)], NintendoLogoGBA) {
		return fmt.Errorf("boot logo mismatch")
	}
	return nil
}

// validateSNESChecksum checks that the stored checksum and its complement
// (both little-endian, at +0x1C and +0x1E of the header) sum to 0xFFFF.
// This is the same scan SNES emulators use to tell LoROM from HiROM.
func validateSNESChecksum(hdr []byte) error {
	complement := binary.LittleEndian.Uint16(hdr[0x1C:0x1E])
	checksum := binary.LittleEndian.Uint16(hdr[0x1E:0x20])
	if complement+checksum != 0xFFFF {
		return fmt.Errorf("checksum %#04x and complement %#04x do not sum to 0xFFFF", checksum, complement)
	}
	return nil
}

func validateN64FirstWord(hdr []byte) error {
	if !bytes.Equal(hdr[0:4], N64FirstWord) {
		return fmt.Errorf("boot word %x does not match %x", hdr[0:4], N64FirstWord)
	}
	return nil
}

func validateGenesisSystemType(hdr []byte) error {
	name := cleanASCII(hdr[0:16])
	if _, ok := GenesisSystemTypes[name]; !ok {
		return fmt.Errorf("unrecognized system type %q", name)
	}
	return nil
}

func gbDescriptor(tag platform.Tag) *Descriptor {
	return &Descriptor{
		Platform: tag,
		Media:    MediaCartridge,
		Layouts: []Layout{{
			Name:      "dmg",
			MinSize:   GBHeaderBase + GBHeaderLen,
			Base:      GBHeaderBase,
			HeaderLen: GBHeaderLen,
			Fields: []Field{
				{Name: "title", Offset: 0x34, Length: 15, Enc: EncASCII},
				{Name: "cgb_flag", Offset: 0x43, Length: 1, Enc: EncHexByte},
				{Name: "sgb_flag", Offset: 0x46, Length: 1, Enc: EncHexByte},
				{Name: "cartridge_type_code", Offset: 0x47, Length: 1, Enc: EncHexByte},
				{Name: "rom_size_code", Offset: 0x48, Length: 1, Enc: EncHexByte},
				{Name: "ram_size_code", Offset: 0x49, Length: 1, Enc: EncHexByte},
				{Name: "old_licensee_code", Offset: 0x4B, Length: 1, Enc: EncHexByte},
				{Name: "new_licensee_code", Offset: 0x44, Length: 2, Enc: EncASCII},
				{Name: "version", Offset: 0x4C, Length: 1, Enc: EncUint8},
				{Name: "header_checksum", Offset: 0x4D, Length: 1, Enc: EncHexByte},
				{Name: "global_checksum", Offset: 0x4E, Length: 2, Enc: EncHexWordBE},
			},
			Validate: validateGBHeaderChecksum,
		}},
	}
}

func init() {
	register(gbDescriptor(platform.GB))
	register(gbDescriptor(platform.GBC))

	register(&Descriptor{
		Platform: platform.GBA,
		Media:    MediaCartridge,
		Layouts: []Layout{{
			Name:      "agb",
			MinSize:   0xC0,
			Base:      0,
			HeaderLen: 0xC0,
			Fields: []Field{
				{Name: "title", Offset: 0xA0, Length: 12, Enc: EncASCII},
				{Name: "serial", Offset: 0xAC, Length: 4, Enc: EncASCII},
				{Name: "maker_code", Offset: 0xB0, Length: 2, Enc: EncASCII},
				{Name: "main_unit_code", Offset: 0xB3, Length: 1, Enc: EncHexByte},
				{Name: "device_type", Offset: 0xB4, Length: 1, Enc: EncHexByte},
				{Name: "version", Offset: 0xBC, Length: 1, Enc: EncUint8},
			},
			Validate: validateGBALogo,
		}},
	})

	// SNES dumps come in four arrangements: LoROM and HiROM, each with or
	// without a 512-byte copier header. Bare layouts first: headered
	// dumps are the minority and a headered file cannot validate at the
	// bare offsets by accident without also passing the checksum test.
	snesFields := []Field{
		{Name: "title", Offset: 0x00, Length: 21, Enc: EncASCII},
		{Name: "map_mode", Offset: 0x15, Length: 1, Enc: EncHexByte},
		{Name: "chipset", Offset: 0x16, Length: 1, Enc: EncHexByte},
		{Name: "developer_id", Offset: 0x1A, Length: 1, Enc: EncHexByte},
		{Name: "version", Offset: 0x1B, Length: 1, Enc: EncUint8},
	}
	snesLayout := func(name string, base int64) Layout {
		return Layout{
			Name:      name,
			MinSize:   base + 0x20,
			Base:      base,
			HeaderLen: 0x20,
			Fields:    snesFields,
			Validate:  validateSNESChecksum,
		}
	}
	register(&Descriptor{
		Platform: platform.SNES,
		Media:    MediaCartridge,
		Layouts: []Layout{
			snesLayout("lorom", 0x7FC0),
			snesLayout("hirom", 0xFFC0),
			snesLayout("lorom+copier", 0x7FC0+512),
			snesLayout("hirom+copier", 0xFFC0+512),
		},
	})

	n64Fields := []Field{
		{Name: "title", Offset: 0x20, Length: 20, Enc: EncASCII},
		{Name: "cartridge_id", Offset: 0x3C, Length: 2, Enc: EncASCII},
		{Name: "country_code", Offset: 0x3E, Length: 1, Enc: EncASCII},
		{Name: "version", Offset: 0x3F, Length: 1, Enc: EncUint8},
	}
	register(&Descriptor{
		Platform: platform.N64,
		Media:    MediaCartridge,
		Layouts: []Layout{
			{
				Name:      "z64",
				MinSize:   0x40,
				Base:      0,
				HeaderLen: 0x40,
				Fields:    n64Fields,
				Validate:  validateN64FirstWord,
			},
			{
				Name:      "v64",
				MinSize:   0x40,
				Base:      0,
				HeaderLen: 0x40,
				Swapped:   true,
				Fields:    n64Fields,
				Validate:  validateN64FirstWord,
			},
		},
	})

	register(&Descriptor{
		Platform: platform.Genesis,
		Media:    MediaCartridge,
		Layouts: []Layout{{
			Name:      "megadrive",
			MinSize:   0x200,
			Base:      0x100,
			HeaderLen: 0x100,
			Fields: []Field{
				{Name: "system_type", Offset: 0x00, Length: 16, Enc: EncASCII},
				{Name: "publisher", Offset: 0x13, Length: 4, Enc: EncASCII},
				{Name: "release_year", Offset: 0x18, Length: 4, Enc: EncASCII},
				{Name: "release_month", Offset: 0x1D, Length: 3, Enc: EncASCII},
				{Name: "title_domestic", Offset: 0x20, Length: 48, Enc: EncShiftJIS},
				{Name: "title_overseas", Offset: 0x50, Length: 48, Enc: EncASCII},
				{Name: "software_type", Offset: 0x80, Length: 2, Enc: EncASCII},
				{Name: "serial", Offset: 0x82, Length: 9, Enc: EncASCII},
				{Name: "revision", Offset: 0x8C, Length: 2, Enc: EncASCII},
				{Name: "checksum", Offset: 0x8E, Length: 2, Enc: EncHexWordBE},
				{Name: "regions", Offset: 0xF0, Length: 3, Enc: EncASCII},
			},
			Validate: validateGenesisSystemType,
		}},
	})
}
