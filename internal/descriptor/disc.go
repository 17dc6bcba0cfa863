package descriptor

import (
	"bytes"
	"fmt"

	"gameid/internal/platform"
)

// Root-filename serial prefixes observed across dump regions, most common
// first. PSX and PS2 discs carry their serial as the name of a root file
// (e.g. SLUS_005.94).
var (
	psxSerialPrefixes = []string{
		"SLUS", "SCUS", "SLES", "SCES", "SLPS", "SLPM", "SCPS", "SIPS",
		"ESPM", "PBPX", "LSP",
	}
	ps2SerialPrefixes = []string{
		"SLUS", "SCUS", "SLES", "SCES", "SLPM", "SLPS", "SCPS", "SCAJ",
		"SLKA", "SLAJ", "SCKA", "TCPS", "PBPX",
	}
)

// Sega CD discs use one of several boot signatures depending on disc type.
var segaCDMagicWords = [][]byte{
	[]byte("SEGADISCSYSTEM"),
	[]byte("SEGABOOTDISC"),
	[]byte("SEGADATADISC"),
	[]byte("SEGADISC"),
}

var saturnMagicWord = []byte("SEGA SEGASATURN")

func validateGCMagic(hdr []byte) error {
	if !bytes.Equal(hdr[0x1C:0x20], GCMagicWord) {
		return fmt.Errorf("disc magic %x does not match %x", hdr[0x1C:0x20], GCMagicWord)
	}
	return nil
}

func init() {
	register(&Descriptor{
		Platform: platform.PSX,
		Media:    MediaDisc,
		Disc: &DiscRule{
			Kind:           RuleRootSerialFile,
			SerialPrefixes: psxSerialPrefixes,
			RawDataOffset:  0x18,
		},
	})

	register(&Descriptor{
		Platform: platform.PS2,
		Media:    MediaDisc,
		Disc: &DiscRule{
			Kind:           RuleRootSerialFile,
			SerialPrefixes: ps2SerialPrefixes,
		},
	})

	register(&Descriptor{
		Platform: platform.PSP,
		Media:    MediaDisc,
		Disc: &DiscRule{
			Kind:       RuleSystemFile,
			FileName:   "UMD_DATA.BIN",
			Terminator: '|',
		},
	})

	register(&Descriptor{
		Platform: platform.NeoGeoCD,
		Media:    MediaDisc,
		Disc: &DiscRule{
			Kind: RuleVolumeLabel,
		},
	})

	// GameCube discs are not ISO 9660; the identifying header sits at the
	// very start of the image.
	register(&Descriptor{
		Platform: platform.GC,
		Media:    MediaDisc,
		Layouts: []Layout{{
			Name:      "gcm",
			MinSize:   0x440,
			Base:      0,
			HeaderLen: 0x440,
			Fields: []Field{
				{Name: "serial", Offset: 0x00, Length: 4, Enc: EncASCII},
				{Name: "maker_code", Offset: 0x04, Length: 2, Enc: EncASCII},
				{Name: "disk_id", Offset: 0x06, Length: 1, Enc: EncUint8},
				{Name: "version", Offset: 0x07, Length: 1, Enc: EncUint8},
				{Name: "title", Offset: 0x20, Length: 0x3E0, Enc: EncASCII},
			},
			Validate: validateGCMagic,
		}},
	})

	// Saturn headers float with the dump format (cooked images put the
	// system area at 0, raw ones after the sector sync bytes), so the
	// layout anchors on the boot signature.
	register(&Descriptor{
		Platform: platform.Saturn,
		Media:    MediaDisc,
		Layouts: []Layout{{
			Name:         "saturn",
			MinSize:      0x100,
			HeaderLen:    0x100,
			Anchor:       saturnMagicWord,
			AnchorWindow: 0x1000,
			Fields: []Field{
				{Name: "maker_id", Offset: 0x10, Length: 16, Enc: EncASCII},
				{Name: "serial", Offset: 0x20, Length: 10, Enc: EncASCII},
				{Name: "version", Offset: 0x2A, Length: 6, Enc: EncASCII},
				{Name: "release_date", Offset: 0x30, Length: 8, Enc: EncASCII},
				{Name: "device_info", Offset: 0x38, Length: 8, Enc: EncASCII},
				{Name: "area_codes", Offset: 0x40, Length: 16, Enc: EncASCII},
				{Name: "peripherals", Offset: 0x50, Length: 16, Enc: EncASCII},
				{Name: "title", Offset: 0x60, Length: 0x70, Enc: EncShiftJIS},
			},
		}},
	})

	// Sega CD reuses the Mega Drive header block at +0x100 from the boot
	// signature; one layout per known signature, most common first.
	segaCDFields := []Field{
		{Name: "hardware_id", Offset: 0x00, Length: 16, Enc: EncASCII},
		{Name: "disc_name", Offset: 0x10, Length: 11, Enc: EncASCII},
		{Name: "system_name", Offset: 0x20, Length: 11, Enc: EncASCII},
		{Name: "build_date", Offset: 0x50, Length: 8, Enc: EncASCII},
		{Name: "system_type", Offset: 0x100, Length: 16, Enc: EncASCII},
		{Name: "release_year", Offset: 0x118, Length: 4, Enc: EncASCII},
		{Name: "release_month", Offset: 0x11D, Length: 3, Enc: EncASCII},
		{Name: "title_domestic", Offset: 0x120, Length: 48, Enc: EncShiftJIS},
		{Name: "title_overseas", Offset: 0x150, Length: 48, Enc: EncASCII},
		{Name: "serial", Offset: 0x180, Length: 16, Enc: EncASCII},
		{Name: "regions", Offset: 0x1F0, Length: 3, Enc: EncASCII},
	}
	segaCDLayouts := make([]Layout, 0, len(segaCDMagicWords))
	for _, magic := range segaCDMagicWords {
		segaCDLayouts = append(segaCDLayouts, Layout{
			Name:         "segacd/" + string(magic),
			MinSize:      0x300,
			HeaderLen:    0x200,
			Anchor:       magic,
			AnchorWindow: 0x1000,
			Fields:       segaCDFields,
		})
	}
	register(&Descriptor{
		Platform: platform.SegaCD,
		Media:    MediaDisc,
		Layouts:  segaCDLayouts,
	})
}
