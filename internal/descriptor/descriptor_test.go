package descriptor_test

import (
	"testing"

	"gameid/internal/descriptor"
	"gameid/internal/platform"
	"gameid/internal/testsupport"
)

func TestForCoversAllPlatforms(t *testing.T) {
	for _, tag := range platform.All {
		d, ok := descriptor.For(tag)
		if !ok {
			t.Fatalf("no descriptor for %s", tag)
		}
		if d.Platform != tag {
			t.Fatalf("descriptor for %s reports platform %s", tag, d.Platform)
		}
		wantDisc := tag.DiscBased()
		gotDisc := d.Media == descriptor.MediaDisc
		if wantDisc != gotDisc {
			t.Fatalf("media kind mismatch for %s", tag)
		}
		if d.Media == descriptor.MediaCartridge && len(d.Layouts) == 0 {
			t.Fatalf("cartridge platform %s has no layouts", tag)
		}
	}
}

func TestGBHeaderChecksum(t *testing.T) {
	img := testsupport.GBImage(t, "POKEMON RED")
	d, _ := descriptor.For(platform.GB)
	layout := d.Layouts[0]

	hdr := img[layout.Base : layout.Base+layout.HeaderLen]
	if err := layout.Validate(hdr); err != nil {
		t.Fatalf("valid header rejected: %v", err)
	}

	img[0x134] ^= 0xFF
	if err := layout.Validate(img[layout.Base : layout.Base+layout.HeaderLen]); err == nil {
		t.Fatal("corrupted header accepted")
	}
}

func TestGBADecode(t *testing.T) {
	img := testsupport.GBAImage(t, "METROID4USA", "AMTE")
	d, _ := descriptor.For(platform.GBA)
	layout := d.Layouts[0]

	if err := layout.Validate(img[:layout.HeaderLen]); err != nil {
		t.Fatalf("valid header rejected: %v", err)
	}
	fields := layout.Decode(img[:layout.HeaderLen])
	if fields["title"] != "METROID4USA" {
		t.Fatalf("title = %q", fields["title"])
	}
	if fields["serial"] != "AMTE" {
		t.Fatalf("serial = %q", fields["serial"])
	}
	if fields["maker_code"] != "01" {
		t.Fatalf("maker_code = %q", fields["maker_code"])
	}
}

func TestSNESLayoutSelection(t *testing.T) {
	img := testsupport.SNESImage(t, "CHRONO TRIGGER", true, false)
	d, _ := descriptor.For(platform.SNES)

	var matched string
	for _, layout := range d.Layouts {
		if layout.MinSize > int64(len(img)) {
			continue
		}
		hdr := img[layout.Base : layout.Base+layout.HeaderLen]
		if layout.Validate(hdr) == nil {
			matched = layout.Name
			break
		}
	}
	if matched != "hirom" {
		t.Fatalf("matched layout %q, want hirom", matched)
	}
}

func TestSaturnAnchor(t *testing.T) {
	img := testsupport.SaturnImage(t, "MK-81086", "NIGHTS")
	d, _ := descriptor.For(platform.Saturn)
	layout := d.Layouts[0]

	if got := layout.Locate(img[:layout.AnchorWindow]); got != 0 {
		t.Fatalf("anchor located at %d, want 0", got)
	}
	if got := layout.Locate(make([]byte, layout.AnchorWindow)); got != -1 {
		t.Fatalf("anchor found in zero bytes at %d", got)
	}
}

func TestGenesisSystemType(t *testing.T) {
	img := testsupport.GenesisImage(t, "T-50446", "VECTORMAN")
	d, _ := descriptor.For(platform.Genesis)
	layout := d.Layouts[0]

	hdr := img[layout.Base : layout.Base+layout.HeaderLen]
	if err := layout.Validate(hdr); err != nil {
		t.Fatalf("valid header rejected: %v", err)
	}
	fields := layout.Decode(hdr)
	if fields["serial"] != "T-50446" {
		t.Fatalf("serial = %q", fields["serial"])
	}

	copy(hdr[0:16], "NOT A CONSOLE   ")
	if err := layout.Validate(hdr); err == nil {
		t.Fatal("unknown system type accepted")
	}
}

func TestN64SwappedLayout(t *testing.T) {
	img := testsupport.N64Image(t, "ZELDA", "ZL", 'E', 0, true)
	d, _ := descriptor.For(platform.N64)

	if d.Layouts[0].Swapped {
		t.Fatal("native layout should come first")
	}
	if err := d.Layouts[0].Validate(img[:0x40]); err == nil {
		t.Fatal("swapped dump validated against native layout")
	}
	if !d.Layouts[1].Swapped {
		t.Fatal("second layout should be the swapped one")
	}
}
