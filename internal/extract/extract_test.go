package extract_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"gameid/internal/binread"
	"gameid/internal/extract"
	"gameid/internal/platform"
	"gameid/internal/testsupport"
)

func sourceOf(data []byte) *binread.Source {
	return binread.NewSource(bytes.NewReader(data), int64(len(data)))
}

func TestExtractGB(t *testing.T) {
	img := testsupport.GBImage(t, "POKEMON RED")
	id, err := extract.Extract(sourceOf(img), platform.GB)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id.Platform != platform.GB {
		t.Fatalf("platform = %s", id.Platform)
	}
	if id.Layout != "dmg" {
		t.Fatalf("layout = %q", id.Layout)
	}
	if id.Title != "POKEMON RED" {
		t.Fatalf("title = %q", id.Title)
	}
	if id.Serial != extract.NormalizeSerial(platform.GB, id.RawSerial) {
		t.Fatalf("serial %q is not the normalization of %q", id.Serial, id.RawSerial)
	}
}

func TestExtractGBA(t *testing.T) {
	img := testsupport.GBAImage(t, "METROID4USA", "AMTE")
	id, err := extract.Extract(sourceOf(img), platform.GBA)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id.Serial != "AMTE" {
		t.Fatalf("serial = %q", id.Serial)
	}
	if id.Region != "USA" {
		t.Fatalf("region = %q", id.Region)
	}
}

func TestExtractN64ByteSwapped(t *testing.T) {
	img := testsupport.N64Image(t, "THE LEGEND OF ZELDA", "ZL", 'E', 0, true)
	id, err := extract.Extract(sourceOf(img), platform.N64)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id.Layout != "v64" {
		t.Fatalf("layout = %q", id.Layout)
	}
	if id.Serial != "NZLE" {
		t.Fatalf("serial = %q", id.Serial)
	}
	if id.Region != "USA" {
		t.Fatalf("region = %q", id.Region)
	}
	if id.Title != "THE LEGEND OF ZELDA" {
		t.Fatalf("title = %q", id.Title)
	}
}

func TestExtractSNESHiROM(t *testing.T) {
	img := testsupport.SNESImage(t, "CHRONO TRIGGER", true, false)
	id, err := extract.Extract(sourceOf(img), platform.SNES)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id.Layout != "hirom" {
		t.Fatalf("layout = %q", id.Layout)
	}
	if id.Serial == "" || id.Title != "CHRONO TRIGGER" {
		t.Fatalf("serial = %q title = %q", id.Serial, id.Title)
	}
}

func TestExtractGenesis(t *testing.T) {
	img := testsupport.GenesisImage(t, "T-50446", "VECTORMAN")
	id, err := extract.Extract(sourceOf(img), platform.Genesis)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id.Serial != "T50446" {
		t.Fatalf("serial = %q", id.Serial)
	}
	if id.Region != "Japan" {
		t.Fatalf("region = %q", id.Region)
	}
}

func TestExtractSaturnAnchored(t *testing.T) {
	img := testsupport.SaturnImage(t, "MK-81086", "NIGHTS INTO DREAMS")
	id, err := extract.Extract(sourceOf(img), platform.Saturn)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id.Serial != "MK81086" {
		t.Fatalf("serial = %q", id.Serial)
	}
	if id.Title != "NIGHTS INTO DREAMS" {
		t.Fatalf("title = %q", id.Title)
	}
}

func TestExtractSegaCD(t *testing.T) {
	img := testsupport.SegaCDImage(t, "T-93015", "SONIC CD")
	id, err := extract.Extract(sourceOf(img), platform.SegaCD)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id.Serial != "T93015" {
		t.Fatalf("serial = %q", id.Serial)
	}
}

func TestExtractGC(t *testing.T) {
	img := testsupport.GCImage(t, "GALE", "METROID PRIME")
	id, err := extract.Extract(sourceOf(img), platform.GC)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id.Serial != "GALE" {
		t.Fatalf("serial = %q", id.Serial)
	}
	if id.Region != "USA" {
		t.Fatalf("region = %q", id.Region)
	}
}

func TestExtractPSXCooked(t *testing.T) {
	iso := testsupport.BuildISO(t, "PLAYSTATION", "FINAL_FANTASY_VII", []testsupport.ISOFile{
		{Name: "SYSTEM.CNF", Data: []byte("BOOT = cdrom:\\SLUS_005.94;1\r\n")},
		{Name: "SLUS_005.94", Data: []byte{0}},
	})
	id, err := extract.Extract(sourceOf(iso), platform.PSX)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id.Serial != "SLUS00594" {
		t.Fatalf("serial = %q", id.Serial)
	}
	if id.RawSerial != "SLUS_005.94" {
		t.Fatalf("raw serial = %q", id.RawSerial)
	}
	if id.Fields["volume_id"] != "FINAL_FANTASY_VII" {
		t.Fatalf("volume_id = %q", id.Fields["volume_id"])
	}
}

func TestExtractPSXRawSectors(t *testing.T) {
	iso := testsupport.BuildISO(t, "PLAYSTATION", "CASTLEVANIA", []testsupport.ISOFile{
		{Name: "SLUS_000.67", Data: []byte{0}},
	})
	raw := testsupport.RawWrap(t, iso, 0x18)
	id, err := extract.Extract(sourceOf(raw), platform.PSX)
	if err != nil {
		t.Fatalf("extract raw: %v", err)
	}
	if id.Serial != "SLUS00067" {
		t.Fatalf("serial = %q", id.Serial)
	}
}

func TestExtractPSPSystemFile(t *testing.T) {
	iso := testsupport.BuildISO(t, "PSP GAME", "LUMINES", []testsupport.ISOFile{
		{Name: "UMD_DATA.BIN", Data: []byte("ULUS-10002|0000000000000000|0001|G\x00")},
	})
	id, err := extract.Extract(sourceOf(iso), platform.PSP)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id.Serial != "ULUS10002" {
		t.Fatalf("serial = %q", id.Serial)
	}
	if id.RawSerial != "ULUS-10002" {
		t.Fatalf("raw serial = %q", id.RawSerial)
	}
}

func TestExtractNeoGeoCDVolumeLabel(t *testing.T) {
	iso := testsupport.BuildISO(t, "", "SAMURAI_SHODOWN", nil)
	id, err := extract.Extract(sourceOf(iso), platform.NeoGeoCD)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id.RawSerial != "SAMURAI_SHODOWN" {
		t.Fatalf("raw serial = %q", id.RawSerial)
	}
}

func TestTruncatedInput(t *testing.T) {
	img := testsupport.GBImage(t, "POKEMON RED")
	_, err := extract.Extract(sourceOf(img[:0x100]), platform.GB)
	if !errors.Is(err, binread.ErrTruncatedInput) {
		t.Fatalf("err = %v, want truncated input", err)
	}
}

func TestCrossPlatformMismatch(t *testing.T) {
	// A Mega Drive ROM is long enough to try the Game Boy layout but its
	// header checksum cannot validate.
	img := testsupport.GenesisImage(t, "T-50446", "VECTORMAN")
	_, err := extract.Extract(sourceOf(img), platform.GB)
	if !errors.Is(err, extract.ErrFormatMismatch) {
		t.Fatalf("err = %v, want format mismatch", err)
	}
}

func TestUnsupportedPlatform(t *testing.T) {
	_, err := extract.Extract(sourceOf(make([]byte, 16)), platform.Tag("3do"))
	if !errors.Is(err, extract.ErrUnsupportedPlatform) {
		t.Fatalf("err = %v, want unsupported platform", err)
	}
}

func TestNormalizeSerialIdempotent(t *testing.T) {
	cases := []struct {
		tag  platform.Tag
		raw  string
		want string
	}{
		{platform.PSX, "SLUS_005.94", "SLUS00594"},
		{platform.PSP, "ulus-10002", "ULUS10002"},
		{platform.Saturn, "MK-81086 #", "MK81086"},
		{platform.Genesis, " T-50446 ", "T50446"},
		{platform.GBA, "AMTE", "AMTE"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got := extract.NormalizeSerial(tc.tag, tc.raw)
			if got != tc.want {
				t.Fatalf("normalize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
			if again := extract.NormalizeSerial(tc.tag, got); again != got {
				t.Fatalf("normalization is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestExtractMountedSerialFile(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "SYSTEM.CNF"), 64)
	testsupport.WriteFile(t, filepath.Join(dir, "SLUS_205.52"), 1)

	id, err := extract.ExtractMounted(dir, platform.PS2)
	if err != nil {
		t.Fatalf("extract mounted: %v", err)
	}
	if id.Serial != "SLUS20552" {
		t.Fatalf("serial = %q", id.Serial)
	}
}

func TestExtractMountedSerialFileFirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "SLUS_111.11"), 64)
	testsupport.WriteFile(t, filepath.Join(dir, "SLUS_222.22"), 64)

	id, err := extract.ExtractMounted(dir, platform.PSX)
	if err != nil {
		t.Fatalf("extract mounted: %v", err)
	}
	if id.Serial != "SLUS11111" {
		t.Fatalf("serial = %q, want first directory match", id.Serial)
	}
}

func TestExtractMountedSystemFile(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteImage(t, filepath.Join(dir, "UMD_DATA.BIN"), []byte("ULES-00151|1234|0001|G"))

	id, err := extract.ExtractMounted(dir, platform.PSP)
	if err != nil {
		t.Fatalf("extract mounted: %v", err)
	}
	if id.Serial != "ULES00151" {
		t.Fatalf("serial = %q", id.Serial)
	}
}

func TestExtractMountedCartridgeRejected(t *testing.T) {
	_, err := extract.ExtractMounted(t.TempDir(), platform.SNES)
	if !errors.Is(err, extract.ErrFormatMismatch) {
		t.Fatalf("err = %v, want format mismatch", err)
	}
}

func TestExtractPathCueSheet(t *testing.T) {
	dir := t.TempDir()
	img := testsupport.BuildISO(t, "PLAYSTATION", "CRASH", []testsupport.ISOFile{
		{Name: "SCUS_949.00", Data: make([]byte, 2048)},
	})
	raw := testsupport.RawWrap(t, img, 0x18)
	testsupport.WriteImage(t, filepath.Join(dir, "Crash (USA).bin"), raw)

	cuePath := filepath.Join(dir, "Crash (USA).cue")
	cue := "FILE \"Crash (USA).bin\" BINARY\n  TRACK 01 MODE2/2352\n    INDEX 01 00:00:00\n"
	testsupport.WriteImage(t, cuePath, []byte(cue))

	id, err := extract.ExtractPath(cuePath, platform.PSX)
	if err != nil {
		t.Fatalf("extract cue: %v", err)
	}
	if id.Serial != "SCUS94900" {
		t.Fatalf("serial = %q", id.Serial)
	}
}

func TestExtractMountedLabelOverride(t *testing.T) {
	dir := t.TempDir()
	id, err := extract.ExtractMountedWith(dir, platform.NeoGeoCD, extract.MountedOptions{
		Label: "KOF_96",
		Stamp: "1996-07-30-12-00-00-00",
	})
	if err != nil {
		t.Fatalf("extract mounted: %v", err)
	}
	if id.Serial != "KOF96" {
		t.Fatalf("serial = %q", id.Serial)
	}
	if id.Fields["volume_id"] != "KOF_96" || id.Fields["creation_stamp"] != "1996-07-30-12-00-00-00" {
		t.Fatalf("fields = %v", id.Fields)
	}
}

func TestExtractPathRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.gba")
	testsupport.WriteImage(t, path, testsupport.GBAImage(t, "KIRBYNIGHT", "A7KE"))

	id, err := extract.ExtractPath(path, platform.GBA)
	if err != nil {
		t.Fatalf("extract path: %v", err)
	}
	if id.Serial != "A7KE" {
		t.Fatalf("serial = %q", id.Serial)
	}
}
