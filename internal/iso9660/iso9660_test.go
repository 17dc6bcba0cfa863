package iso9660

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gameid/internal/binread"
	"gameid/internal/testsupport"
)

func sourceOf(data []byte) *binread.Source {
	return binread.NewSource(bytes.NewReader(data), int64(len(data)))
}

func openImage(t *testing.T, data []byte, opts Options) *Image {
	t.Helper()
	im, err := Open(sourceOf(data), opts)
	if err != nil {
		t.Fatalf("open volume: %v", err)
	}
	return im
}

func TestOpenCookedVolume(t *testing.T) {
	img := testsupport.BuildISO(t, "PLAYSTATION", "MYGAME", rootEntries(t))
	im := openImage(t, img, Options{})

	if got := im.SystemID(); got != "PLAYSTATION" {
		t.Errorf("SystemID = %q", got)
	}
	if got := im.VolumeID(); got != "MYGAME" {
		t.Errorf("VolumeID = %q", got)
	}
	if got := im.PublisherID(); got != "TEST PUBLISHER" {
		t.Errorf("PublisherID = %q", got)
	}
	if got := im.DataPreparerID(); got != "TEST PREPARER" {
		t.Errorf("DataPreparerID = %q", got)
	}
	if got := im.CreationStamp(); got != "1998-11-27-12-00-00-00" {
		t.Errorf("CreationStamp = %q", got)
	}
}

func rootEntries(t *testing.T) []testsupport.ISOFile {
	t.Helper()
	return []testsupport.ISOFile{
		{Name: "SYSTEM.CNF", Data: []byte("BOOT = cdrom:\\SLUS_005.94;1\r\n")},
		{Name: "SLUS_005.94", Data: make([]byte, 2048)},
	}
}

func TestRootFiles(t *testing.T) {
	img := testsupport.BuildISO(t, "PLAYSTATION", "MYGAME", rootEntries(t))
	im := openImage(t, img, Options{})

	files, err := im.RootFiles()
	if err != nil {
		t.Fatalf("root files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d root files, want 2", len(files))
	}
	if files[0].Name != "SYSTEM.CNF" || files[1].Name != "SLUS_005.94" {
		t.Errorf("names = %q, %q", files[0].Name, files[1].Name)
	}
	if files[1].Size != 2048 {
		t.Errorf("size = %d", files[1].Size)
	}
}

func TestFindRootFileIsCaseInsensitive(t *testing.T) {
	img := testsupport.BuildISO(t, "PLAYSTATION", "MYGAME", rootEntries(t))
	im := openImage(t, img, Options{})

	entry, ok := im.FindRootFile("system.cnf")
	if !ok {
		t.Fatal("system.cnf not found")
	}
	if entry.Name != "SYSTEM.CNF" {
		t.Errorf("entry name = %q", entry.Name)
	}
	if _, ok := im.FindRootFile("MISSING.BIN"); ok {
		t.Error("found a file that does not exist")
	}
}

func TestOpenFileReadsExtent(t *testing.T) {
	content := []byte("BOOT = cdrom:\\SLUS_005.94;1\r\n")
	img := testsupport.BuildISO(t, "PLAYSTATION", "MYGAME", []testsupport.ISOFile{
		{Name: "SYSTEM.CNF", Data: content},
	})
	im := openImage(t, img, Options{})

	entry, ok := im.FindRootFile("SYSTEM.CNF")
	if !ok {
		t.Fatal("SYSTEM.CNF not found")
	}
	src := im.OpenFile(entry)
	data, err := src.ReadAt(0, int(entry.Size))
	if err != nil {
		t.Fatalf("read extent: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("extent = %q", data)
	}
}

func TestOpenRawVolume(t *testing.T) {
	cooked := testsupport.BuildISO(t, "PLAYSTATION", "RAWGAME", rootEntries(t))
	raw := testsupport.RawWrap(t, cooked, 0x18)
	im := openImage(t, raw, Options{RawDataOffset: 0x18})

	if got := im.VolumeID(); got != "RAWGAME" {
		t.Errorf("VolumeID = %q", got)
	}
	if _, ok := im.FindRootFile("SLUS_005.94"); !ok {
		t.Error("SLUS_005.94 not found in raw volume")
	}
}

func TestOpenRejectsOddSizes(t *testing.T) {
	for _, size := range []int{0, 100, 2048*17 + 7} {
		if _, err := Open(sourceOf(make([]byte, size)), Options{}); err == nil {
			t.Errorf("size %d: no error", size)
		}
	}
}

func TestOpenRejectsMissingSignature(t *testing.T) {
	img := make([]byte, 20*SectorCooked)
	if _, err := Open(sourceOf(img), Options{}); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseCue(t *testing.T) {
	dir := t.TempDir()
	cuePath := filepath.Join(dir, "game.cue")
	content := "FILE \"Game (USA) (Track 1).bin\" BINARY\n" +
		"  TRACK 01 MODE2/2352\n" +
		"    INDEX 01 00:00:00\n" +
		"FILE track2.bin BINARY\n" +
		"  TRACK 02 AUDIO\n"
	if err := os.WriteFile(cuePath, []byte(content), 0o644); err != nil {
		t.Fatalf("write cue: %v", err)
	}

	sheet, err := ParseCue(cuePath)
	if err != nil {
		t.Fatalf("parse cue: %v", err)
	}
	want := []string{
		filepath.Join(dir, "Game (USA) (Track 1).bin"),
		filepath.Join(dir, "track2.bin"),
	}
	if len(sheet.BinFiles) != len(want) {
		t.Fatalf("got %d files, want %d", len(sheet.BinFiles), len(want))
	}
	for i := range want {
		if sheet.BinFiles[i] != want[i] {
			t.Errorf("file %d = %q, want %q", i, sheet.BinFiles[i], want[i])
		}
	}
}

func TestParseCueRejectsEmptySheet(t *testing.T) {
	cuePath := filepath.Join(t.TempDir(), "empty.cue")
	if err := os.WriteFile(cuePath, []byte("REM nothing here\n"), 0o644); err != nil {
		t.Fatalf("write cue: %v", err)
	}
	if _, err := ParseCue(cuePath); err == nil {
		t.Fatal("expected error for sheet with no FILE lines")
	}
}
