package gamedb_test

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gameid/internal/gamedb"
	"gameid/internal/platform"
)

func TestIndexLookupNormalizesBothSides(t *testing.T) {
	ix := gamedb.NewIndex()
	ix.Add(gamedb.Record{Platform: platform.PSX, Serial: "SLUS_005.94", Title: "Final Fantasy VII"})

	recs, err := ix.Lookup(platform.PSX, "slus-00594")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "Final Fantasy VII" {
		t.Fatalf("recs = %+v", recs)
	}
	if recs[0].Serial != "SLUS00594" {
		t.Fatalf("stored serial = %q", recs[0].Serial)
	}
}

func TestIndexMissIsNotAnError(t *testing.T) {
	ix := gamedb.NewIndex()
	ix.Add(gamedb.Record{Platform: platform.PSX, Serial: "SLUS00594", Title: "Final Fantasy VII"})

	recs, err := ix.Lookup(platform.PSX, "SLUS99999")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("recs = %+v", recs)
	}

	// Same serial under another platform is also a miss.
	recs, err = ix.Lookup(platform.PS2, "SLUS00594")
	if err != nil || len(recs) != 0 {
		t.Fatalf("cross-platform lookup: recs=%v err=%v", recs, err)
	}
}

func TestIndexUnavailableIsSticky(t *testing.T) {
	ix := gamedb.NewIndex()
	ix.Add(gamedb.Record{Platform: platform.GBA, Serial: "AMTE", Title: "Metroid Fusion"})
	ix.SetUnavailable(nil)

	for i := 0; i < 3; i++ {
		_, err := ix.Lookup(platform.GBA, "AMTE")
		if !errors.Is(err, gamedb.ErrDatabaseUnavailable) {
			t.Fatalf("lookup %d: err = %v, want database unavailable", i, err)
		}
	}
}

func TestParseTSV(t *testing.T) {
	const snapshot = "serial\ttitle\tpublisher\tregion\trelease_date\n" +
		"SLUS-00594\tFinal Fantasy VII\tSCEA\tUSA\t1997-09-07\n" +
		"\tNo Serial Row\t\t\t\n" +
		"SCUS-94163\tGran Turismo\tSCEA\tUSA\t1998-04-30\n"

	recs, err := gamedb.ParseTSV(platform.PSX, strings.NewReader(snapshot))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Serial != "SLUS00594" {
		t.Fatalf("serial = %q", recs[0].Serial)
	}
	if recs[1].Title != "Gran Turismo" || recs[1].ReleaseDate != "1998-04-30" {
		t.Fatalf("record = %+v", recs[1])
	}
}

func TestParseTSVAlternateHeaders(t *testing.T) {
	const snapshot = "id\tname\tdate\n" +
		"NZLE\tThe Legend of Zelda: Ocarina of Time\t1998-11-23\n"

	recs, err := gamedb.ParseTSV(platform.N64, strings.NewReader(snapshot))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 1 || recs[0].Serial != "NZLE" || recs[0].ReleaseDate != "1998-11-23" {
		t.Fatalf("records = %+v", recs)
	}
}

func TestParseTSVRejectsMissingColumns(t *testing.T) {
	_, err := gamedb.ParseTSV(platform.PSX, strings.NewReader("foo\tbar\nx\ty\n"))
	if err == nil {
		t.Fatal("headerless snapshot accepted")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, err := gamedb.OpenCache(filepath.Join(t.TempDir(), "gamedb.sqlite"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	recs := []gamedb.Record{
		{Platform: platform.PSX, Serial: "SLUS00594", Title: "Final Fantasy VII", Region: "USA"},
		{Platform: platform.PSX, Serial: "SCUS94163", Title: "Gran Turismo", Region: "USA"},
	}
	if err := cache.ReplacePlatform(ctx, platform.PSX, recs); err != nil {
		t.Fatalf("replace: %v", err)
	}

	ix, err := cache.LoadIndex(ctx)
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	got, err := ix.Lookup(platform.PSX, "SLUS00594")
	if err != nil || len(got) != 1 || got[0].Title != "Final Fantasy VII" {
		t.Fatalf("lookup: recs=%v err=%v", got, err)
	}

	stats, err := cache.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats[platform.PSX] != 2 {
		t.Fatalf("stats = %v", stats)
	}

	// A re-import replaces rather than appends.
	if err := cache.ReplacePlatform(ctx, platform.PSX, recs[:1]); err != nil {
		t.Fatalf("replace again: %v", err)
	}
	stats, _ = cache.Stats(ctx)
	if stats[platform.PSX] != 1 {
		t.Fatalf("stats after re-import = %v", stats)
	}
}

func TestEmptyCacheLoadsUnavailableIndex(t *testing.T) {
	cache, err := gamedb.OpenCache(filepath.Join(t.TempDir(), "gamedb.sqlite"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	ix, err := cache.LoadIndex(context.Background())
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	if _, err := ix.Lookup(platform.PSX, "SLUS00594"); !errors.Is(err, gamedb.ErrDatabaseUnavailable) {
		t.Fatalf("err = %v, want database unavailable", err)
	}
}

func TestImportFileGzip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	path := filepath.Join(dir, "gba.tsv.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte("serial\ttitle\nAMTE\tMetroid Fusion\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	cache, err := gamedb.OpenCache(filepath.Join(dir, "gamedb.sqlite"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	n, err := cache.ImportFile(ctx, platform.GBA, path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 1 {
		t.Fatalf("imported %d records, want 1", n)
	}
}

func TestSnapshotURLPerConsoleRepository(t *testing.T) {
	got, err := gamedb.SnapshotURL("https://github.com/niemasd", platform.PSX)
	if err != nil {
		t.Fatalf("snapshot url: %v", err)
	}
	want := "https://github.com/niemasd/GameDB-PSX/releases/latest/download/PSX.data.tsv"
	if got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}
