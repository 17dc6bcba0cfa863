package gamedb

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"gameid/internal/extract"
	"gameid/internal/platform"
)

// tsvColumns maps accepted header names to record fields. Snapshots from
// different eras label columns differently; all spellings land in the same
// place.
var tsvColumns = map[string]string{
	"serial": "serial", "id": "serial", "game_id": "serial",
	"title": "title", "name": "title",
	"developer": "developer", "publisher": "publisher",
	"rating": "rating", "esrb": "rating",
	"region": "region",
	"release_date": "release_date", "date": "release_date", "released": "release_date",
	"canonical_id": "canonical_id", "uid": "canonical_id",
}

// ParseTSV reads one platform's metadata snapshot. The first row names the
// columns; at minimum a serial and a title column must be present. Rows
// missing a serial are skipped.
func ParseTSV(tag platform.Tag, r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, fmt.Errorf("empty snapshot for %s", tag)
	}
	header := strings.Split(strings.TrimPrefix(scanner.Text(), "\uFEFF"), "\t")
	fieldFor := make([]string, len(header))
	seenSerial, seenTitle := false, false
	for i, name := range header {
		field := tsvColumns[strings.ToLower(strings.TrimSpace(name))]
		fieldFor[i] = field
		seenSerial = seenSerial || field == "serial"
		seenTitle = seenTitle || field == "title"
	}
	if !seenSerial || !seenTitle {
		return nil, fmt.Errorf("snapshot for %s lacks serial/title columns (header %q)", tag, header)
	}

	var recs []Record
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		rec := Record{Platform: tag}
		for i, val := range cols {
			if i >= len(fieldFor) {
				break
			}
			val = strings.TrimSpace(val)
			switch fieldFor[i] {
			case "serial":
				rec.Serial = extract.NormalizeSerial(tag, val)
			case "title":
				rec.Title = val
			case "developer":
				rec.Developer = val
			case "publisher":
				rec.Publisher = val
			case "rating":
				rec.Rating = val
			case "region":
				rec.Region = val
			case "release_date":
				rec.ReleaseDate = val
			case "canonical_id":
				rec.CanonicalID = val
			}
		}
		if rec.Serial == "" {
			continue
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return recs, nil
}

// maybeGzip wraps r with a gzip reader when the stream starts with the gzip
// magic bytes.
func maybeGzip(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err == nil && len(magic) == 2 && magic[0] == 0x1F && magic[1] == 0x8B {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return gz, nil
	}
	return br, nil
}

// ImportFile loads a local TSV (optionally gzipped) snapshot into the cache,
// replacing the platform's previous records. Returns how many records were
// imported.
func (c *Cache) ImportFile(ctx context.Context, tag platform.Tag, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()

	r, err := maybeGzip(f)
	if err != nil {
		return 0, err
	}
	recs, err := ParseTSV(tag, r)
	if err != nil {
		return 0, err
	}
	if err := c.ReplacePlatform(ctx, tag, recs); err != nil {
		return 0, err
	}
	return len(recs), nil
}
