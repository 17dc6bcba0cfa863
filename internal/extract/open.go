package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gameid/internal/binread"
	"gameid/internal/iso9660"
	"gameid/internal/platform"
)

// ExtractPath opens a file (or block device) and extracts it as the given
// platform. Cue sheets are resolved to their first data track before
// extraction.
func ExtractPath(path string, tag platform.Tag) (*Identifier, error) {
	return ExtractPathWith(path, tag, MountedOptions{})
}

// ExtractPathWith is ExtractPath with volume metadata applied when the path
// turns out to be a mounted disc directory.
func ExtractPathWith(path string, tag platform.Tag, mopts MountedOptions) (*Identifier, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return ExtractMountedWith(path, tag, mopts)
	}

	if strings.EqualFold(filepath.Ext(path), ".cue") {
		sheet, err := iso9660.ParseCue(path)
		if err != nil {
			return nil, err
		}
		path = sheet.BinFiles[0]
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	src, err := binread.FromFile(f)
	if err != nil {
		return nil, err
	}
	return Extract(src, tag)
}
