package iso9660

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CueSheet lists the data files referenced by a CUE sheet, resolved relative
// to the sheet's directory.
type CueSheet struct {
	BinFiles []string
}

// ParseCue reads FILE entries from a CUE sheet. Quoted and bare filenames
// are both accepted.
func ParseCue(path string) (*CueSheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cue sheet: %w", err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	sheet := &CueSheet{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(strings.ToUpper(line), "FILE") {
			continue
		}
		name := parseCueFileName(line)
		if name == "" {
			continue
		}
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		sheet.BinFiles = append(sheet.BinFiles, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read cue sheet: %w", err)
	}
	if len(sheet.BinFiles) == 0 {
		return nil, fmt.Errorf("cue sheet %s references no files", path)
	}
	return sheet, nil
}

func parseCueFileName(line string) string {
	if idx := strings.Index(line, `"`); idx != -1 {
		rest := line[idx+1:]
		if end := strings.Index(rest, `"`); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
		return ""
	}
	fields := strings.Fields(line)
	if len(fields) >= 2 {
		return fields[1]
	}
	return ""
}
