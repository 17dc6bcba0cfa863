package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gameid/internal/descriptor"
	"gameid/internal/platform"
)

// MountedOptions supplies volume metadata a mounted filesystem no longer
// exposes. Mounting discards the ISO 9660 descriptor, so the label and
// creation stamp must come from the caller when they matter.
type MountedOptions struct {
	// Label overrides the volume label otherwise derived from the mount
	// point's directory name.
	Label string
	// Stamp is the volume creation timestamp of the original disc.
	Stamp string
}

// ExtractMounted identifies a disc already mounted as a filesystem, applying
// the platform's disc rule to the directory's root entries. Only disc
// platforms can be mounted.
func ExtractMounted(dir string, tag platform.Tag) (*Identifier, error) {
	return ExtractMountedWith(dir, tag, MountedOptions{})
}

// ExtractMountedWith is ExtractMounted with caller-supplied volume metadata.
func ExtractMountedWith(dir string, tag platform.Tag, mopts MountedOptions) (*Identifier, error) {
	desc, ok := descriptor.For(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, tag)
	}
	if desc.Disc == nil {
		return nil, fmt.Errorf("%w: %s images are not mountable filesystems", ErrFormatMismatch, tag)
	}
	rule := desc.Disc

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read mounted disc %s: %w", dir, err)
	}

	var raw string
	switch rule.Kind {
	case descriptor.RuleRootSerialFile:
		// First match wins, as on the image path; ReadDir returns
		// entries sorted by name.
	scan:
		for _, prefix := range rule.SerialPrefixes {
			for _, e := range entries {
				if !e.IsDir() && strings.HasPrefix(strings.ToUpper(e.Name()), prefix) {
					raw = e.Name()
					break scan
				}
			}
		}
		if raw == "" {
			return nil, fmt.Errorf("%w: no %s serial file in %s", ErrFormatMismatch, tag, dir)
		}

	case descriptor.RuleSystemFile:
		var path string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(e.Name(), rule.FileName) {
				path = filepath.Join(dir, e.Name())
				break
			}
		}
		if path == "" {
			return nil, fmt.Errorf("%w: %s has no %s", ErrFormatMismatch, dir, rule.FileName)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if len(data) > maxSystemFileRead {
			data = data[:maxSystemFileRead]
		}
		raw = string(data)
		if idx := strings.IndexByte(raw, rule.Terminator); idx != -1 {
			raw = raw[:idx]
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, fmt.Errorf("%w: %s carries no serial", ErrFormatMismatch, rule.FileName)
		}

	case descriptor.RuleVolumeLabel:
		// A mounted volume exposes its label as the mount point name
		// unless the caller supplies the real one.
		raw = mopts.Label
		if raw == "" {
			raw = filepath.Base(filepath.Clean(dir))
		}
		if raw == "" || raw == "." || raw == string(filepath.Separator) {
			return nil, fmt.Errorf("%w: cannot derive a label from %s", ErrFormatMismatch, dir)
		}
	}

	id := &Identifier{
		Platform:  tag,
		Serial:    NormalizeSerial(tag, raw),
		RawSerial: raw,
	}
	if mopts.Label != "" || mopts.Stamp != "" {
		id.Fields = make(map[string]string)
		if mopts.Label != "" {
			id.Fields["volume_id"] = mopts.Label
			id.Title = mopts.Label
		}
		if mopts.Stamp != "" {
			id.Fields["creation_stamp"] = mopts.Stamp
		}
	}
	return id, nil
}
