package iso9660

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"gameid/internal/binread"
)

const (
	// SectorCooked is the user-data sector size of a cooked image.
	SectorCooked = 2048
	// SectorRaw is the full sector size of a raw CD image including sync,
	// header, and error-correction bytes.
	SectorRaw = 2352

	pvdSector = 16
	pvdSize   = 2048

	rootDirRecordOffset = 156
)

// ErrNotISO9660 reports that a source does not carry a readable ISO 9660
// primary volume descriptor.
var ErrNotISO9660 = errors.New("not an ISO 9660 volume")

// Options adjusts how the volume is located inside the image.
type Options struct {
	// RawDataOffset is added inside the image when sectors are raw
	// (2352 bytes) to skip the per-sector sync and header bytes before
	// user data. PlayStation raw dumps use 0x18.
	RawDataOffset int64
}

// Image is an opened ISO 9660 volume over a bounded byte source.
type Image struct {
	src         *binread.Source
	blockSize   int64
	blockOffset int64
	pvd         []byte
}

// FileEntry describes one entry of the root directory table.
type FileEntry struct {
	Name string
	LBA  uint32
	Size uint32
}

// Open locates and validates the primary volume descriptor. The sector size
// is inferred from the image length: raw images are multiples of 2352 bytes,
// cooked images multiples of 2048.
func Open(src *binread.Source, opts Options) (*Image, error) {
	size := src.Size()
	var blockSize, blockOffset int64
	switch {
	case size > 0 && size%SectorRaw == 0:
		blockSize = SectorRaw
		blockOffset = opts.RawDataOffset
	case size > 0 && size%SectorCooked == 0:
		blockSize = SectorCooked
	default:
		return nil, fmt.Errorf("%w: image size %d matches no known sector size", ErrNotISO9660, size)
	}

	pvd, err := src.ReadAt(blockOffset+pvdSector*blockSize, pvdSize)
	if err != nil {
		return nil, fmt.Errorf("read primary volume descriptor: %w", err)
	}
	if string(pvd[1:6]) != "CD001" {
		return nil, fmt.Errorf("%w: missing CD001 signature", ErrNotISO9660)
	}

	return &Image{src: src, blockSize: blockSize, blockOffset: blockOffset, pvd: pvd}, nil
}

// SystemID returns the system identifier field of the volume descriptor.
func (im *Image) SystemID() string {
	return binread.CleanString(im.pvd[8:40])
}

// VolumeID returns the volume identifier (disc label).
func (im *Image) VolumeID() string {
	return binread.CleanString(im.pvd[40:72])
}

// PublisherID returns the publisher identifier.
func (im *Image) PublisherID() string {
	return binread.CleanString(im.pvd[318:446])
}

// DataPreparerID returns the data preparer identifier.
func (im *Image) DataPreparerID() string {
	return binread.CleanString(im.pvd[446:574])
}

// CreationStamp returns the volume creation timestamp reformatted as
// YYYY-MM-DD-HH-MM-SS-cc. Mastering tools do not always write a valid date,
// and some shift the field, so the terminator is located by scanning for the
// timezone/terminator bytes the way the stamp is laid out on real discs.
func (im *Image) CreationStamp() string {
	start := 813
	for i := 813; i < 830; i++ {
		if im.pvd[i] == '$' || im.pvd[i] == '.' {
			start = i - 16
			break
		}
	}
	if start < 0 || start+16 > len(im.pvd) {
		return ""
	}
	raw := im.pvd[start : start+16]
	for _, b := range raw {
		if b < ' ' || b > '~' {
			return ""
		}
	}
	text := string(raw)
	parts := []string{text[:4]}
	for i := 4; i < len(text); i += 2 {
		parts = append(parts, text[i:i+2])
	}
	return strings.Join(parts, "-")
}

// RootFiles lists the files in the root directory. Subdirectories are
// skipped; every platform this package serves keeps its system file at the
// volume root.
func (im *Image) RootFiles() ([]FileEntry, error) {
	rootLBA := binary.LittleEndian.Uint32(im.pvd[rootDirRecordOffset+2 : rootDirRecordOffset+6])
	rootLen := binary.LittleEndian.Uint32(im.pvd[rootDirRecordOffset+10 : rootDirRecordOffset+14])
	if rootLen == 0 {
		return nil, nil
	}

	data, err := im.src.ReadAt(im.blockOffset+int64(rootLBA)*im.blockSize, int(rootLen))
	if err != nil {
		return nil, fmt.Errorf("read root directory: %w", err)
	}

	var files []FileEntry
	for i := 0; i < len(data); {
		recLen := int(data[i])
		if recLen == 0 {
			break
		}
		if i+33 > len(data) {
			break
		}
		lba := binary.LittleEndian.Uint32(data[i+2 : i+6])
		size := binary.LittleEndian.Uint32(data[i+10 : i+14])
		flags := data[i+25]
		nameLen := int(data[i+32])
		if i+33+nameLen > len(data) {
			break
		}
		name := data[i+33 : i+33+nameLen]
		i += recLen

		// 0x00 and 0x01 are the self and parent entries.
		if nameLen == 1 && (name[0] == 0x00 || name[0] == 0x01) {
			continue
		}
		if flags&0x02 != 0 { // directory
			continue
		}
		text := string(name)
		if !printable(text) {
			continue
		}
		// Strip the ISO 9660 ";1" version suffix.
		if idx := strings.Index(text, ";"); idx != -1 {
			text = text[:idx]
		}
		files = append(files, FileEntry{Name: text, LBA: lba, Size: size})
	}
	return files, nil
}

// FindRootFile looks up a root directory entry by name, case-insensitively.
func (im *Image) FindRootFile(name string) (FileEntry, bool) {
	files, err := im.RootFiles()
	if err != nil {
		return FileEntry{}, false
	}
	for _, f := range files {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return FileEntry{}, false
}

// OpenFile exposes a root file's bytes as a nested source. The extent is
// read from its starting sector; files used for identification fit inside
// one sector chain so no per-sector de-interleaving is needed for raw images.
func (im *Image) OpenFile(entry FileEntry) *binread.Source {
	start := im.blockOffset + int64(entry.LBA)*im.blockSize
	return im.src.Section(start, int64(entry.Size))
}

func printable(s string) bool {
	for _, r := range s {
		if r < ' ' || r > '~' {
			return false
		}
	}
	return true
}
