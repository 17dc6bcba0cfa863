package testsupport

import (
	"encoding/binary"
	"testing"
)

// ISOFile is one root-directory entry of a synthetic volume.
type ISOFile struct {
	Name string
	Data []byte
}

const (
	cookedSector = 2048
	rawSector    = 2352
	rawDataStart = 0x18
)

// BuildISO assembles a minimal cooked ISO 9660 image: system area, primary
// volume descriptor, set terminator, a flat root directory, and the file
// extents. Good enough for the root-level lookups identification performs.
func BuildISO(t testing.TB, systemID, volumeID string, files []ISOFile) []byte {
	t.Helper()

	const (
		pvdSector  = 16
		termSector = 17
		rootSector = 18
	)
	firstFileSector := uint32(rootSector + 1)

	// Lay out file extents after the root directory.
	lbas := make([]uint32, len(files))
	next := firstFileSector
	for i, f := range files {
		lbas[i] = next
		next += uint32((len(f.Data) + cookedSector - 1) / cookedSector)
		if len(f.Data) == 0 {
			next++
		}
	}

	img := make([]byte, int(next)*cookedSector)

	pvd := img[pvdSector*cookedSector : (pvdSector+1)*cookedSector]
	pvd[0] = 1
	copy(pvd[1:6], "CD001")
	pvd[6] = 1
	padded(pvd[8:40], systemID, ' ')
	padded(pvd[40:72], volumeID, ' ')
	padded(pvd[318:446], "TEST PUBLISHER", ' ')
	padded(pvd[446:574], "TEST PREPARER", ' ')
	copy(pvd[813:829], "1998112712000000")

	root := pvd[156 : 156+34]
	root[0] = 34
	binary.LittleEndian.PutUint32(root[2:6], rootSector)
	binary.BigEndian.PutUint32(root[6:10], rootSector)
	binary.LittleEndian.PutUint32(root[10:14], cookedSector)
	binary.BigEndian.PutUint32(root[14:18], cookedSector)
	root[25] = 0x02
	root[32] = 1

	term := img[termSector*cookedSector : (termSector+1)*cookedSector]
	term[0] = 255
	copy(term[1:6], "CD001")
	term[6] = 1

	dir := img[rootSector*cookedSector : (rootSector+1)*cookedSector]
	pos := 0
	pos += copy(dir[pos:], dirRecord([]byte{0x00}, rootSector, cookedSector, 0x02))
	pos += copy(dir[pos:], dirRecord([]byte{0x01}, rootSector, cookedSector, 0x02))
	for i, f := range files {
		pos += copy(dir[pos:], dirRecord([]byte(f.Name+";1"), lbas[i], uint32(len(f.Data)), 0x00))
	}

	for i, f := range files {
		copy(img[int(lbas[i])*cookedSector:], f.Data)
	}
	return img
}

// RawWrap re-sectorizes a cooked image into 2352-byte raw sectors with the
// user data placed at the given per-sector offset.
func RawWrap(t testing.TB, cooked []byte, dataOffset int) []byte {
	t.Helper()

	if dataOffset < 0 || dataOffset+cookedSector > rawSector {
		t.Fatalf("data offset %d does not fit a raw sector", dataOffset)
	}
	sectors := (len(cooked) + cookedSector - 1) / cookedSector
	img := make([]byte, sectors*rawSector)
	sync := []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}
	for s := 0; s < sectors; s++ {
		raw := img[s*rawSector : (s+1)*rawSector]
		copy(raw, sync)
		from := s * cookedSector
		to := from + cookedSector
		if to > len(cooked) {
			to = len(cooked)
		}
		copy(raw[dataOffset:], cooked[from:to])
	}
	return img
}

func dirRecord(name []byte, lba, size uint32, flags byte) []byte {
	recLen := 33 + len(name)
	if recLen%2 == 1 {
		recLen++
	}
	rec := make([]byte, recLen)
	rec[0] = byte(recLen)
	binary.LittleEndian.PutUint32(rec[2:6], lba)
	binary.BigEndian.PutUint32(rec[6:10], lba)
	binary.LittleEndian.PutUint32(rec[10:14], size)
	binary.BigEndian.PutUint32(rec[14:18], size)
	rec[25] = flags
	rec[32] = byte(len(name))
	copy(rec[33:], name)
	return rec
}
