package gamedb

import (
	"errors"
	"fmt"
	"sync"

	"gameid/internal/extract"
	"gameid/internal/platform"
)

// ErrDatabaseUnavailable reports that the metadata index has no usable
// backing data. The condition is sticky: once an index is marked
// unavailable every lookup fails with it until the index is reloaded.
var ErrDatabaseUnavailable = errors.New("metadata database unavailable")

// Index is the in-memory lookup table. Keys are the platform tag joined
// with the serial normalized by the same rules extraction applies, so the
// two sides of a lookup can never disagree on canonical form.
type Index struct {
	mu      sync.RWMutex
	records map[string][]Record
	loadErr error
}

// NewIndex returns an empty, available index.
func NewIndex() *Index {
	return &Index{records: make(map[string][]Record)}
}

func key(tag platform.Tag, serial string) string {
	return string(tag) + "\x00" + serial
}

// Add inserts a record, normalizing its serial.
func (ix *Index) Add(rec Record) {
	rec.Serial = extract.NormalizeSerial(rec.Platform, rec.Serial)
	if rec.Serial == "" {
		return
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	k := key(rec.Platform, rec.Serial)
	ix.records[k] = append(ix.records[k], rec)
}

// SetUnavailable marks the index unusable. The cause is reported by every
// subsequent lookup.
func (ix *Index) SetUnavailable(cause error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if cause == nil {
		cause = ErrDatabaseUnavailable
	}
	ix.loadErr = cause
}

// Lookup returns every record stored under the platform and serial. The
// serial is normalized before the lookup, so raw and canonical forms both
// work. A miss returns an empty slice and no error; an unavailable index
// returns ErrDatabaseUnavailable no matter the serial.
func (ix *Index) Lookup(tag platform.Tag, serial string) ([]Record, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.loadErr != nil {
		if errors.Is(ix.loadErr, ErrDatabaseUnavailable) {
			return nil, ix.loadErr
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseUnavailable, ix.loadErr)
	}
	recs := ix.records[key(tag, extract.NormalizeSerial(tag, serial))]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out, nil
}

// Len reports the total number of records.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	n := 0
	for _, recs := range ix.records {
		n += len(recs)
	}
	return n
}
