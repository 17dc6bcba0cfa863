// Package iso9660 reads the slice of ISO 9660 needed to identify game discs.
//
// It parses the primary volume descriptor (system/volume/publisher fields and
// the volume creation timestamp) and walks the root directory table so
// platform extractors can find the system file that carries a game's serial.
// Both cooked 2048-byte and raw 2352-byte sector images are handled; raw
// PlayStation dumps additionally skip the per-sector sync/header bytes.
// CUE sheets are resolved to their first data track.
package iso9660
