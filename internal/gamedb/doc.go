// Package gamedb manages the game metadata database: an in-memory lookup
// index keyed by platform and normalized serial, a SQLite cache that
// persists imported metadata between runs, and a fetcher that refreshes the
// cache from published TSV snapshots.
//
// Lookups never guess. A serial with no entry is a miss, and an index whose
// backing data never loaded reports unavailability on every lookup rather
// than pretending the serial is unknown.
package gamedb
