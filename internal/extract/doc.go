// Package extract pulls the identifying serial and related header fields out
// of a game image for an explicitly selected platform.
//
// Extraction is descriptor-driven: the platform's descriptor supplies the
// ordered candidate layouts (or the disc traversal rule), and the first layout
// whose validator accepts the header wins. A source that no layout accepts is
// a format mismatch, never a best-effort guess; a source too short to carry
// any layout is reported as truncated input.
//
// The serial attached to the returned identifier is normalized with the same
// rules the database index applies to its keys, so extraction output can be
// used for lookups directly.
package extract
