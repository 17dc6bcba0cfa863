// Package descriptor holds the static per-platform format tables that drive
// identifier extraction.
//
// Each platform gets one Descriptor: an ordered list of candidate header
// layouts (cartridge platforms with generational revisions list several) and
// a validator per layout. Disc platforms whose serial lives inside the
// filesystem rather than at a fixed offset additionally carry a traversal
// rule naming the system file or root-file pattern. Layouts are tried in
// declared order and the first one that validates wins; the order is part of
// the table and deliberate, not an accident of iteration.
//
// A layout that fails its validity check never yields fields: a wrong-format
// or corrupt image must surface as a format mismatch, not as a
// plausible-looking garbage serial.
//
// The tables are read-only after process start. Adding a platform means
// adding a table entry, plus a validator function only when the new layout's
// check is genuinely novel.
package descriptor
