// Package binread provides bounded random-access reads over game image byte
// sources.
//
// A Source wraps an io.ReaderAt with a known size so every field read can be
// range-checked up front; reads past the end fail with ErrTruncatedInput
// instead of returning short data. Sections expose a nested window of a
// source, which the ISO 9660 layer uses to hand out per-file byte ranges
// inside a disc image. All operations are pure reads and safe for concurrent
// use.
package binread
