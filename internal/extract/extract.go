package extract

import (
	"fmt"

	"gameid/internal/binread"
	"gameid/internal/descriptor"
	"gameid/internal/platform"
)

// Extract reads the identifying header of src as the given platform. The
// platform is always chosen by the caller; nothing here guesses the console
// from the bytes.
func Extract(src *binread.Source, tag platform.Tag) (*Identifier, error) {
	desc, ok := descriptor.For(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, tag)
	}
	if desc.Disc != nil {
		return extractDiscVolume(src, tag, desc.Disc)
	}
	return extractLayouts(src, tag, desc)
}

// extractLayouts tries the descriptor's candidate layouts in declaration
// order and keeps the first one whose validator accepts the header. A source
// shorter than every layout is truncated; one that fails every validator is
// a mismatch.
func extractLayouts(src *binread.Source, tag platform.Tag, desc *descriptor.Descriptor) (*Identifier, error) {
	size := src.Size()
	if size < desc.MinSize() {
		return nil, fmt.Errorf("%w: %d bytes is below the %d byte minimum for %s",
			binread.ErrTruncatedInput, size, desc.MinSize(), tag)
	}

	var window []byte
	for i := range desc.Layouts {
		layout := &desc.Layouts[i]
		if size < layout.MinSize {
			continue
		}

		base := layout.Base
		if len(layout.Anchor) > 0 {
			if window == nil {
				span := layout.AnchorWindow
				if span > size {
					span = size
				}
				var err error
				window, err = src.ReadAt(0, int(span))
				if err != nil {
					return nil, err
				}
			}
			base = layout.Locate(window)
			if base < 0 {
				continue
			}
			if base+layout.HeaderLen > size {
				continue
			}
		}

		hdr, err := src.ReadAt(base, int(layout.HeaderLen))
		if err != nil {
			continue
		}
		if layout.Swapped {
			hdr = binread.SwapPairs(hdr)
		}
		if layout.Validate != nil {
			if err := layout.Validate(hdr); err != nil {
				continue
			}
		}

		fields := layout.Decode(hdr)
		return buildIdentifier(tag, layout, hdr, fields)
	}

	return nil, fmt.Errorf("%w: no %s header layout validated", ErrFormatMismatch, tag)
}

// buildIdentifier assembles the identifier from decoded fields, composing
// the serial for platforms whose headers do not carry one directly.
func buildIdentifier(tag platform.Tag, layout *descriptor.Layout, hdr []byte, fields map[string]string) (*Identifier, error) {
	raw := composeSerial(tag, hdr, fields)
	if raw == "" {
		return nil, fmt.Errorf("%w: %s header validated but carries no serial", ErrFormatMismatch, tag)
	}

	id := &Identifier{
		Platform:  tag,
		Serial:    NormalizeSerial(tag, raw),
		RawSerial: raw,
		Title:     titleHint(fields),
		Region:    regionHint(tag, fields),
		Version:   fields["version"],
		Layout:    layout.Name,
		Fields:    fields,
	}
	return id, nil
}
