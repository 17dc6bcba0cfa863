package extract

import (
	"errors"
	"fmt"
	"strings"

	"gameid/internal/binread"
	"gameid/internal/descriptor"
	"gameid/internal/iso9660"
	"gameid/internal/platform"
)

// maxSystemFileRead bounds how much of a serial-bearing system file is read.
const maxSystemFileRead = 256

// extractDiscVolume identifies an ISO 9660 disc image by the platform's disc
// rule: a serial-named root file, a system file's contents, or the volume
// label itself.
func extractDiscVolume(src *binread.Source, tag platform.Tag, rule *descriptor.DiscRule) (*Identifier, error) {
	img, err := iso9660.Open(src, iso9660.Options{RawDataOffset: rule.RawDataOffset})
	if err != nil {
		if errors.Is(err, binread.ErrTruncatedInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s expects an ISO 9660 volume: %v", ErrFormatMismatch, tag, err)
	}

	raw, err := discSerial(img, tag, rule)
	if err != nil {
		return nil, err
	}

	return discIdentifier(tag, raw, img), nil
}

func discSerial(img *iso9660.Image, tag platform.Tag, rule *descriptor.DiscRule) (string, error) {
	switch rule.Kind {
	case descriptor.RuleRootSerialFile:
		files, err := img.RootFiles()
		if err != nil {
			return "", err
		}
		for _, prefix := range rule.SerialPrefixes {
			for _, f := range files {
				if strings.HasPrefix(strings.ToUpper(f.Name), prefix) {
					return f.Name, nil
				}
			}
		}
		// Some discs omit the serial file but master the serial into the
		// volume label.
		if vol := img.VolumeID(); hasSerialPrefix(vol, rule.SerialPrefixes) {
			return vol, nil
		}
		return "", fmt.Errorf("%w: no %s serial file in the volume root", ErrFormatMismatch, tag)

	case descriptor.RuleSystemFile:
		entry, ok := img.FindRootFile(rule.FileName)
		if !ok {
			return "", fmt.Errorf("%w: volume has no %s", ErrFormatMismatch, rule.FileName)
		}
		length := int(entry.Size)
		if length > maxSystemFileRead {
			length = maxSystemFileRead
		}
		data, err := img.OpenFile(entry).ReadAt(0, length)
		if err != nil {
			return "", err
		}
		serial := string(data)
		if idx := strings.IndexByte(serial, rule.Terminator); idx != -1 {
			serial = serial[:idx]
		}
		serial = strings.TrimSpace(serial)
		if serial == "" {
			return "", fmt.Errorf("%w: %s carries no serial", ErrFormatMismatch, rule.FileName)
		}
		return serial, nil

	case descriptor.RuleVolumeLabel:
		vol := img.VolumeID()
		if vol == "" {
			return "", fmt.Errorf("%w: volume has no label", ErrFormatMismatch)
		}
		return vol, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, tag)
}

// discIdentifier fills the hint fields from the volume descriptor. The
// label and mastering metadata are not serials but help a human confirm a
// match.
func discIdentifier(tag platform.Tag, raw string, img *iso9660.Image) *Identifier {
	fields := map[string]string{}
	if v := img.SystemID(); v != "" {
		fields["system_id"] = v
	}
	if v := img.VolumeID(); v != "" {
		fields["volume_id"] = v
	}
	if v := img.PublisherID(); v != "" {
		fields["publisher_id"] = v
	}
	if v := img.DataPreparerID(); v != "" {
		fields["data_preparer_id"] = v
	}
	if v := img.CreationStamp(); v != "" {
		fields["creation_stamp"] = v
	}

	return &Identifier{
		Platform:  tag,
		Serial:    NormalizeSerial(tag, raw),
		RawSerial: raw,
		Title:     img.VolumeID(),
		Fields:    fields,
	}
}

func hasSerialPrefix(name string, prefixes []string) bool {
	up := strings.ToUpper(name)
	for _, p := range prefixes {
		if strings.HasPrefix(up, p) {
			return true
		}
	}
	return false
}
