package extract

import (
	"encoding/binary"
	"fmt"
	"strings"

	"gameid/internal/platform"
)

// n64Regions maps the country-code byte of an N64 header to a region name.
var n64Regions = map[string]string{
	"A": "Asia", "B": "Brazil", "C": "China", "D": "Germany",
	"E": "USA", "F": "France", "G": "Gateway", "H": "Netherlands",
	"I": "Italy", "J": "Japan", "K": "Korea", "L": "Gateway",
	"N": "Canada", "P": "Europe", "S": "Spain", "U": "Australia",
	"W": "Scandinavia", "X": "Europe", "Y": "Europe",
}

// gbaRegions maps the last character of a GBA game code to a region name.
var gbaRegions = map[byte]string{
	'J': "Japan", 'E': "USA", 'P': "Europe", 'D': "Germany",
	'F': "France", 'I': "Italy", 'S': "Spain", 'U': "Australia",
	'K': "Korea", 'C': "China",
}

// segaRegions maps Sega region-code characters to region names.
var segaRegions = map[byte]string{
	'J': "Japan", 'U': "USA", 'E': "Europe",
	'T': "Asia", 'K': "Korea", 'A': "Asia", 'B': "Brazil",
}

// composeSerial produces the raw serial for a validated header. GB and SNES
// headers carry no publisher serial at all, so theirs is composed from
// stable header fields; the database is keyed with the same composition.
func composeSerial(tag platform.Tag, hdr []byte, fields map[string]string) string {
	switch tag {
	case platform.GB, platform.GBC:
		title := fields["title"]
		if title == "" {
			return ""
		}
		return fmt.Sprintf("%s-%s", title, strings.TrimPrefix(fields["global_checksum"], "0x"))
	case platform.SNES:
		title := fields["title"]
		if title == "" {
			return ""
		}
		checksum := binary.LittleEndian.Uint16(hdr[0x1E:0x20])
		return fmt.Sprintf("%s-%s-%04X-%s",
			strings.TrimPrefix(fields["developer_id"], "0x"), fields["version"], checksum, title)
	case platform.N64:
		cart := fields["cartridge_id"]
		if cart == "" {
			return ""
		}
		return "N" + cart + fields["country_code"]
	default:
		return fields["serial"]
	}
}

func titleHint(fields map[string]string) string {
	if t := fields["title"]; t != "" {
		return t
	}
	if t := fields["title_overseas"]; t != "" {
		return t
	}
	return fields["title_domestic"]
}

// regionHint derives a human-readable region from whatever regional marker
// the platform's header carries. Empty when the header has none.
func regionHint(tag platform.Tag, fields map[string]string) string {
	switch tag {
	case platform.N64:
		return n64Regions[fields["country_code"]]
	case platform.GBA:
		serial := fields["serial"]
		if len(serial) == 4 {
			return gbaRegions[serial[3]]
		}
	case platform.Genesis, platform.SegaCD:
		return firstSegaRegion(fields["regions"])
	case platform.Saturn:
		return firstSegaRegion(fields["area_codes"])
	case platform.GC:
		serial := fields["serial"]
		if len(serial) == 4 {
			return gbaRegions[serial[3]]
		}
	}
	return ""
}

func firstSegaRegion(codes string) string {
	for i := 0; i < len(codes); i++ {
		if name, ok := segaRegions[codes[i]]; ok {
			return name
		}
	}
	return ""
}
