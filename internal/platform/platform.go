package platform

import (
	"fmt"
	"sort"
	"strings"
)

// Tag names one supported console/format family.
type Tag string

// Supported platforms.
const (
	GB       Tag = "GB"
	GBC      Tag = "GBC"
	GBA      Tag = "GBA"
	SNES     Tag = "SNES"
	N64      Tag = "N64"
	Genesis  Tag = "Genesis"
	PSX      Tag = "PSX"
	PS2      Tag = "PS2"
	PSP      Tag = "PSP"
	GC       Tag = "GC"
	Saturn   Tag = "Saturn"
	SegaCD   Tag = "SegaCD"
	NeoGeoCD Tag = "NeoGeoCD"
)

// All lists every supported platform in stable display order.
var All = []Tag{
	GB, GBC, GBA, SNES, N64, Genesis,
	PSX, PS2, PSP, GC, Saturn, SegaCD, NeoGeoCD,
}

var aliases = map[string]Tag{
	"GB":                   GB,
	"GAMEBOY":              GB,
	"GBC":                  GBC,
	"GAMEBOYCOLOR":         GBC,
	"GBA":                  GBA,
	"GAMEBOYADVANCE":       GBA,
	"SNES":                 SNES,
	"SUPERFAMICOM":         SNES,
	"SFC":                  SNES,
	"N64":                  N64,
	"NINTENDO64":           N64,
	"GENESIS":              Genesis,
	"MEGADRIVE":            Genesis,
	"MD":                   Genesis,
	"PSX":                  PSX,
	"PS1":                  PSX,
	"PLAYSTATION":          PSX,
	"PS2":                  PS2,
	"PLAYSTATION2":         PS2,
	"PSP":                  PSP,
	"PLAYSTATIONPORTABLE":  PSP,
	"GC":                   GC,
	"GAMECUBE":             GC,
	"NGC":                  GC,
	"SATURN":               Saturn,
	"SEGASATURN":           Saturn,
	"SS":                   Saturn,
	"SEGACD":               SegaCD,
	"MEGACD":               SegaCD,
	"SCD":                  SegaCD,
	"MCD":                  SegaCD,
	"NEOGEOCD":             NeoGeoCD,
	"NEOCD":                NeoGeoCD,
	"NGCD":                 NeoGeoCD,
}

// Parse maps a user-supplied console name to a Tag. Matching is
// case-insensitive and accepts common aliases.
func Parse(name string) (Tag, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, "/", "")
	if tag, ok := aliases[key]; ok {
		return tag, nil
	}
	return "", fmt.Errorf("unknown console %q (options: %s)", name, strings.Join(Names(), ", "))
}

// Valid reports whether t is one of the supported platforms.
func (t Tag) Valid() bool {
	for _, tag := range All {
		if t == tag {
			return true
		}
	}
	return false
}

// DiscBased reports whether the platform uses optical media. Disc platforms
// carry their identifying header inside the disc image rather than at a
// fixed cartridge offset.
func (t Tag) DiscBased() bool {
	switch t {
	case PSX, PS2, PSP, GC, Saturn, SegaCD, NeoGeoCD:
		return true
	default:
		return false
	}
}

// Aliases returns a copy of the accepted console name spellings. Keys are
// the canonicalized forms Parse matches against.
func Aliases() map[string]Tag {
	out := make(map[string]Tag, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}

// Names returns the canonical platform names sorted alphabetically.
func Names() []string {
	names := make([]string, len(All))
	for i, tag := range All {
		names[i] = string(tag)
	}
	sort.Strings(names)
	return names
}
