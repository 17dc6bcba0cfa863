package platform

import "testing"

func TestParseAliases(t *testing.T) {
	tests := []struct {
		input string
		want  Tag
	}{
		{"gb", GB},
		{"GameBoy", GB},
		{"gbc", GBC},
		{"GBA", GBA},
		{"snes", SNES},
		{"Super Famicom", SNES},
		{"n64", N64},
		{"genesis", Genesis},
		{"Mega Drive", Genesis},
		{"psx", PSX},
		{"PS1", PSX},
		{"ps2", PS2},
		{"psp", PSP},
		{"GameCube", GC},
		{"saturn", Saturn},
		{"Sega CD", SegaCD},
		{"mega-cd", SegaCD},
		{"NeoGeoCD", NeoGeoCD},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %s, want %s", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, name := range []string{"", "amiga", "switch", "3DO"} {
		if _, err := Parse(name); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", name)
		}
	}
}

func TestDiscBased(t *testing.T) {
	discs := map[Tag]bool{
		GB: false, GBC: false, GBA: false, SNES: false, N64: false, Genesis: false,
		PSX: true, PS2: true, PSP: true, GC: true, Saturn: true, SegaCD: true, NeoGeoCD: true,
	}
	for tag, want := range discs {
		if got := tag.DiscBased(); got != want {
			t.Errorf("%s.DiscBased() = %v, want %v", tag, got, want)
		}
	}
}

func TestAllValid(t *testing.T) {
	for _, tag := range All {
		if !tag.Valid() {
			t.Errorf("%s reported invalid", tag)
		}
	}
	if Tag("Dreamcast").Valid() {
		t.Error("unknown tag reported valid")
	}
}
