package hotkey

import "testing"

func TestParseCombo(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ctrl+alt+l", "ctrl+alt+l"},
		{"Ctrl+Alt+L", "ctrl+alt+l"},
		{"control+option+l", "ctrl+alt+l"},
		{"cmd+shift+3", "super+shift+3"},
		{"win+space", "super+space"},
		{"CTRL + SHIFT + F5", "ctrl+shift+f5"},
		{"ctrl+esc", "ctrl+escape"},
		{"ctrl+return", "ctrl+enter"},
		{"f12", "f12"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			combo, err := ParseCombo(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if combo.String() != tc.want {
				t.Errorf("ParseCombo(%q) = %q, want %q", tc.in, combo, tc.want)
			}
		})
	}
}

func TestParseComboErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"ctrl+shift",      // modifier-only
		"ctrl+a+b",        // two keys
		"ctrl+bogus",      // unknown named key
		"ctrl+ß",          // non-ascii key
	} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseCombo(in); err == nil {
				t.Errorf("ParseCombo(%q) succeeded, want error", in)
			}
		})
	}
}

func TestParseComboDedupesModifiers(t *testing.T) {
	combo, err := ParseCombo("ctrl+control+a")
	if err != nil {
		t.Fatal(err)
	}
	if len(combo.Mods) != 1 {
		t.Errorf("mods = %v, want single ctrl", combo.Mods)
	}
}
