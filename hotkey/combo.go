package hotkey

import (
	"fmt"
	"strings"
)

type Modifier int

const (
	ModCtrl Modifier = iota
	ModShift
	ModAlt
	ModSuper
)

var modNames = map[Modifier]string{
	ModCtrl:  "ctrl",
	ModShift: "shift",
	ModAlt:   "alt",
	ModSuper: "super",
}

// modSynonyms maps every accepted modifier spelling to its canonical form.
var modSynonyms = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"shift":   ModShift,
	"alt":     ModAlt,
	"option":  ModAlt,
	"super":   ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
	"win":     ModSuper,
	"windows": ModSuper,
}

var keySynonyms = map[string]string{
	"return": "enter",
	"esc":    "escape",
	"del":    "delete",
}

// namedKeys are the accepted non-character keys, canonical spelling.
var namedKeys = map[string]bool{
	"space": true, "enter": true, "escape": true, "tab": true,
	"delete": true, "up": true, "down": true, "left": true, "right": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
	"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
}

// Combo is a parsed key combination: zero or more modifiers plus exactly
// one key, e.g. ctrl+alt+l.
type Combo struct {
	Mods []Modifier
	Key  string
}

func (c Combo) String() string {
	parts := make([]string, 0, len(c.Mods)+1)
	for _, m := range c.Mods {
		parts = append(parts, modNames[m])
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}

// ParseCombo parses a user hotkey string like "ctrl+alt+l". Parsing is
// case-insensitive and accepts common modifier synonyms.
func ParseCombo(s string) (Combo, error) {
	if strings.TrimSpace(s) == "" {
		return Combo{}, fmt.Errorf("empty hotkey")
	}

	var combo Combo
	seen := make(map[Modifier]bool)
	for _, raw := range strings.Split(s, "+") {
		part := strings.ToLower(strings.TrimSpace(raw))
		if part == "" {
			continue
		}
		if mod, ok := modSynonyms[part]; ok {
			if !seen[mod] {
				seen[mod] = true
				combo.Mods = append(combo.Mods, mod)
			}
			continue
		}
		if canonical, ok := keySynonyms[part]; ok {
			part = canonical
		}
		if combo.Key != "" {
			return Combo{}, fmt.Errorf("hotkey %q has more than one key (%s, %s)", s, combo.Key, part)
		}
		if !validKey(part) {
			return Combo{}, fmt.Errorf("hotkey %q: unknown key %q", s, part)
		}
		combo.Key = part
	}

	if combo.Key == "" {
		return Combo{}, fmt.Errorf("hotkey %q has no key", s)
	}
	return combo, nil
}

func validKey(k string) bool {
	if len(k) == 1 {
		c := k[0]
		return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
	}
	return namedKeys[k]
}
