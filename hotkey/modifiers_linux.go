//go:build linux

package hotkey

import xhotkey "golang.design/x/hotkey"

// Alt is Mod1 and Super/Win is Mod4 under X11.
var modifierMap = map[Modifier]xhotkey.Modifier{
	ModCtrl:  xhotkey.ModCtrl,
	ModShift: xhotkey.ModShift,
	ModAlt:   xhotkey.Mod1,
	ModSuper: xhotkey.Mod4,
}
