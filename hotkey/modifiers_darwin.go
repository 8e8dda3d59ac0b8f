//go:build darwin

package hotkey

import xhotkey "golang.design/x/hotkey"

var modifierMap = map[Modifier]xhotkey.Modifier{
	ModCtrl:  xhotkey.ModCtrl,
	ModShift: xhotkey.ModShift,
	ModAlt:   xhotkey.ModOption,
	ModSuper: xhotkey.ModCmd,
}
