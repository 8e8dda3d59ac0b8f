package hotkey

import (
	"context"
	"fmt"
)

// Backend is an interchangeable global-hotkey listener. Register binds a
// combo to a callback; Listen blocks delivering events until the context is
// canceled. Callbacks run on the backend's listener goroutine.
type Backend interface {
	Register(combo Combo, fn func()) error
	Listen(ctx context.Context) error
	Close() error
}

// New selects a backend by name. "global" uses OS hotkey registration
// (X11, macOS, Windows); "evdev" reads /dev/input directly for headless
// Linux boxes.
func New(name string) (Backend, error) {
	switch name {
	case "", "global":
		return newGlobalBackend(), nil
	case "evdev":
		return newEvdevBackend()
	default:
		return nil, fmt.Errorf("unknown hotkey backend %q (use global or evdev)", name)
	}
}

// Diagnose reports whether the named backend is usable on this system.
func Diagnose(name string) (string, error) {
	switch name {
	case "", "global":
		return diagnoseGlobal()
	case "evdev":
		return diagnoseEvdev()
	default:
		return "", fmt.Errorf("unknown hotkey backend %q", name)
	}
}
