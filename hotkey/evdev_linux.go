//go:build linux

package hotkey

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	evKey      = 1
	keyPress   = 1
	keyRelease = 0

	keyLCtrl  = 29
	keyRCtrl  = 97
	keyLShift = 42
	keyRShift = 54
	keyLAlt   = 56
	keyRAlt   = 100
	keyLMeta  = 125
	keyRMeta  = 126
)

const inputEventSize = 24

type evdevBinding struct {
	mods uint8 // bitmask over Modifier
	code uint16
	fn   func()
}

// evdevBackend reads raw input events from every keyboard under
// /dev/input. Works without a display server; the user must be able to
// read the event devices (input group or root).
type evdevBackend struct {
	mu       sync.Mutex
	bindings []evdevBinding
	files    []*os.File
	stop     chan struct{}
	once     sync.Once
}

func newEvdevBackend() (Backend, error) {
	return &evdevBackend{stop: make(chan struct{})}, nil
}

func (b *evdevBackend) Register(combo Combo, fn func()) error {
	code, ok := evdevKeyCodes[combo.Key]
	if !ok {
		return fmt.Errorf("key %q not supported by the evdev backend", combo.Key)
	}
	var mods uint8
	for _, m := range combo.Mods {
		mods |= 1 << uint(m)
	}
	b.mu.Lock()
	b.bindings = append(b.bindings, evdevBinding{mods: mods, code: code, fn: fn})
	b.mu.Unlock()
	return nil
}

func (b *evdevBackend) Listen(ctx context.Context) error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		b.files = append(b.files, f)
		go b.readEvents(f)
	}
	if len(b.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	<-ctx.Done()
	return b.Close()
}

func (b *evdevBackend) Close() error {
	b.once.Do(func() {
		close(b.stop)
		for _, f := range b.files {
			f.Close()
		}
	})
	return nil
}

// readEvents tracks modifier state per device and fires bindings whose key
// is pressed while all of its modifiers are held. Autorepeat events
// (value 2) never fire.
func (b *evdevBackend) readEvents(f *os.File) {
	buf := make([]byte, inputEventSize*16)
	var held uint8

	for {
		select {
		case <-b.stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey {
				continue
			}

			if mod, ok := modifierCode(evCode); ok {
				switch evValue {
				case keyPress:
					held |= 1 << uint(mod)
				case keyRelease:
					held &^= 1 << uint(mod)
				}
				continue
			}

			if evValue != keyPress {
				continue
			}
			b.mu.Lock()
			bindings := b.bindings
			b.mu.Unlock()
			for _, bind := range bindings {
				if bind.code == evCode && held&bind.mods == bind.mods {
					bind.fn()
				}
			}
		}
	}
}

func modifierCode(code uint16) (Modifier, bool) {
	switch code {
	case keyLCtrl, keyRCtrl:
		return ModCtrl, true
	case keyLShift, keyRShift:
		return ModShift, true
	case keyLAlt, keyRAlt:
		return ModAlt, true
	case keyLMeta, keyRMeta:
		return ModSuper, true
	}
	return 0, false
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, filepath.Join("/dev/input", e.Name()))
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}

func diagnoseEvdev() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), opened), nil
}
