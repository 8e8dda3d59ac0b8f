package hotkey

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	xhotkey "golang.design/x/hotkey"
)

// globalBackend registers combos with the OS (X11 on Linux, Carbon on
// macOS, RegisterHotKey on Windows) via golang.design/x/hotkey. On macOS
// the process must run under mainthread.Init.
type globalBackend struct {
	mu     sync.Mutex
	hks    []*xhotkey.Hotkey
	stop   chan struct{}
	once   sync.Once
	closed bool
}

func newGlobalBackend() *globalBackend {
	return &globalBackend{stop: make(chan struct{})}
}

func (b *globalBackend) Register(combo Combo, fn func()) error {
	mods := make([]xhotkey.Modifier, 0, len(combo.Mods))
	for _, m := range combo.Mods {
		xm, ok := modifierMap[m]
		if !ok {
			return fmt.Errorf("modifier %q not supported on %s", modNames[m], runtime.GOOS)
		}
		mods = append(mods, xm)
	}
	key, ok := keyMap[combo.Key]
	if !ok {
		return fmt.Errorf("key %q not supported by the global backend", combo.Key)
	}

	hk := xhotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register %s: %w", combo, err)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		hk.Unregister()
		return fmt.Errorf("backend closed")
	}
	b.hks = append(b.hks, hk)
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-hk.Keydown():
				fn()
			case <-b.stop:
				return
			}
		}
	}()
	return nil
}

func (b *globalBackend) Listen(ctx context.Context) error {
	<-ctx.Done()
	return b.Close()
}

func (b *globalBackend) Close() error {
	b.once.Do(func() {
		close(b.stop)
		b.mu.Lock()
		b.closed = true
		hks := b.hks
		b.hks = nil
		b.mu.Unlock()
		for _, hk := range hks {
			hk.Unregister()
		}
	})
	return nil
}

func diagnoseGlobal() (string, error) {
	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" {
		return "", fmt.Errorf("global backend needs an X11 display (headless? use -b evdev)")
	}
	return "global hotkey registration available", nil
}
