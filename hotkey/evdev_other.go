//go:build !linux

package hotkey

import "fmt"

func newEvdevBackend() (Backend, error) {
	return nil, fmt.Errorf("evdev backend is only available on linux")
}

func diagnoseEvdev() (string, error) {
	return "", fmt.Errorf("evdev backend is only available on linux")
}
