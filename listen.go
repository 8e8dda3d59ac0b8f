package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"hakeys/config"
	"hakeys/dispatch"
	"hakeys/hotkey"
	"hakeys/log"
)

// runListen registers every configured shortcut with the selected backend
// and blocks until SIGINT/SIGTERM. Dispatch failures are reported and
// listening continues.
func runListen() error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return err
	}

	if inBackground() {
		dir, err := log.ResolveDir(logDirFlag)
		if err != nil {
			return fmt.Errorf("resolve log directory: %w", err)
		}
		log.SetDir(dir)
		if err := log.InitFile(); err != nil {
			return fmt.Errorf("init log file: %w", err)
		}
		defer log.Close()
	}

	backend, err := hotkey.New(viper.GetString("backend"))
	if err != nil {
		return err
	}
	defer backend.Close()

	d := dispatch.New(cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := registerShortcuts(ctx, cfg, backend, d); err != nil {
		return err
	}

	fmt.Println("Listening for hotkeys (Ctrl+C to exit)...")
	return backend.Listen(ctx)
}

// registerShortcuts binds every shortcut's combo to a dispatch callback.
func registerShortcuts(ctx context.Context, cfg *config.Config, backend hotkey.Backend, d *dispatch.Dispatcher) error {
	for i := range cfg.Shortcuts {
		sc := &cfg.Shortcuts[i]
		combo, err := hotkey.ParseCombo(sc.Hotkey)
		if err != nil {
			return fmt.Errorf("shortcut %q: %w", sc.Name, err)
		}
		if err := backend.Register(combo, func() {
			// Errors are already reported and logged by Trigger.
			_ = d.Trigger(ctx, sc, "hotkey")
		}); err != nil {
			return fmt.Errorf("shortcut %q: %w", sc.Name, err)
		}
		log.Infof("registered %s for %q", combo, sc.Name)
		fmt.Printf("Registered hotkey '%s' for '%s'\n", sc.Hotkey, sc.Name)
	}
	return nil
}
