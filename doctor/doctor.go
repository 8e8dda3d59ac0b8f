package doctor

import (
	"context"
	"fmt"
	"time"

	"hakeys/config"
	"hakeys/dispatch"
	"hakeys/hotkey"
)

// Run executes diagnostic checks and returns an exit code (0=all pass,
// 1=any fail).
func Run(cfgPath, backend string) int {
	fmt.Println("hakeys doctor - system diagnostics")
	fmt.Println("==================================")

	allPass := true

	cfg := checkConfig(cfgPath)
	if cfg == nil {
		allPass = false
	}
	if cfg != nil && !checkServer(cfg) {
		allPass = false
	}
	if !checkBackend(backend) {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkConfig(path string) *config.Config {
	fmt.Println()
	fmt.Printf("[1/3] Config file (%s)\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return nil
	}
	fmt.Printf("  PASS: %d shortcut(s) configured\n", len(cfg.Shortcuts))

	for _, sc := range cfg.Shortcuts {
		if _, err := hotkey.ParseCombo(sc.Hotkey); err != nil {
			fmt.Printf("  FAIL: shortcut %q: %v\n", sc.Name, err)
			return nil
		}
	}
	fmt.Println("  PASS: all hotkey combos parse")
	return cfg
}

// checkServer probes GET /api/ with the configured token. Any HTTP status
// means the server answered; only a transport failure is a FAIL.
func checkServer(cfg *config.Config) bool {
	fmt.Println()
	fmt.Printf("[2/3] Server reachability (%s)\n", cfg.Server.BaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	d := dispatch.New(cfg.Server)
	probe := &config.Shortcut{Name: "doctor_probe", Method: "GET", Endpoint: "/api/"}
	res, err := d.Dispatch(ctx, probe)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	if res.OK {
		fmt.Printf("  PASS: server answered %d in %dms\n", res.Status, res.Elapsed.Milliseconds())
	} else {
		fmt.Printf("  PASS: server answered %d (check the token if this is 401)\n", res.Status)
	}
	return true
}

func checkBackend(name string) bool {
	fmt.Println()
	fmt.Printf("[3/3] Hotkey backend (%s)\n", name)

	msg, err := hotkey.Diagnose(name)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: %s\n", msg)
	return true
}
