package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `server:
  base_url: http://homeassistant.local:8123
  token: secret-token
shortcuts:
  - name: table_led
    hotkey: ctrl+alt+l
    method: post
    endpoint: /api/services/light/toggle
    body:
      entity_id: light.table_led
  - name: all_off
    hotkey: ctrl+alt+o
    method: POST
    endpoint: /api/services/homeassistant/turn_off
  - name: ping
    hotkey: ctrl+alt+p
    method: GET
    endpoint: /api/
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", validYAML))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.BaseURL != "http://homeassistant.local:8123" {
		t.Errorf("base_url = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.Token != "secret-token" {
		t.Errorf("token = %q", cfg.Server.Token)
	}

	want := []string{"table_led", "all_off", "ping"}
	if len(cfg.Shortcuts) != len(want) {
		t.Fatalf("got %d shortcuts, want %d", len(cfg.Shortcuts), len(want))
	}
	for i, name := range want {
		if cfg.Shortcuts[i].Name != name {
			t.Errorf("shortcut %d = %q, want %q", i, cfg.Shortcuts[i].Name, name)
		}
	}
}

func TestLoadNormalizesMethod(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", validYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Shortcuts[0].Method != "POST" {
		t.Errorf("method = %q, want POST", cfg.Shortcuts[0].Method)
	}
	if cfg.Shortcuts[0].Body["entity_id"] != "light.table_led" {
		t.Errorf("body = %v", cfg.Shortcuts[0].Body)
	}
}

func TestLoadValidJSON(t *testing.T) {
	content := `{
  "server": {"base_url": "http://ha.local:8123", "token": "tok"},
  "shortcuts": [
    {"name": "a", "hotkey": "ctrl+a", "method": "GET", "endpoint": "/api/"}
  ]
}`
	cfg, err := Load(writeConfig(t, "config.json", content))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Shortcuts[0].Name != "a" {
		t.Errorf("name = %q", cfg.Shortcuts[0].Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *config.Error, got %v", err)
	}
}

func TestLoadUnknownField(t *testing.T) {
	content := `server:
  base_url: http://ha.local:8123
  token: tok
  extra_field: nope
shortcuts:
  - name: a
    hotkey: ctrl+a
    method: GET
    endpoint: /api/
`
	_, err := Load(writeConfig(t, "config.yaml", content))
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *config.Error for unknown field, got %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "config.yaml", "server: [broken"))
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *config.Error, got %v", err)
	}
}

func TestValidationFailures(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing base_url", `server:
  token: tok
shortcuts:
  - {name: a, hotkey: ctrl+a, method: GET, endpoint: /api/}
`},
		{"missing shortcut name", `server: {base_url: "http://h", token: tok}
shortcuts:
  - {hotkey: ctrl+a, method: GET, endpoint: /api/}
`},
		{"missing hotkey", `server: {base_url: "http://h", token: tok}
shortcuts:
  - {name: a, method: GET, endpoint: /api/}
`},
		{"bad method", `server: {base_url: "http://h", token: tok}
shortcuts:
  - {name: a, hotkey: ctrl+a, method: YEET, endpoint: /api/}
`},
		{"relative endpoint", `server: {base_url: "http://h", token: tok}
shortcuts:
  - {name: a, hotkey: ctrl+a, method: GET, endpoint: api/}
`},
		{"duplicate names", `server: {base_url: "http://h", token: tok}
shortcuts:
  - {name: a, hotkey: ctrl+a, method: GET, endpoint: /api/}
  - {name: a, hotkey: ctrl+b, method: GET, endpoint: /api/}
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "config.yaml", tc.content))
			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *config.Error, got %v", err)
			}
		})
	}
}

func TestTokenFromEnv(t *testing.T) {
	t.Setenv("HAKEYS_TOKEN", "env-token")
	content := `server:
  base_url: http://ha.local:8123
shortcuts:
  - {name: a, hotkey: ctrl+a, method: GET, endpoint: /api/}
`
	cfg, err := Load(writeConfig(t, "config.yaml", content))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Token != "env-token" {
		t.Errorf("token = %q, want env-token", cfg.Server.Token)
	}
}

func TestShortcutLookup(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", validYAML))
	if err != nil {
		t.Fatal(err)
	}

	sc, err := cfg.Shortcut("all_off")
	if err != nil {
		t.Fatal(err)
	}
	if sc.Endpoint != "/api/services/homeassistant/turn_off" {
		t.Errorf("endpoint = %q", sc.Endpoint)
	}

	_, err = cfg.Shortcut("missing")
	var lerr *LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *LookupError, got %v", err)
	}
	if lerr.Name != "missing" {
		t.Errorf("lookup error name = %q", lerr.Name)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HAKEYS_CONFIG", "")
	if got := DefaultPath(); got != "config.yaml" {
		t.Errorf("default = %q", got)
	}
	t.Setenv("HAKEYS_CONFIG", "/etc/hakeys.yaml")
	if got := DefaultPath(); got != "/etc/hakeys.yaml" {
		t.Errorf("env override = %q", got)
	}
}
