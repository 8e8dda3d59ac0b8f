package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Server describes the REST endpoint shortcuts are dispatched against.
// Immutable after load.
type Server struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Token   string `yaml:"token" json:"token"`
}

// Shortcut binds a named hotkey combination to one HTTP call.
type Shortcut struct {
	Name     string         `yaml:"name" json:"name"`
	Hotkey   string         `yaml:"hotkey" json:"hotkey"`
	Method   string         `yaml:"method" json:"method"`
	Endpoint string         `yaml:"endpoint" json:"endpoint"`
	Body     map[string]any `yaml:"body,omitempty" json:"body,omitempty"`
}

// Config is the full parsed config file: one server, shortcuts in file order.
type Config struct {
	Server    Server     `yaml:"server" json:"server"`
	Shortcuts []Shortcut `yaml:"shortcuts" json:"shortcuts"`
}

// Error reports a missing, malformed, or invalid config file.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// LookupError reports a trigger request for a shortcut name that is not
// declared in the config.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no shortcut named %q", e.Name)
}

var knownMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
	http.MethodHead:   true,
}

// DefaultPath resolves the config file location: HAKEYS_CONFIG env if set,
// otherwise config.yaml in the working directory.
func DefaultPath() string {
	if p := os.Getenv("HAKEYS_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}

// Load reads and validates a config file. YAML for .yaml/.yml, JSON
// otherwise; both reject unknown fields. Any failure is a *Error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	}
	if err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("parse error: %w", err)}
	}

	// Token may live in the environment (or a .env file) instead of on disk.
	if cfg.Server.Token == "" {
		cfg.Server.Token = os.Getenv("HAKEYS_TOKEN")
	}

	if err := cfg.validate(); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url is required")
	}
	if c.Server.Token == "" {
		return fmt.Errorf("server.token is required (config or HAKEYS_TOKEN)")
	}
	if len(c.Shortcuts) == 0 {
		return fmt.Errorf("at least one shortcut is required")
	}

	seen := make(map[string]bool, len(c.Shortcuts))
	for i := range c.Shortcuts {
		sc := &c.Shortcuts[i]
		switch {
		case sc.Name == "":
			return fmt.Errorf("shortcut %d: name is required", i)
		case sc.Hotkey == "":
			return fmt.Errorf("shortcut %q: hotkey is required", sc.Name)
		case sc.Method == "":
			return fmt.Errorf("shortcut %q: method is required", sc.Name)
		case sc.Endpoint == "":
			return fmt.Errorf("shortcut %q: endpoint is required", sc.Name)
		}
		sc.Method = strings.ToUpper(sc.Method)
		if !knownMethods[sc.Method] {
			return fmt.Errorf("shortcut %q: unknown method %q", sc.Name, sc.Method)
		}
		if !strings.HasPrefix(sc.Endpoint, "/") {
			return fmt.Errorf("shortcut %q: endpoint must start with /", sc.Name)
		}
		if seen[sc.Name] {
			return fmt.Errorf("duplicate shortcut name %q", sc.Name)
		}
		seen[sc.Name] = true
	}
	return nil
}

// Shortcut looks up a shortcut by its unique name.
func (c *Config) Shortcut(name string) (*Shortcut, error) {
	for i := range c.Shortcuts {
		if c.Shortcuts[i].Name == name {
			return &c.Shortcuts[i], nil
		}
	}
	return nil, &LookupError{Name: name}
}
