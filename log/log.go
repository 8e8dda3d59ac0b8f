package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logMu   sync.Mutex
	logger  zerolog.Logger
	logFile *os.File
	dir     string
)

func init() {
	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	}
	logger = zerolog.New(console).With().Timestamp().Logger()
}

// ResolveDir picks the log directory: flag value first, then the
// HAKEYS_LOG_PATH environment variable, then the OS cache dir.
func ResolveDir(flagPath string) (string, error) {
	for _, p := range []string{flagPath, os.Getenv("HAKEYS_LOG_PATH")} {
		if p == "" {
			continue
		}
		if filepath.IsAbs(p) {
			return p, nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(wd, p), nil
	}

	cache, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cache, "hakeys"), nil
}

func SetDir(d string) {
	logMu.Lock()
	dir = d
	logMu.Unlock()
}

func Dir() string {
	logMu.Lock()
	defer logMu.Unlock()
	return dir
}

// InitFile redirects logging to hakeys_log.txt in the configured directory.
// Used by the background listener; foreground runs keep the stderr console.
func InitFile() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, "hakeys_log.txt")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logFile = f

	console := zerolog.ConsoleWriter{
		Out:        f,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	logger = zerolog.New(console).With().Timestamp().Int("pid", os.Getpid()).Logger()
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func Info(msg string)                   { logger.Info().Msg(msg) }
func Infof(format string, args ...any)  { logger.Info().Msg(fmt.Sprintf(format, args...)) }
func Warn(msg string)                   { logger.Warn().Msg(msg) }
func Warnf(format string, args ...any)  { logger.Warn().Msg(fmt.Sprintf(format, args...)) }
func Error(msg string)                  { logger.Error().Msg(msg) }
func Errorf(format string, args ...any) { logger.Error().Msg(fmt.Sprintf(format, args...)) }

// DispatchEvent is one completed (or failed) shortcut dispatch.
type DispatchEvent struct {
	Shortcut string
	Source   string
	Method   string
	Endpoint string
	Status   int
	Elapsed  time.Duration
	DNSMs    float64
	TLSMs    float64
	TTFBMs   float64
	Err      error
}

// Dispatch writes one structured line per dispatch.
func Dispatch(ev DispatchEvent) {
	var e *zerolog.Event
	if ev.Err != nil {
		e = logger.Error().Err(ev.Err)
	} else {
		e = logger.Info()
	}
	e = e.Str("shortcut", ev.Shortcut).
		Str("source", ev.Source).
		Str("method", ev.Method).
		Str("endpoint", ev.Endpoint)
	if ev.Err == nil {
		e = e.Int("status", ev.Status).
			Float64("elapsed_ms", float64(ev.Elapsed.Milliseconds()))
		if ev.DNSMs > 0 {
			e = e.Float64("dns_ms", ev.DNSMs)
		}
		if ev.TLSMs > 0 {
			e = e.Float64("tls_ms", ev.TLSMs)
		}
		if ev.TTFBMs > 0 {
			e = e.Float64("ttfb_ms", ev.TTFBMs)
		}
	}
	e.Msg("dispatch")
}
