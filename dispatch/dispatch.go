package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"hakeys/config"
	"hakeys/log"
)

const requestTimeout = 15 * time.Second

// Result is the outcome of one dispatched shortcut. OK mirrors the HTTP
// status class for display; a non-2xx response is still a completed
// dispatch, never an error.
type Result struct {
	Status  int
	OK      bool
	Body    string
	Elapsed time.Duration
	Metrics *NetworkMetrics
}

// Dispatcher issues REST calls for shortcuts against one server.
type Dispatcher struct {
	server config.Server
	client *TracedClient
	out    io.Writer
}

func New(server config.Server) *Dispatcher {
	return &Dispatcher{
		server: server,
		client: NewTracedClient(requestTimeout),
		out:    os.Stdout,
	}
}

// SetOutput redirects the human-readable report (stdout by default).
func (d *Dispatcher) SetOutput(w io.Writer) { d.out = w }

// URL joins the server base URL and a shortcut endpoint.
func (d *Dispatcher) URL(endpoint string) string {
	return strings.TrimRight(d.server.BaseURL, "/") + endpoint
}

// Dispatch issues the HTTP call for one shortcut: method + endpoint under
// the server base URL, bearer-token auth, JSON body when present.
func (d *Dispatcher) Dispatch(ctx context.Context, sc *config.Shortcut) (*Result, error) {
	var bodyReader io.Reader
	if len(sc.Body) > 0 {
		payload, err := json.Marshal(sc.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal body for %q: %w", sc.Name, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, sc.Method, d.URL(sc.Endpoint), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", sc.Name, err)
	}
	req.Header.Set("Authorization", "Bearer "+d.server.Token)
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dispatch %q: %w", sc.Name, err)
	}

	return &Result{
		Status:  resp.StatusCode,
		OK:      resp.StatusCode >= 200 && resp.StatusCode < 300,
		Body:    string(resp.Body),
		Elapsed: resp.Metrics.Total,
		Metrics: resp.Metrics,
	}, nil
}

// Trigger dispatches a shortcut and reports the outcome on the dispatcher's
// output, tagged with the invocation source ("cli" or "hotkey"). Network
// errors are reported, not retried.
func (d *Dispatcher) Trigger(ctx context.Context, sc *config.Shortcut, source string) error {
	fmt.Fprintf(d.out, "[%s] Triggering '%s' -> %s %s\n", source, sc.Name, sc.Method, sc.Endpoint)

	res, err := d.Dispatch(ctx, sc)

	ev := log.DispatchEvent{
		Shortcut: sc.Name,
		Source:   source,
		Method:   sc.Method,
		Endpoint: sc.Endpoint,
		Err:      err,
	}
	if err != nil {
		log.Dispatch(ev)
		fmt.Fprintf(d.out, "[%s] %s: error %v\n", source, sc.Name, err)
		return err
	}

	ev.Status = res.Status
	ev.Elapsed = res.Elapsed
	if m := res.Metrics; m != nil {
		ev.DNSMs = float64(m.DNS.Microseconds()) / 1000
		ev.TLSMs = float64(m.TLS.Microseconds()) / 1000
		ev.TTFBMs = float64(m.TTFB.Microseconds()) / 1000
	}
	log.Dispatch(ev)

	verdict := "ok"
	if !res.OK {
		verdict = "fail"
	}
	fmt.Fprintf(d.out, "[%s] %s: %s (%d, %dms)\n", source, sc.Name, verdict, res.Status, res.Elapsed.Milliseconds())
	if res.Body != "" {
		fmt.Fprintf(d.out, "[%s] Response: %s\n", source, res.Body)
	}
	return nil
}
