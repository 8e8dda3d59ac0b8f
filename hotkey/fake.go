package hotkey

import "context"

// Fake is an in-memory backend for tests: registrations are recorded and
// fired by hand.
type Fake struct {
	callbacks map[string]func()
	closed    bool
}

func NewFake() *Fake {
	return &Fake{callbacks: make(map[string]func())}
}

func (f *Fake) Register(combo Combo, fn func()) error {
	f.callbacks[combo.String()] = fn
	return nil
}

func (f *Fake) Listen(ctx context.Context) error {
	<-ctx.Done()
	return f.Close()
}

func (f *Fake) Close() error {
	f.closed = true
	return nil
}

func (f *Fake) Closed() bool { return f.closed }

// Fire invokes the callback registered for a combo string, if any,
// synchronously like a real backend's listener goroutine would.
func (f *Fake) Fire(combo string) bool {
	fn, ok := f.callbacks[combo]
	if ok {
		fn()
	}
	return ok
}

func (f *Fake) Registered() []string {
	names := make([]string, 0, len(f.callbacks))
	for name := range f.callbacks {
		names = append(names, name)
	}
	return names
}
