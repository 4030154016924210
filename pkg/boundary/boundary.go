package boundary

import (
	"bytes"
	"fmt"
	"io"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Option configures a Boundary.
type Option func(*Boundary)

// WithReporter sets the observability sink.
func WithReporter(reporter Reporter) Option {
	return func(b *Boundary) {
		if reporter != nil {
			b.reporter = reporter
		}
	}
}

// WithFallback replaces the fallback view.
func WithFallback(fallback Fallback) Option {
	return func(b *Boundary) {
		if fallback != nil {
			b.fallback = fallback
		}
	}
}

// WithRoute labels incidents with the mounted route.
func WithRoute(route string) Option {
	return func(b *Boundary) {
		b.route = route
	}
}

// WithIncidentIDs overrides incident id generation.
func WithIncidentIDs(next func() string) Option {
	return func(b *Boundary) {
		if next != nil {
			b.newID = next
		}
	}
}

// WithTripHook is called once, after the boundary trips and the incident is
// reported.
func WithTripHook(hook func(err error, info Info)) Option {
	return func(b *Boundary) {
		b.onTrip = hook
	}
}

// Boundary isolates render failures for one mount.
type Boundary struct {
	mu       sync.Mutex
	hasError bool
	incident Info

	reporter Reporter
	fallback Fallback
	route    string
	newID    func() string
	now      func() time.Time
	onTrip   func(err error, info Info)
}

// New mounts a boundary in its untripped state.
func New(options ...Option) *Boundary {
	b := &Boundary{
		reporter: ReporterFunc(func(error, Info) {}),
		fallback: HTMLFallback,
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// HasError reports whether the boundary has tripped.
func (b *Boundary) HasError() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasError
}

// Incident returns the diagnostic context of the failure that tripped the
// boundary.
func (b *Boundary) Incident() (Info, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.incident, b.hasError
}

// Render runs render into a buffer and copies the output to w on success. A
// panic or error raised by render trips the boundary, reports the incident
// and writes the fallback instead; the returned error is a *RenderError. Once
// tripped, Render writes the fallback without calling render and returns nil.
func (b *Boundary) Render(w io.Writer, render func(io.Writer) error) error {
	if b.HasError() {
		return b.fallback(w)
	}

	var buf bytes.Buffer
	if renderErr := b.capture(func() error { return render(&buf) }); renderErr != nil {
		if err := b.fallback(w); err != nil {
			return fmt.Errorf("boundary: write fallback: %w", err)
		}
		return renderErr
	}

	_, err := buf.WriteTo(w)
	return err
}

// WriteFallback writes the fallback view.
func (b *Boundary) WriteFallback(w io.Writer) error {
	return b.fallback(w)
}

// capture runs fn, converting panics and errors into a tripped boundary.
func (b *Boundary) capture(fn func() error) (renderErr *RenderError) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		if isAbort(recovered) {
			panic(recovered)
		}
		renderErr = newPanicError(recovered, debug.Stack())
		b.trip(renderErr)
	}()

	if err := fn(); err != nil {
		renderErr = &RenderError{Err: err, Stack: debug.Stack()}
		b.trip(renderErr)
	}
	return renderErr
}

func (b *Boundary) trip(renderErr *RenderError) {
	b.mu.Lock()
	if b.hasError {
		b.mu.Unlock()
		return
	}
	b.hasError = true
	b.incident = Info{
		IncidentID: b.newID(),
		Route:      b.route,
		Stack:      string(renderErr.Stack),
		OccurredAt: b.now(),
	}
	info := b.incident
	b.mu.Unlock()

	b.reporter.Report(renderErr, info)
	if b.onTrip != nil {
		b.onTrip(renderErr, info)
	}
}
