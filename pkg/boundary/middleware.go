package boundary

import (
	"bytes"
	"context"
	"errors"
	"net/http"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying b.
func NewContext(ctx context.Context, b *Boundary) context.Context {
	return context.WithValue(ctx, contextKey{}, b)
}

// FromContext returns the boundary mounted for the request, if any.
func FromContext(ctx context.Context) (*Boundary, bool) {
	if ctx == nil {
		return nil, false
	}
	b, ok := ctx.Value(contextKey{}).(*Boundary)
	return b, ok && b != nil
}

// Middleware mounts a fresh Boundary for every request. The wrapped handler
// writes into a buffer; when it panics the buffer is discarded and the
// fallback is served with status 500. Options apply to every boundary; the
// route is set from the request.
func Middleware(options ...Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			opts := make([]Option, 0, len(options)+1)
			opts = append(opts, options...)
			opts = append(opts, WithRoute(r.Method+" "+r.URL.Path))
			b := New(opts...)

			buffered := newResponseBuffer()
			req := r.WithContext(NewContext(r.Context(), b))

			renderErr := b.capture(func() error {
				next.ServeHTTP(buffered, req)
				return nil
			})
			if renderErr != nil {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Header().Set("Cache-Control", "no-store")
				w.WriteHeader(http.StatusInternalServerError)
				_ = b.WriteFallback(w)
				return
			}
			buffered.flush(w)
		})
	}
}

type responseBuffer struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{header: make(http.Header)}
}

func (r *responseBuffer) Header() http.Header {
	return r.header
}

func (r *responseBuffer) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
}

func (r *responseBuffer) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.body.Write(p)
}

func (r *responseBuffer) flush(w http.ResponseWriter) {
	dst := w.Header()
	for key, values := range r.header {
		dst[key] = values
	}
	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = r.body.WriteTo(w)
}

func isAbort(value any) bool {
	err, ok := value.(error)
	return ok && errors.Is(err, http.ErrAbortHandler)
}
