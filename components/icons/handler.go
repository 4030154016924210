package icons

import (
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

const svgContentType = "image/svg+xml; charset=utf-8"

// Handler serves icons as image/svg+xml. The icon name is the last path
// segment of the request with its .svg suffix removed.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the handler from a pre-constructed Options value.
// The icon set is resolved once; a set that fails to load answers 500.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	set, setErr := resolveSet(opts)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}
		if setErr != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		name, ok := iconName(r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}
		markup, ok := set.Markup(name)
		if !ok {
			http.NotFound(w, r)
			return
		}

		header := w.Header()
		header.Set("Content-Type", svgContentType)
		header.Set("Content-Length", strconv.Itoa(len(markup)))
		header.Set("X-Content-Type-Options", "nosniff")
		if opts.CacheControl != "" {
			header.Set("Cache-Control", opts.CacheControl)
		}
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte(markup))
	})
}

func iconName(urlPath string) (string, bool) {
	base := path.Base(urlPath)
	if !strings.HasSuffix(base, ".svg") {
		return "", false
	}
	name := strings.TrimSuffix(base, ".svg")
	if name == "" || name == "." {
		return "", false
	}
	return name, true
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if c := httpErr.StatusCode(); c > 0 {
			code = c
		}
	}
	http.Error(w, http.StatusText(code), code)
}
