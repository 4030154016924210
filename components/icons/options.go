package icons

import "net/http"

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath    string
	CacheControl string
	Guard        GuardFunc

	// Icons overrides or extends the embedded set. Markup is sanitized before use.
	Icons map[string]string
}

type OptionFn func(*Options)

const (
	defaultRoutePath    = "/assets/icons"
	defaultCacheControl = "public, max-age=86400"
)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		CacheControl: defaultCacheControl,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.Icons != nil {
		icons := make(map[string]string, len(opts.Icons))
		for name, markup := range opts.Icons {
			icons[name] = markup
		}
		opts.Icons = icons
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithCacheControl sets the Cache-Control header value. An empty value omits
// the header.
func WithCacheControl(value string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CacheControl = value
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithIcons(icons map[string]string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Icons = icons
	}
}

// resolveSet returns the embedded set merged with any overrides.
func resolveSet(opts Options) (*Set, error) {
	set, err := Default()
	if err != nil {
		return nil, err
	}
	if len(opts.Icons) == 0 {
		return set, nil
	}
	return set.With(opts.Icons)
}
