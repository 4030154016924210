package icons

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed data/*.svg
var dataFS embed.FS

const dataDir = "data"

// Set is an immutable collection of sanitized icons keyed by name.
type Set struct {
	markup map[string]string
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
	defaultErr  error
)

// Default returns the embedded icon set. It is loaded once per process.
func Default() (*Set, error) {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = Load(dataFS, dataDir)
	})
	return defaultSet, defaultErr
}

// Load reads every *.svg file in dir of fsys. The file name without extension
// becomes the icon name.
func Load(fsys fs.FS, dir string) (*Set, error) {
	if fsys == nil {
		return nil, fmt.Errorf("icons: missing filesystem")
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("icons: read %s: %w", dir, err)
	}
	raw := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".svg" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("icons: read %s: %w", entry.Name(), err)
		}
		raw[strings.TrimSuffix(entry.Name(), ".svg")] = string(data)
	}
	return FromMarkup(raw)
}

// FromMarkup builds a set from raw SVG strings. An icon whose markup is empty
// after sanitizing is rejected.
func FromMarkup(raw map[string]string) (*Set, error) {
	set := &Set{markup: make(map[string]string, len(raw))}
	for name, markup := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("icons: empty icon name")
		}
		clean := Sanitize(markup)
		if clean == "" {
			return nil, fmt.Errorf("icons: icon %q has no usable markup", name)
		}
		set.markup[name] = clean
	}
	return set, nil
}

// With returns a copy of s where the icons in overrides replace or extend the
// existing ones.
func (s *Set) With(overrides map[string]string) (*Set, error) {
	extra, err := FromMarkup(overrides)
	if err != nil {
		return nil, err
	}
	merged := &Set{markup: make(map[string]string, s.Len()+extra.Len())}
	if s != nil {
		for name, markup := range s.markup {
			merged.markup[name] = markup
		}
	}
	for name, markup := range extra.markup {
		merged.markup[name] = markup
	}
	return merged, nil
}

// Markup returns the sanitized SVG for name.
func (s *Set) Markup(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	markup, ok := s.markup[name]
	return markup, ok
}

// Names lists the icons in lexical order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.markup))
	for name := range s.markup {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.markup)
}
