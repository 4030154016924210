// Package theming turns configured theme manifests into renderer
// configuration: merged tokens, CSS variables, partial overrides and asset
// URLs for the selected variant.
package theming

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-authform/internal/config"
)

// ErrUnknownTheme is returned when a selection names no registered manifest.
var ErrUnknownTheme = errors.New("theming: unknown theme")

// ErrUnknownVariant is returned when a manifest does not declare the variant.
var ErrUnknownVariant = errors.New("theming: unknown variant")

// Selector resolves theme selections against a fixed set of manifests.
// Empty names fall back to the configured defaults.
type Selector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector converts cfg.Manifests and registers each one with a go-theme
// registry, which rejects malformed manifests.
func NewSelector(cfg config.ThemeConfig) (*Selector, error) {
	registry := theme.NewRegistry()
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(cfg.Manifests)),
		defaultTheme:   strings.TrimSpace(cfg.Name),
		defaultVariant: strings.TrimSpace(cfg.Variant),
	}
	for _, mc := range cfg.Manifests {
		manifest := Manifest(mc)
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("theming: register %q: %w", mc.Name, err)
		}
		s.manifests[manifest.Name] = manifest
	}
	if s.defaultTheme != "" {
		if _, ok := s.manifests[s.defaultTheme]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, s.defaultTheme)
		}
	}
	return s, nil
}

// Select resolves name and variant. Query options are accepted for
// interface compatibility and ignored.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	if name == "" {
		return nil, fmt.Errorf("%w: no theme selected", ErrUnknownTheme)
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" && name == s.defaultTheme {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnknownVariant, name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Resolve selects name and variant and flattens the result.
func (s *Selector) Resolve(name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	sel, err := s.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return RendererConfig(sel, fallbacks), nil
}

// Themes lists the registered theme names.
func (s *Selector) Themes() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Manifest converts the YAML manifest into its go-theme form.
func Manifest(mc config.ManifestConfig) *theme.Manifest {
	manifest := &theme.Manifest{
		Name:      strings.TrimSpace(mc.Name),
		Version:   mc.Version,
		Tokens:    copyMap(mc.Tokens),
		Templates: copyMap(mc.Templates),
		Assets: theme.Assets{
			Prefix: mc.Assets.Prefix,
			Files:  copyMap(mc.Assets.Files),
		},
	}
	if len(mc.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(mc.Variants))
		for name, vc := range mc.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    copyMap(vc.Tokens),
				Templates: copyMap(vc.Templates),
				Assets: theme.Assets{
					Prefix: vc.Assets.Prefix,
					Files:  copyMap(vc.Assets.Files),
				},
			}
		}
	}
	return manifest
}

// RendererConfig flattens a selection. Variant tokens, templates and asset
// files override the manifest's; fallbacks fill partial keys neither sets.
// Every token becomes a CSS variable named "--" + key.
func RendererConfig(sel *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	manifest := sel.Manifest
	variant := manifest.Variants[sel.Variant]

	tokens := merge(manifest.Tokens, variant.Tokens)
	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	partials := merge(fallbacks, manifest.Templates)
	partials = merge(partials, variant.Templates)

	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}
	files := merge(manifest.Assets.Files, variant.Assets.Files)

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Tokens:   tokens,
		CSSVars:  cssVars,
		Partials: partials,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + path.Clean(strings.TrimLeft(file, "/"))
		},
	}
}

func merge(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}

func copyMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	return merge(nil, in)
}
