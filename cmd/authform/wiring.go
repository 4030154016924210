package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	authform "github.com/goliatone/go-authform"
	"github.com/goliatone/go-authform/components/icons"
	"github.com/goliatone/go-authform/internal/config"
	"github.com/goliatone/go-authform/internal/theming"
	"github.com/goliatone/go-authform/pkg/render"
	"github.com/goliatone/go-authform/pkg/renderers/vanilla"
)

// iconOverrides reads every *.svg file in dir keyed by its base name.
func iconOverrides(dir string) (map[string]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.svg"))
	if err != nil {
		return nil, fmt.Errorf("icons: %w", err)
	}
	out := make(map[string]string, len(matches))
	for _, path := range matches {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("icons: read %s: %w", path, err)
		}
		out[strings.TrimSuffix(filepath.Base(path), ".svg")] = string(raw)
	}
	return out, nil
}

// iconSet merges overrides over the embedded icons.
func iconSet(overrides map[string]string) (*icons.Set, error) {
	set, err := icons.Default()
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return set, nil
	}
	return set.With(overrides)
}

// renderers builds the HTML and JSON renderers from configuration.
func renderers(cfg *config.Config, set *icons.Set) (*render.Registry, error) {
	options := []vanilla.Option{
		vanilla.WithAssetsPath(cfg.Assets.RuntimePath),
		vanilla.WithIcons(set),
	}
	if dir := strings.TrimSpace(cfg.Templates.Dir); dir != "" {
		options = append(options, vanilla.WithTemplatesDir(dir))
	}
	return authform.DefaultRenderers(options...)
}

// resetTemplates drops cached templates of every renderer that keeps them.
func resetTemplates(registry *render.Registry) {
	for _, name := range registry.List() {
		renderer, err := registry.Get(name)
		if err != nil {
			continue
		}
		if resetter, ok := renderer.(interface{ Reset() }); ok {
			resetter.Reset()
		}
	}
}

func themeSelector(cfg *config.Config) (*theming.Selector, error) {
	selector, err := theming.NewSelector(cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	return selector, nil
}
