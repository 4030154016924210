package theming

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-authform/internal/config"
)

func acmeConfig() config.ThemeConfig {
	return config.ThemeConfig{
		Name:    "acme",
		Variant: "dark",
		Manifests: []config.ManifestConfig{
			config.DefaultManifest(),
			{
				Name:    "acme",
				Version: "1.0.0",
				Tokens:  map[string]string{"brand": "#123456", "radius": "4px"},
				Templates: map[string]string{
					"auth.input": "themes/acme/input.tmpl",
				},
				Assets: config.AssetFilesConfig{
					Prefix: "/assets/themes/acme",
					Files:  map[string]string{"stylesheet": "theme.css", "logo": "https://cdn.example.com/logo.svg"},
				},
				Variants: map[string]config.VariantConfig{
					"dark": {
						Tokens:    map[string]string{"brand": "#654321"},
						Templates: map[string]string{"auth.button": "themes/acme/dark/button.tmpl"},
						Assets: config.AssetFilesConfig{
							Files: map[string]string{"stylesheet": "theme.dark.css"},
						},
					},
				},
			},
		},
	}
}

func TestSelector_DefaultsAndLookup(t *testing.T) {
	selector, err := NewSelector(acmeConfig())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	sel, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select default: %v", err)
	}
	if sel.Theme != "acme" || sel.Variant != "dark" {
		t.Fatalf("expected acme/dark, got %s/%s", sel.Theme, sel.Variant)
	}

	sel, err = selector.Select(config.DefaultThemeName, "")
	if err != nil {
		t.Fatalf("select built-in: %v", err)
	}
	if sel.Variant != "" {
		t.Fatalf("default variant applies only to the default theme, got %q", sel.Variant)
	}

	if diff := cmp.Diff([]string{"acme", config.DefaultThemeName}, selector.Themes()); diff != "" {
		t.Fatalf("themes mismatch (-want +got):\n%s", diff)
	}
}

func TestSelector_UnknownThemeAndVariant(t *testing.T) {
	selector, err := NewSelector(acmeConfig())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	if _, err := selector.Select("missing", ""); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if _, err := selector.Select("acme", "neon"); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestNewSelector_RejectsMissingDefault(t *testing.T) {
	cfg := acmeConfig()
	cfg.Name = "ghost"
	if _, err := NewSelector(cfg); !errors.Is(err, ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
}

func TestRendererConfig_MergesVariantOverrides(t *testing.T) {
	selector, err := NewSelector(acmeConfig())
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	cfg, err := selector.Resolve("acme", "dark", map[string]string{
		"auth.input":    "fallback/input.tmpl",
		"auth.checkbox": "fallback/checkbox.tmpl",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	wantTokens := map[string]string{"brand": "#654321", "radius": "4px"}
	if diff := cmp.Diff(wantTokens, cfg.Tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	wantVars := map[string]string{"--brand": "#654321", "--radius": "4px"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	wantPartials := map[string]string{
		"auth.input":    "themes/acme/input.tmpl",
		"auth.button":   "themes/acme/dark/button.tmpl",
		"auth.checkbox": "fallback/checkbox.tmpl",
	}
	if diff := cmp.Diff(wantPartials, cfg.Partials); diff != "" {
		t.Fatalf("partials mismatch (-want +got):\n%s", diff)
	}

	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("logo"); got != "https://cdn.example.com/logo.svg" {
		t.Fatalf("absolute urls pass through, got %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("unknown assets resolve to empty, got %q", got)
	}
}

func TestRendererConfig_NilSelection(t *testing.T) {
	if cfg := RendererConfig(nil, nil); cfg != nil {
		t.Fatalf("expected nil config, got %+v", cfg)
	}
}
