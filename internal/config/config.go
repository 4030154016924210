// Package config loads the authform configuration from YAML. Values missing
// from the file keep their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete authform configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Templates TemplatesConfig `yaml:"templates"`
	Assets    AssetsConfig    `yaml:"assets"`
	Theme     ThemeConfig     `yaml:"theme"`
	Prompt    PromptConfig    `yaml:"prompt"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownGrace     time.Duration `yaml:"shutdown_grace"`
	// Metrics toggles the /metrics endpoint.
	Metrics bool `yaml:"metrics"`
}

// LoggingConfig selects the zap preset and level.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// TemplatesConfig points the HTML renderer at templates on disk. Dir
// overrides the embedded templates file by file; Watch reloads them on change.
type TemplatesConfig struct {
	Dir      string        `yaml:"dir"`
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

// AssetsConfig sets the public paths static assets are served from.
type AssetsConfig struct {
	RuntimePath string `yaml:"runtime_path"`
	IconsPath   string `yaml:"icons_path"`
	// IconsDir, when set, adds or replaces icons with the *.svg files it holds.
	IconsDir string `yaml:"icons_dir"`
}

// ThemeConfig selects a theme and variant among Manifests.
type ThemeConfig struct {
	Name      string           `yaml:"name"`
	Variant   string           `yaml:"variant"`
	Manifests []ManifestConfig `yaml:"manifests"`
}

// ManifestConfig is the YAML form of a theme manifest.
type ManifestConfig struct {
	Name      string                   `yaml:"name"`
	Version   string                   `yaml:"version"`
	Tokens    map[string]string        `yaml:"tokens"`
	Templates map[string]string        `yaml:"templates"`
	Assets    AssetFilesConfig         `yaml:"assets"`
	Variants  map[string]VariantConfig `yaml:"variants"`
}

// VariantConfig overrides parts of a manifest.
type VariantConfig struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    AssetFilesConfig  `yaml:"assets"`
}

// AssetFilesConfig maps logical asset keys to files below Prefix.
type AssetFilesConfig struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

// PromptConfig configures the terminal session.
type PromptConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// DefaultThemeName is the built-in theme.
const DefaultThemeName = "authform"

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownGrace:     10 * time.Second,
			Metrics:           true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Templates: TemplatesConfig{
			Debounce: 200 * time.Millisecond,
		},
		Assets: AssetsConfig{
			RuntimePath: "/runtime/",
			IconsPath:   "/assets/icons",
		},
		Theme: ThemeConfig{
			Name:      DefaultThemeName,
			Variant:   "light",
			Manifests: []ManifestConfig{DefaultManifest()},
		},
		Prompt: PromptConfig{
			MaxAttempts: 3,
		},
	}
}

// DefaultManifest describes the built-in theme with a light and a dark
// variant.
func DefaultManifest() ManifestConfig {
	return ManifestConfig{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"af-primary":       "#4f46e5",
			"af-primary-hover": "#4338ca",
			"af-surface":       "#ffffff",
			"af-background":    "#f3f4f6",
			"af-text":          "#111827",
			"af-muted":         "#6b7280",
			"af-error":         "#dc2626",
			"af-radius":        "0.5rem",
		},
		Variants: map[string]VariantConfig{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"af-surface":    "#1f2937",
					"af-background": "#111827",
					"af-text":       "#f9fafb",
					"af-muted":      "#9ca3af",
				},
			},
		},
	}
}

// Load reads path and merges it over Default. An empty path returns the
// defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := cfg.Decode(data); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode unmarshals YAML over the receiver. Unknown keys are rejected. A
// theme.manifests list replaces the built-in manifests.
func (c *Config) Decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server.addr is required")
	}
	if c.Server.ShutdownGrace < 0 {
		problems = append(problems, "server.shutdown_grace must not be negative")
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Templates.Watch && strings.TrimSpace(c.Templates.Dir) == "" {
		problems = append(problems, "templates.watch requires templates.dir")
	}
	if c.Templates.Debounce < 0 {
		problems = append(problems, "templates.debounce must not be negative")
	}
	if !strings.HasPrefix(c.Assets.RuntimePath, "/") {
		problems = append(problems, "assets.runtime_path must start with /")
	}
	if !strings.HasPrefix(c.Assets.IconsPath, "/") {
		problems = append(problems, "assets.icons_path must start with /")
	}
	if c.Prompt.MaxAttempts < 1 {
		problems = append(problems, "prompt.max_attempts must be at least 1")
	}
	problems = append(problems, c.Theme.problems()...)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (t ThemeConfig) problems() []string {
	var problems []string
	seen := make(map[string]struct{}, len(t.Manifests))
	for i, manifest := range t.Manifests {
		name := strings.TrimSpace(manifest.Name)
		if name == "" {
			problems = append(problems, fmt.Sprintf("theme.manifests[%d].name is required", i))
			continue
		}
		if _, dup := seen[name]; dup {
			problems = append(problems, fmt.Sprintf("theme.manifests: duplicate theme %q", name))
		}
		seen[name] = struct{}{}
	}
	if t.Name == "" {
		return problems
	}
	manifest, ok := t.Manifest(t.Name)
	if !ok {
		return append(problems, fmt.Sprintf("theme.name %q has no manifest", t.Name))
	}
	if t.Variant != "" {
		if _, ok := manifest.Variants[t.Variant]; !ok {
			problems = append(problems, fmt.Sprintf("theme.variant %q is not declared by %q", t.Variant, t.Name))
		}
	}
	return problems
}

// Manifest looks up a configured manifest by name.
func (t ThemeConfig) Manifest(name string) (ManifestConfig, bool) {
	for _, manifest := range t.Manifests {
		if manifest.Name == name {
			return manifest, true
		}
	}
	return ManifestConfig{}, false
}
