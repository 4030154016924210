package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Prompt.MaxAttempts)
	assert.Equal(t, DefaultThemeName, cfg.Theme.Name)

	manifest, ok := cfg.Theme.Manifest(DefaultThemeName)
	require.True(t, ok)
	assert.Contains(t, manifest.Variants, "dark")
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
  shutdown_grace: 3s
logging:
  level: debug
  development: true
theme:
  variant: dark
prompt:
  max_attempts: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownGrace)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout, "unset values keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "dark", cfg.Theme.Variant)
	assert.Equal(t, 5, cfg.Prompt.MaxAttempts)
	assert.Equal(t, "/runtime/", cfg.Assets.RuntimePath)
}

func TestLoad_CustomManifestsReplaceBuiltIn(t *testing.T) {
	path := writeConfig(t, `
theme:
  name: acme
  variant: ""
  manifests:
    - name: acme
      tokens:
        brand: "#123456"
      assets:
        prefix: /assets/themes/acme
        files:
          stylesheet: theme.css
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Theme.Manifests, 1)
	assert.Equal(t, "/assets/themes/acme", cfg.Theme.Manifests[0].Assets.Prefix)
	_, ok := cfg.Theme.Manifest(DefaultThemeName)
	assert.False(t, ok)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 80\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestLoad_CommentOnlyFile(t *testing.T) {
	path := writeConfig(t, "# nothing here\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = ""
	cfg.Logging.Level = "loud"
	cfg.Templates.Watch = true
	cfg.Assets.IconsPath = "icons"
	cfg.Prompt.MaxAttempts = 0
	cfg.Theme.Variant = "neon"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	for _, fragment := range []string{
		"server.addr",
		"logging.level",
		"templates.watch requires templates.dir",
		"assets.icons_path",
		"prompt.max_attempts",
		`theme.variant "neon"`,
	} {
		assert.Contains(t, err.Error(), fragment)
	}
}

func TestValidate_ThemeManifests(t *testing.T) {
	cfg := Default()
	cfg.Theme.Manifests = append(cfg.Theme.Manifests, DefaultManifest(), ManifestConfig{})
	cfg.Theme.Name = "missing"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "duplicate theme")
	assert.Contains(t, err.Error(), "theme.manifests[2].name is required")
	assert.Contains(t, err.Error(), `theme.name "missing" has no manifest`)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{"": "info", "DEBUG": "debug", " warning ": "warn", "error": "error"}
	for raw, want := range cases {
		got, err := ParseLevel(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "authform.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
