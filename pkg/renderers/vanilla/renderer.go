package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-authform/components/icons"
	"github.com/goliatone/go-authform/pkg/pages"
	"github.com/goliatone/go-authform/pkg/render"
	rendertemplate "github.com/goliatone/go-authform/pkg/render/template"
	gotemplate "github.com/goliatone/go-authform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-authform/pkg/renderers/vanilla/components"
)

const pageTemplate = "templates/page.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	icons            *icons.Set
	assetsPath       string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Files in dir
// take precedence over the embedded bundle, so a directory may override a
// subset of templates.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the built-in UI primitives.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithIcons replaces the icon set inlined into pages.
func WithIcons(set *icons.Set) Option {
	return func(cfg *config) {
		if set != nil {
			cfg.icons = set
		}
	}
}

// WithAssetsPath sets the URL prefix the stylesheet and runtime script are
// served under. Defaults to "/runtime/".
func WithAssetsPath(path string) Option {
	return func(cfg *config) {
		cfg.assetsPath = strings.TrimSpace(path)
	}
}

// Renderer produces complete HTML documents for pages.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	components *components.Registry
	icons      *icons.Set
	assetsPath string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		assetsPath: "/runtime/",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}
	if cfg.icons == nil {
		set, err := icons.Default()
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: load icons: %w", err)
		}
		cfg.icons = set
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOpts := []gotemplate.Option{
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		}
		if cfg.templatesDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(cfg.templatesDir))
		}
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:  renderer,
		components: cfg.components,
		icons:      cfg.icons,
		assetsPath: cfg.assetsPath,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Reset drops cached templates when the engine supports it.
func (r *Renderer) Reset() {
	if reloader, ok := r.templates.(rendertemplate.Reloader); ok {
		reloader.Reset()
	}
}

func (r *Renderer) Render(ctx context.Context, page pages.Page, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	data := components.ComponentData{Template: r.templates}
	if opts.Theme != nil {
		data.Partials = opts.Theme.Partials
	}
	pr := newPageRenderer(r.components, data, r.icons)

	header, err := pr.header(page)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: header: %w", err)
	}
	fields, err := pr.fields(page, opts)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	options, err := pr.options(page, opts)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: options: %w", err)
	}
	submit, err := pr.submit(page)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: submit: %w", err)
	}
	footer, err := pr.footer(page)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: footer: %w", err)
	}

	view := map[string]any{
		"page": map[string]any{
			"id":    page.ID,
			"route": page.Route,
			"title": page.Title,
		},
		"header":      header,
		"fields":      fields,
		"options":     options,
		"submit":      submit,
		"footer":      footer,
		"form_errors": opts.FormErrors,
		"classes":     chromeClasses(),
		"theme":       themeView(opts.Theme),
		"assets":      r.assets(pr.used, opts.Theme),
		"request_id":  opts.RequestID,
	}

	result, err := r.templates.RenderTemplate(pageTemplate, view)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) assets(used []string, cfg *theme.RendererConfig) map[string]any {
	stylesheets := []string{joinURL(r.assetsPath, StylesheetName)}
	extraStyles, scripts := r.components.Assets(used)
	for _, href := range extraStyles {
		stylesheets = append(stylesheets, joinURL(r.assetsPath, href))
	}
	if cfg != nil && cfg.AssetURL != nil {
		if href := cfg.AssetURL("stylesheet"); href != "" {
			stylesheets = append(stylesheets, href)
		}
	}

	scriptViews := make([]map[string]any, 0, len(scripts))
	for _, script := range scripts {
		scriptViews = append(scriptViews, map[string]any{
			"src":   joinURL(r.assetsPath, script.Name),
			"defer": script.Defer,
		})
	}
	return map[string]any{
		"stylesheets": stylesheets,
		"scripts":     scriptViews,
	}
}

func themeView(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":           cfg.Theme,
		"variant":        cfg.Variant,
		"css_vars_style": cssVarsStyle(cfg.CSSVars),
	}
}
