package render

import (
	"context"

	"github.com/goliatone/go-authform/pkg/pages"
)

// Renderer converts a page into a byte representation (HTML, JSON, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page pages.Page, options RenderOptions) ([]byte, error)
}
