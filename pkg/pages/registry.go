package pages

import (
	"fmt"
	"sync"
)

// Registry stores pages by id, keeping registration order for listings.
type Registry struct {
	mu    sync.RWMutex
	order []string
	pages map[string]Page
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]Page)}
}

// Default returns a registry holding the sign-in and sign-up pages.
func Default() *Registry {
	registry := NewRegistry()
	registry.MustRegister(SignIn())
	registry.MustRegister(SignUp())
	return registry
}

// Register validates and adds page. Duplicate ids or routes are rejected.
func (r *Registry) Register(page Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pages[page.ID]; exists {
		return fmt.Errorf("pages: page %q already registered", page.ID)
	}
	for _, existing := range r.pages {
		if existing.Route == page.Route {
			return fmt.Errorf("pages: route %q already bound to %q", page.Route, existing.ID)
		}
	}
	r.pages[page.ID] = page
	r.order = append(r.order, page.ID)
	return nil
}

// MustRegister panics when Register fails.
func (r *Registry) MustRegister(page Page) {
	if err := r.Register(page); err != nil {
		panic(err)
	}
}

// Get returns the page registered under id.
func (r *Registry) Get(id string) (Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	page, ok := r.pages[id]
	if !ok {
		return Page{}, fmt.Errorf("pages: page %q not found", id)
	}
	return page, nil
}

// All returns the pages in registration order.
func (r *Registry) All() []Page {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Page, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.pages[id])
	}
	return out
}
