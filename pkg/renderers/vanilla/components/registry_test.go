package components

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultRegistry_Names(t *testing.T) {
	want := []string{NameAnchor, NameButton, NameCheckbox, NameHeading, NameInput, NamePassword, NameText}
	if diff := cmp.Diff(want, NewDefaultRegistry().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_AssetsDeduplicated(t *testing.T) {
	registry := NewDefaultRegistry()
	_, scripts := registry.Assets([]string{NameInput, NamePassword, NamePassword, "unknown"})
	if diff := cmp.Diff([]Script{{Name: RuntimeScript, Defer: true}}, scripts); diff != "" {
		t.Fatalf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	base := NewDefaultRegistry()
	clone := base.Clone()
	clone.MustRegister("custom", Descriptor{Renderer: func(buf *bytes.Buffer, _ Props, _ ComponentData) error {
		buf.WriteString("custom")
		return nil
	}})

	if _, ok := base.Descriptor("custom"); ok {
		t.Fatalf("base registry should not see clone registrations")
	}
	out, err := clone.Render("CUSTOM", nil, ComponentData{})
	if err != nil || out != "custom" {
		t.Fatalf("unexpected render result %q, %v", out, err)
	}
}

func TestRegistry_RejectsInvalidDescriptors(t *testing.T) {
	registry := New()
	if err := registry.Register(" ", Descriptor{Renderer: func(*bytes.Buffer, Props, ComponentData) error { return nil }}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := registry.Register("x", Descriptor{}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
	if _, err := registry.Render("missing", nil, ComponentData{}); err == nil {
		t.Fatalf("expected error for unknown component")
	}
}

func TestTemplateComponent_RequiresEngine(t *testing.T) {
	if _, err := NewDefaultRegistry().Render(NameButton, Props{"label": "x"}, ComponentData{}); err == nil {
		t.Fatalf("expected error without template renderer")
	}
}
