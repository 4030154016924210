package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/goliatone/go-authform/pkg/boundary"
	"github.com/goliatone/go-authform/pkg/form"
	"github.com/goliatone/go-authform/pkg/pages"
)

// Theme captures formatting hints for session output. Styles degrade to
// plain text when the output is not a color terminal.
type Theme struct {
	ErrorPrefix string
	Heading     lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
}

// DefaultTheme is the palette sessions use unless WithTheme replaces it.
func DefaultTheme() Theme {
	return Theme{
		ErrorPrefix: "✗ ",
		Heading:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#f2f2f2"}),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#4b5563", Dark: "#9ca3af"}),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
	}
}

// ChromeFunc writes the page chrome (heading, subtitle, footer) shown before
// the prompts.
type ChromeFunc func(w io.Writer, page pages.Page) error

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithSubmitter sets the destination of valid payloads.
func WithSubmitter(submitter form.Submitter) Option {
	return func(s *Session) {
		s.submitter = submitter
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithReporter sets the boundary's observability sink.
func WithReporter(reporter boundary.Reporter) Option {
	return func(s *Session) {
		s.reporter = reporter
	}
}

// WithMaxAttempts bounds how many times the form is offered. Values below one
// are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithChrome replaces the default page chrome writer.
func WithChrome(chrome ChromeFunc) Option {
	return func(s *Session) {
		if chrome != nil {
			s.chrome = chrome
		}
	}
}
