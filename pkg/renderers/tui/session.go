package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-authform/pkg/boundary"
	"github.com/goliatone/go-authform/pkg/form"
	"github.com/goliatone/go-authform/pkg/pages"
	"github.com/goliatone/go-authform/pkg/schema"
)

const defaultMaxAttempts = 3

// Session drives one page through terminal prompts. Each Run is a mount: it
// gets its own controller and its own boundary.
type Session struct {
	driver      PromptDriver
	theme       Theme
	submitter   form.Submitter
	logger      *zap.Logger
	reporter    boundary.Reporter
	maxAttempts int
	chrome      ChromeFunc
}

// Outcome is what a finished session produced.
type Outcome struct {
	Result   schema.Result
	Remember bool
	Attempts int
}

// New constructs a session. Without WithPromptDriver the survey driver is
// used against the process terminal.
func New(options ...Option) *Session {
	s := &Session{
		logger:      zap.NewNop(),
		maxAttempts: defaultMaxAttempts,
		theme:       DefaultTheme(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	if s.reporter == nil {
		s.reporter = boundary.NewZapReporter(s.logger)
	}
	if s.submitter == nil {
		s.submitter = form.NewLogSubmitter(s.logger)
	}
	if s.chrome == nil {
		s.chrome = s.writeChrome
	}
	return s
}

// Run prompts for every input of page until the submission is valid or the
// attempts run out. Masked inputs use a password prompt. Values of valid
// fields are offered as defaults on the next attempt; masked values are
// asked again.
func (s *Session) Run(ctx context.Context, page pages.Page) (Outcome, error) {
	if page.Schema == nil {
		return Outcome{}, fmt.Errorf("tui: page %q has no schema", page.ID)
	}

	b := boundary.New(
		boundary.WithReporter(s.reporter),
		boundary.WithFallback(boundary.TextFallback),
		boundary.WithRoute("tui "+page.Route),
	)
	ctrl := form.NewController(page.Schema,
		form.WithSubmitter(s.submitter),
		form.WithDispatch(form.Synchronous),
		form.WithSubmitErrorHook(func(name string, err error) {
			s.logger.Warn("submission failed", zap.String("form", name), zap.Error(err))
		}),
	)

	if err := s.show(ctx, b, func(w io.Writer) error { return s.chrome(w, page) }); err != nil {
		return Outcome{}, err
	}

	var outcome Outcome
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		outcome.Attempts = attempt
		if err := s.promptInputs(ctx, page, ctrl); err != nil {
			return outcome, err
		}
		if page.RememberMe {
			remember, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Remember me", Default: outcome.Remember})
			if err != nil {
				return outcome, err
			}
			outcome.Remember = remember
		}

		outcome.Result = ctrl.Submit(ctx)
		if outcome.Result.Valid() {
			return outcome, nil
		}
		if err := s.show(ctx, b, func(w io.Writer) error {
			return s.writeErrors(w, page, outcome.Result)
		}); err != nil {
			return outcome, err
		}
	}
	return outcome, ErrAttemptsExhausted
}

func (s *Session) promptInputs(ctx context.Context, page pages.Page, ctrl *form.Controller) error {
	for _, input := range page.Inputs {
		binding, err := ctrl.Binding(input.Name)
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}

		cfg := InputConfig{Message: input.Label, Help: input.Placeholder}
		var value string
		if binding.Masked() {
			value, err = s.driver.Password(ctx, cfg)
		} else {
			if binding.Error() == "" {
				cfg.Default = binding.Value()
			}
			value, err = s.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}
		binding.OnChange(value)
	}
	return nil
}

// show renders through the boundary and prints the result. A tripped
// boundary prints the fallback and ends the session.
func (s *Session) show(ctx context.Context, b *boundary.Boundary, render func(io.Writer) error) error {
	var buf bytes.Buffer
	renderErr := b.Render(&buf, render)
	var target *boundary.RenderError
	if renderErr != nil && !errors.As(renderErr, &target) {
		return fmt.Errorf("tui: %w", renderErr)
	}

	if text := strings.TrimRight(buf.String(), "\n"); text != "" {
		if err := s.driver.Info(ctx, text); err != nil {
			return err
		}
	}
	if b.HasError() {
		return ErrUnavailable
	}
	return nil
}

func (s *Session) writeErrors(w io.Writer, page pages.Page, result schema.Result) error {
	for _, input := range page.Inputs {
		message := result.Error(input.Name)
		if message == "" {
			continue
		}
		line := fmt.Sprintf("%s%s: %s", s.theme.ErrorPrefix, input.Label, message)
		if _, err := fmt.Fprintln(w, s.theme.Error.Render(line)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) writeChrome(w io.Writer, page pages.Page) error {
	lines := []string{s.theme.Heading.Render(page.Heading)}
	if page.Subtitle != "" {
		lines = append(lines, s.theme.Muted.Render(page.Subtitle))
	}
	if page.Footer.Text != "" {
		footer := fmt.Sprintf("%s %s (%s)", page.Footer.Text, page.Footer.Link.Label, page.Footer.Link.Href)
		lines = append(lines, s.theme.Muted.Render(footer))
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
