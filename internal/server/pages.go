package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-authform/internal/metrics"
	"github.com/goliatone/go-authform/internal/theming"
	"github.com/goliatone/go-authform/pkg/boundary"
	"github.com/goliatone/go-authform/pkg/form"
	"github.com/goliatone/go-authform/pkg/pages"
	"github.com/goliatone/go-authform/pkg/render"
)

func (s *Server) viewPage(page pages.Page) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		opts := render.RenderOptions{}
		s.respond(w, r, page, http.StatusOK, opts)
	})
}

func (s *Server) submitPage(page pages.Page) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, err := decodeSubmission(w, r)
		if err != nil {
			s.logger.Debug("malformed submission", zap.String("form", page.ID), zap.Error(err))
			http.Error(w, "malformed submission", http.StatusBadRequest)
			return
		}

		if len(sub.problems) > 0 {
			mapped := render.MapErrors(page, sub.problems)
			s.metrics.Submission(page.ID, metrics.OutcomeInvalid)
			s.metrics.ValidationErrors(page.ID, mapped.Fields)
			opts := render.RenderOptions{
				Values:     page.Schema.Normalize(sub.state),
				Errors:     mapped.Fields,
				FormErrors: mapped.Form,
				Remember:   sub.remember,
			}
			s.respond(w, r, page, http.StatusUnprocessableEntity, opts)
			return
		}

		ctrl := s.controller(r.Context(), page)
		ctrl.Fill(sub.state)
		result := ctrl.Submit(r.Context())

		if !result.Valid() {
			s.metrics.Submission(page.ID, metrics.OutcomeInvalid)
			s.metrics.ValidationErrors(page.ID, result.Errors)
			opts := render.FromResult(ctrl.Snapshot(), result)
			opts.Remember = sub.remember
			s.respond(w, r, page, http.StatusUnprocessableEntity, opts)
			return
		}

		s.metrics.Submission(page.ID, metrics.OutcomeSubmitted)
		if s.wantsJSON(r) {
			writeJSON(w, http.StatusAccepted, map[string]any{
				"status":    "accepted",
				"form":      page.ID,
				"requestId": requestIDFrom(r.Context()),
			})
			return
		}
		http.Redirect(w, r, page.Route, http.StatusSeeOther)
	})
}

// controller mounts a controller for one request. Submitter failures are
// logged and counted; they never reach the client.
func (s *Server) controller(ctx context.Context, page pages.Page) *form.Controller {
	logger := s.logger.With(zap.String("form", page.ID), zap.String("request_id", requestIDFrom(ctx)))
	options := []form.Option{
		form.WithSubmitter(s.submitter),
		form.WithSubmitErrorHook(func(name string, err error) {
			s.metrics.Submission(name, metrics.OutcomeFailed)
			logger.Warn("submission failed", zap.Error(err))
		}),
		form.WithTransitionHook(func(from, to form.Phase) {
			logger.Debug("form transition", zap.Stringer("from", from), zap.Stringer("to", to))
		}),
	}
	if s.dispatch != nil {
		options = append(options, form.WithDispatch(s.dispatch))
	}
	return form.NewController(page.Schema, options...)
}

// respond renders page through the request's boundary. A failed render is
// replaced by the fallback and answered with status 500.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, page pages.Page, status int, opts render.RenderOptions) {
	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		s.logger.Error("negotiate renderer", zap.Error(err))
		http.Error(w, "no renderer available", http.StatusNotAcceptable)
		return
	}

	opts.RequestID = requestIDFrom(r.Context())
	opts.Theme = s.resolveTheme(r)

	b, ok := boundary.FromContext(r.Context())
	if !ok {
		b = boundary.New(append(s.boundaryOptions(), boundary.WithRoute(r.Method+" "+r.URL.Path))...)
	}

	var buf bytes.Buffer
	renderErr := b.Render(&buf, func(out io.Writer) error {
		body, err := renderer.Render(r.Context(), page, opts)
		if err != nil {
			return err
		}
		_, err = out.Write(body)
		return err
	})

	header := w.Header()
	header.Set("Cache-Control", "no-store")
	header.Set("Vary", "Accept")
	if renderErr != nil {
		var re *boundary.RenderError
		if !errors.As(renderErr, &re) {
			s.logger.Error("render page", zap.String("page", page.ID), zap.Error(renderErr))
		}
		header.Set("Content-Type", "text/html; charset=utf-8")
		status = http.StatusInternalServerError
	} else {
		header.Set("Content-Type", renderer.ContentType())
	}
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(buf.Bytes())
}

// resolveTheme applies the "theme" and "variant" query parameters over the
// configured defaults. Unknown selections fall back to the defaults.
func (s *Server) resolveTheme(r *http.Request) *theme.RendererConfig {
	if s.themes == nil {
		return nil
	}
	query := r.URL.Query()
	name := strings.TrimSpace(query.Get("theme"))
	variant := strings.TrimSpace(query.Get("variant"))
	if name == "" {
		name = s.themeName
		if variant == "" {
			variant = s.themeVariant
		}
	}

	sel, err := s.themes.Select(name, variant)
	if err != nil && (name != s.themeName || variant != s.themeVariant) {
		s.logger.Debug("theme selection rejected", zap.String("theme", name), zap.String("variant", variant), zap.Error(err))
		sel, err = s.themes.Select(s.themeName, s.themeVariant)
	}
	if err != nil {
		s.logger.Warn("theme selection failed", zap.Error(err))
		return nil
	}
	return theming.RendererConfig(sel, nil)
}
