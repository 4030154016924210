package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-authform/components/icons"
	"github.com/goliatone/go-authform/internal/config"
	"github.com/goliatone/go-authform/internal/metrics"
	"github.com/goliatone/go-authform/internal/theming"
	"github.com/goliatone/go-authform/pkg/boundary"
	"github.com/goliatone/go-authform/pkg/form"
	"github.com/goliatone/go-authform/pkg/openapi"
	"github.com/goliatone/go-authform/pkg/pages"
	"github.com/goliatone/go-authform/pkg/render"
	"github.com/goliatone/go-authform/pkg/renderers/jsonview"
	"github.com/goliatone/go-authform/pkg/renderers/vanilla"
	"github.com/goliatone/go-authform/pkg/schema"
)

const testRequestID = "4b1f0c2e-8a57-4a3c-9d7e-5b7d9e0f1a2b"

type captured struct {
	form    string
	payload schema.FormState
}

type captureSubmitter struct {
	mu    sync.Mutex
	calls []captured
	err   error
}

func (c *captureSubmitter) Submit(_ context.Context, form string, payload schema.FormState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, captured{form: form, payload: payload})
	return c.err
}

type fixture struct {
	server    *Server
	submitter *captureSubmitter
	metrics   *metrics.Metrics
	logs      *observer.ObservedLogs
}

func newFixture(t *testing.T, extra ...Option) fixture {
	t.Helper()

	html, err := vanilla.New()
	require.NoError(t, err)
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(jsonview.New())

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	m := metrics.New()
	submitter := &captureSubmitter{}

	options := []Option{
		WithLogger(logger),
		WithMetrics(m),
		WithRenderers(registry),
		WithSubmitter(submitter),
		WithDispatch(func(fn func()) { fn() }),
		WithRequestIDs(func() string { return testRequestID }),
	}
	options = append(options, extra...)
	srv, err := New(options...)
	require.NoError(t, err)
	return fixture{server: srv, submitter: submitter, metrics: m, logs: logs}
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func (f fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req
}

func TestNew_RequiresRenderer(t *testing.T) {
	_, err := New()
	require.Error(t, err)
}

func TestGetSignIn_RendersHTML(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/sign-in", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, testRequestID, rec.Header().Get(requestIDHeader))
	body := rec.Body.String()
	assert.Contains(t, body, "Welcome back")
	assert.Contains(t, body, "Please sign in to your account")
	assert.Contains(t, body, "Remember me")
}

func TestGetSignUp_NegotiatesJSON(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/sign-up", nil)
	req.Header.Set("Accept", "application/json")

	rec := f.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	var doc jsonview.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, schema.SignUpName, doc.Page.ID)
	assert.Equal(t, testRequestID, doc.RequestID)
}

func TestRequestID_KeepsWellFormedHeader(t *testing.T) {
	f := newFixture(t)
	incoming := "0d5b2f7c-1111-4a3c-9d7e-5b7d9e0f1a2b"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, incoming)

	rec := f.do(req)
	assert.Equal(t, incoming, rec.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "<script>")
	rec = f.do(req)
	assert.Equal(t, testRequestID, rec.Header().Get(requestIDHeader))
}

func TestPostSignIn_ValidFormRedirects(t *testing.T) {
	f := newFixture(t)

	rec := f.do(postForm("/sign-in", url.Values{
		"email":    {"user@example.com"},
		"password": {"Abcdef1!"},
		"remember": {"on"},
		"extra":    {"dropped"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
	require.Len(t, f.submitter.calls, 1)
	assert.Equal(t, schema.SignInName, f.submitter.calls[0].form)
	assert.Equal(t, schema.FormState{"email": "user@example.com", "password": "Abcdef1!"}, f.submitter.calls[0].payload)
	assert.Contains(t, scrape(t, f.metrics), `authform_submissions_total{form="sign-in",outcome="submitted"} 1`)
}

func TestPostSignIn_InvalidFormRerendersWithErrors(t *testing.T) {
	f := newFixture(t)

	rec := f.do(postForm("/sign-in", url.Values{
		"email":    {"not-an-email"},
		"password": {"secret-pw"},
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, schema.MessageInvalidEmail)
	assert.Contains(t, body, schema.MessagePasswordSpecial)
	assert.Contains(t, body, `value="not-an-email"`)
	assert.NotContains(t, body, "secret-pw", "masked values are never echoed")
	assert.Empty(t, f.submitter.calls)
	assert.Contains(t, scrape(t, f.metrics), `authform_validation_errors_total{field="email",form="sign-in"} 1`)
}

func TestPostSignIn_JSONValidIsAccepted(t *testing.T) {
	f := newFixture(t)

	rec := f.do(postJSON("/sign-in", `{"email": "user@example.com", "password": "Abcdef1!", "remember": true}`))

	require.Equal(t, http.StatusAccepted, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "accepted", body["status"])
	assert.Equal(t, schema.SignInName, body["form"])
	require.Len(t, f.submitter.calls, 1)
}

func TestPostSignUp_JSONInvalidReturnsErrors(t *testing.T) {
	f := newFixture(t)

	rec := f.do(postJSON("/sign-up", `{"name": "A", "email": "a@b.co", "password": "Abcdef1!", "confirmPassword": "Abcdef2!", "remember": "on"}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var doc jsonview.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, map[string]string{
		"name":            "Name must be at least 2 characters long",
		"confirmPassword": "Passwords do not match",
	}, doc.Errors)
	assert.Equal(t, "a@b.co", doc.Values["email"])
	assert.NotContains(t, doc.Values, "password")
	assert.True(t, doc.Remember)
}

func TestPostSignIn_JSONNonScalarIsFieldError(t *testing.T) {
	f := newFixture(t)

	rec := f.do(postJSON("/sign-in", `{"email": "user@example.com", "password": ["x"], "nested": {"a": 1}}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var doc jsonview.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, map[string]string{"password": "must be a string"}, doc.Errors)
	assert.Equal(t, []string{"must be a string"}, doc.FormErrors)
	assert.Empty(t, f.submitter.calls)
}

func TestPostSignIn_MalformedBody(t *testing.T) {
	f := newFixture(t)

	rec := f.do(postJSON("/sign-in", `{"email": `))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := postForm("/sign-in", url.Values{})
	req.Header.Set("Content-Type", "text/plain; charset")
	rec = f.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostSignIn_SubmitterErrorIsLoggedNotShown(t *testing.T) {
	f := newFixture(t)
	f.submitter.err = errors.New("backend down")

	rec := f.do(postForm("/sign-in", url.Values{"email": {"user@example.com"}, "password": {"Abcdef1!"}}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	entries := f.logs.FilterMessage("submission failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "backend down", entries[0].ContextMap()["error"])
}

type panicRenderer struct{}

func (panicRenderer) Name() string        { return "panic" }
func (panicRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (panicRenderer) Render(context.Context, pages.Page, render.RenderOptions) ([]byte, error) {
	panic("template exploded")
}

func TestRenderFailure_ServesFallbackAndReportsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	registry := render.NewRegistry()
	registry.MustRegister(panicRenderer{})
	m := metrics.New()

	srv, err := New(WithRenderers(registry), WithLogger(zap.New(core)), WithMetrics(m))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sign-up", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), boundary.FallbackTitle)
	assert.Contains(t, rec.Body.String(), boundary.FallbackMessage)
	assert.NotContains(t, rec.Body.String(), "template exploded")

	reported := logs.FilterLoggerName("boundary").All()
	require.Len(t, reported, 2)
	assert.Equal(t, "render error", reported[0].Message)
	assert.Equal(t, "render error info", reported[1].Message)
	assert.Contains(t, scrape(t, m), `authform_render_failures_total{route="GET /sign-up"} 1`)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sign-in", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code, "every request mounts its own boundary")
	assert.Len(t, logs.FilterLoggerName("boundary").All(), 4)
}

func TestRenderFailure_OnInvalidPostUsesBoundary(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	registry := render.NewRegistry()
	registry.MustRegister(panicRenderer{})
	m := metrics.New()

	srv, err := New(WithRenderers(registry), WithLogger(zap.New(core)), WithMetrics(m))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, postForm("/sign-in", url.Values{"email": {"nope"}, "password": {"short"}}))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), boundary.FallbackTitle)
	assert.Len(t, logs.FilterLoggerName("boundary").All(), 2)
	assert.Contains(t, scrape(t, m), `authform_render_failures_total{route="POST /sign-in"} 1`)
}

func TestPostSignIn_SubmitterPanicDoesNotTripBoundary(t *testing.T) {
	f := newFixture(t, WithSubmitter(form.SubmitterFunc(func(context.Context, string, schema.FormState) error {
		panic("auth client exploded")
	})))

	rec := f.do(postForm("/sign-in", url.Values{"email": {"user@example.com"}, "password": {"Abcdef1!"}}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, f.logs.FilterLoggerName("boundary").All())
	entries := f.logs.FilterMessage("submission failed").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "submitter panicked")
	assert.NotContains(t, scrape(t, f.metrics), "authform_render_failures_total{")
}

func TestRoot_RedirectsToSignIn(t *testing.T) {
	f := newFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/sign-in", rec.Header().Get("Location"))
}

func TestOperationalEndpoints(t *testing.T) {
	doc, err := openapi.Build(context.Background(), pages.Default().All())
	require.NoError(t, err)
	f := newFixture(t, WithOpenAPI(doc))

	rec := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())

	f.do(httptest.NewRequest(http.MethodGet, "/sign-in", nil))
	rec = f.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `authform_http_requests_total{method="GET",route="/sign-in",status="200"} 1`)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	loaded, err := openapi.Load(context.Background(), rec.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, loaded.Operations(), 4)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(httptest.NewRequest(http.MethodDelete, "/sign-in", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStaticAssets(t *testing.T) {
	runtimeFS := fstest.MapFS{"authform.css": {Data: []byte("body{}")}}
	f := newFixture(t,
		WithIcons(icons.New()),
		WithRuntimeAssets(runtimeFS, "/runtime/"),
	)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/assets/icons/mail.svg", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")

	rec = f.do(httptest.NewRequest(http.MethodGet, "/assets/icons/unknown.svg", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(httptest.NewRequest(http.MethodGet, "/runtime/authform.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
}

func TestThemeSelection_QueryOverridesDefaults(t *testing.T) {
	selector, err := theming.NewSelector(config.Default().Theme)
	require.NoError(t, err)
	f := newFixture(t, WithTheme(selector, config.DefaultThemeName, "light"))

	get := func(target string) jsonview.Document {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("Accept", "application/json")
		rec := f.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		var doc jsonview.Document
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		require.NotNil(t, doc.Theme)
		return doc
	}

	assert.Equal(t, "light", get("/sign-in").Theme.Variant)
	dark := get("/sign-in?variant=dark")
	assert.Equal(t, "dark", dark.Theme.Variant)
	assert.Equal(t, "#1f2937", dark.Theme.Tokens["af-surface"])
	assert.Equal(t, "light", get("/sign-in?variant=neon").Theme.Variant, "unknown variants fall back")

	req := httptest.NewRequest(http.MethodGet, "/sign-in?variant=dark", nil)
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--af-surface: #1f2937;")
}
