package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/goliatone/go-authform/pkg/pages"
	"github.com/goliatone/go-authform/pkg/schema"
)

const (
	maxBodyBytes    = 64 << 10
	requestIDHeader = "X-Request-ID"
)

type requestIDKey struct{}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestID keeps a well-formed incoming X-Request-ID and mints one
// otherwise. The id is echoed in the response.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if _, err := uuid.Parse(id); err != nil {
			id = s.newRequestID()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(p)
}

// observe logs and counts every routed request by its route template.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		s.metrics.Request(route, r.Method, rec.status)
		s.logger.Debug("request served",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", requestIDFrom(r.Context())),
		)
	})
}

// submission is a decoded POST body. problems holds per-key shape errors
// (non-scalar JSON values) keyed by JSON pointer.
type submission struct {
	state    schema.FormState
	remember bool
	problems map[string]string
}

// decodeSubmission reads a urlencoded, multipart or JSON body. The
// "Remember me" checkbox is split out of the state.
func decodeSubmission(w http.ResponseWriter, r *http.Request) (submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType := "application/x-www-form-urlencoded"
	if raw := r.Header.Get("Content-Type"); raw != "" {
		parsed, _, err := mime.ParseMediaType(raw)
		if err != nil {
			return submission{}, fmt.Errorf("content type: %w", err)
		}
		mediaType = parsed
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return decodeJSON(r.Body)
	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return submission{}, fmt.Errorf("parse multipart form: %w", err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return submission{}, fmt.Errorf("parse form: %w", err)
		}
	}

	sub := submission{state: make(schema.FormState, len(r.PostForm))}
	for key, values := range r.PostForm {
		if len(values) == 0 {
			continue
		}
		if key == pages.RememberField {
			sub.remember = truthy(values[0])
			continue
		}
		sub.state[key] = values[0]
	}
	return sub, nil
}

func decodeJSON(body io.Reader) (submission, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return submission{}, fmt.Errorf("decode json: %w", err)
	}
	if dec.More() {
		return submission{}, errors.New("decode json: trailing data")
	}

	sub := submission{state: make(schema.FormState, len(raw))}
	for key, value := range raw {
		if key == pages.RememberField {
			switch v := value.(type) {
			case bool:
				sub.remember = v
			case string:
				sub.remember = truthy(v)
			}
			continue
		}
		switch v := value.(type) {
		case nil:
			sub.state[key] = ""
		case string:
			sub.state[key] = v
		case json.Number:
			sub.state[key] = v.String()
		case bool:
			sub.state[key] = fmt.Sprint(v)
		default:
			if sub.problems == nil {
				sub.problems = make(map[string]string)
			}
			sub.problems["/"+key] = "must be a string"
		}
	}
	return sub, nil
}

func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "off", "no":
		return false
	default:
		return true
	}
}

// wantsJSON reports whether the negotiated renderer produces JSON.
func (s *Server) wantsJSON(r *http.Request) bool {
	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		return false
	}
	return strings.HasPrefix(renderer.ContentType(), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
