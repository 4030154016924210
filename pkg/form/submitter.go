package form

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-authform/pkg/schema"
)

// Submitter receives validated payloads. Implementations own whatever happens
// next; the controller does not wait for or interpret the outcome.
type Submitter interface {
	Submit(ctx context.Context, form string, payload schema.FormState) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, form string, payload schema.FormState) error

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, form string, payload schema.FormState) error {
	return fn(ctx, form, payload)
}

// LogSubmitter logs validated payloads. Fields listed in Redact (password
// fields by default) are replaced before logging.
type LogSubmitter struct {
	Logger *zap.Logger
	Redact []string
}

// NewLogSubmitter returns a LogSubmitter redacting the password fields.
func NewLogSubmitter(logger *zap.Logger) *LogSubmitter {
	return &LogSubmitter{
		Logger: logger,
		Redact: []string{schema.FieldPassword, schema.FieldConfirmPassword},
	}
}

const redacted = "[redacted]"

// Submit logs the payload at info level.
func (s *LogSubmitter) Submit(_ context.Context, form string, payload schema.FormState) error {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	hidden := make(map[string]struct{}, len(s.Redact))
	for _, name := range s.Redact {
		hidden[name] = struct{}{}
	}

	fields := make([]zap.Field, 0, len(payload)+1)
	fields = append(fields, zap.String("form", form))
	for _, name := range sortedKeys(payload) {
		value := payload[name]
		if _, ok := hidden[name]; ok {
			value = redacted
		}
		fields = append(fields, zap.String("payload."+name, value))
	}
	logger.Info("form submitted", fields...)
	return nil
}
