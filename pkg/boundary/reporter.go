package boundary

import (
	"time"

	"go.uber.org/zap"
)

// Info carries the diagnostic context reported alongside a render error.
type Info struct {
	IncidentID string
	Route      string
	Stack      string
	OccurredAt time.Time
}

// Reporter is the observability sink notified once per tripped boundary.
type Reporter interface {
	Report(err error, info Info)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(err error, info Info)

// Report calls fn.
func (fn ReporterFunc) Report(err error, info Info) {
	fn(err, info)
}

// ZapReporter writes two error entries per incident: the error itself, then
// its diagnostic context.
type ZapReporter struct {
	logger *zap.Logger
}

// NewZapReporter returns a reporter writing to logger.
func NewZapReporter(logger *zap.Logger) *ZapReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapReporter{logger: logger.Named("boundary")}
}

// Report logs err and info.
func (r *ZapReporter) Report(err error, info Info) {
	r.logger.Error("render error",
		zap.String("incident", info.IncidentID),
		zap.Error(err),
	)
	r.logger.Error("render error info",
		zap.String("incident", info.IncidentID),
		zap.String("route", info.Route),
		zap.Time("occurred_at", info.OccurredAt),
		zap.String("stack", info.Stack),
	)
}
