package observability

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/siteroutes/internal/logfields"
)

// Span times one unit of work and logs its outcome when ended.
type Span struct {
	ctx   context.Context
	name  string
	start time.Time
	err   error
	attrs []slog.Attr
}

// StartStageSpan opens a span for a pipeline stage. The returned context
// carries the stage name for log records emitted inside it.
func StartStageSpan(ctx context.Context, stage string) (context.Context, *Span) {
	ctx = WithStage(ctx, stage)
	DebugContext(ctx, "Stage started")
	return ctx, &Span{ctx: ctx, name: stage, start: time.Now()}
}

// SetAttr attaches an attribute that is logged when the span ends.
func (s *Span) SetAttr(attr slog.Attr) {
	s.attrs = append(s.attrs, attr)
}

// RecordError marks the span as failed.
func (s *Span) RecordError(err error) {
	if err != nil {
		s.err = err
	}
}

// End logs the span duration and returns it.
func (s *Span) End() time.Duration {
	d := time.Since(s.start)
	attrs := append([]slog.Attr{logfields.DurationMS(float64(d.Microseconds())/1000)}, s.attrs...)
	if s.err != nil {
		ErrorContext(s.ctx, "Stage failed", append(attrs, logfields.Error(s.err))...)
		return d
	}
	DebugContext(s.ctx, "Stage completed", attrs...)
	return d
}

// Err returns the error recorded on the span.
func (s *Span) Err() error {
	return s.err
}
