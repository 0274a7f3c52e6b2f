package observability

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"
)

// Span is a lightweight in-process trace span. Finished spans are emitted to
// the structured log rather than exported to a collector.
type Span struct {
	TraceID  string
	SpanID   string
	ParentID string
	Name     string
	Start    time.Time
	Duration time.Duration
	Tags     map[string]string
	Err      string
}

type spanContextKey struct{}

// StartSpan opens a span as a child of any span already in the context, so
// request-level spans and inner operation spans share a trace id.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	span := &Span{
		TraceID: generateID(),
		SpanID:  generateID(),
		Name:    name,
		Start:   time.Now(),
		Tags:    make(map[string]string),
	}

	if parent := GetSpan(ctx); parent != nil {
		span.TraceID = parent.TraceID
		span.ParentID = parent.SpanID
	}

	return context.WithValue(ctx, spanContextKey{}, span), span
}

// Finish closes the span and logs it at debug level, or warn when it recorded
// an error.
func (s *Span) Finish() {
	s.Duration = time.Since(s.Start)

	attrs := []any{
		"trace_id", s.TraceID,
		"span_id", s.SpanID,
		"span", s.Name,
		"duration", s.Duration,
	}
	if s.ParentID != "" {
		attrs = append(attrs, "parent_id", s.ParentID)
	}
	for k, v := range s.Tags {
		attrs = append(attrs, k, v)
	}

	if s.Err != "" {
		attrs = append(attrs, "error", s.Err)
		slog.Warn("span finished", attrs...)
		return
	}
	slog.Debug("span finished", attrs...)
}

func (s *Span) SetTag(key, value string) {
	if s.Tags == nil {
		s.Tags = make(map[string]string)
	}
	s.Tags[key] = value
}

func (s *Span) SetError(err error) {
	if err != nil {
		s.Err = err.Error()
	}
}

func GetSpan(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanContextKey{}).(*Span); ok {
		return span
	}
	return nil
}

func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
