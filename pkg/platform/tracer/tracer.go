// Package tracer provides a lightweight tracing abstraction for the visitor
// tracker.
//
// Services emit spans through this interface instead of depending on
// OpenTelemetry APIs directly, so unit tests can run with a no-op tracer and
// production wires in the OTel adapter.
package tracer

import "context"

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	// The returned context contains the new span and should be passed to
	// child operations. The span must be ended by calling Span.End().
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Span names used by the visitor module.
const (
	SpanCheckIn         = "visitor.check_in"
	SpanCheckOut        = "visitor.check_out"
	SpanReset           = "visitor.reset"
	SpanRecordViolation = "visitor.record_violation"
	SpanClearViolation  = "visitor.clear_violation"
	SpanBan             = "visitor.ban"
	SpanClearBan        = "visitor.clear_ban"
)

// Attribute keys used by the visitor module.
const (
	AttrVisitorID      = "visitor_id"
	AttrWindowState    = "window_state"
	AttrClassification = "classification"
)
