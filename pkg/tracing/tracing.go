// Package tracing times operations and reports them as spans.
package tracing

// Tracer starts spans.
type Tracer interface {
	StartSpan(operationName string) Span
}

// Span is one timed operation. Baggage items are reported with the span
// when it finishes.
type Span interface {
	SetBaggageItem(key string, value any)
	Finish()
}

var (
	_ Tracer = NopTracer{}
	_ Span   = nopSpan{}
)

// NopTracer discards every span.
type NopTracer struct{}

//nolint:ireturn // Interface by contract.
func (NopTracer) StartSpan(string) Span { return nopSpan{} }

type nopSpan struct{}

func (nopSpan) SetBaggageItem(string, any) {}
func (nopSpan) Finish()                    {}
