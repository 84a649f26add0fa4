package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_ImplementsInterface(t *testing.T) {
	var _ MetricsRecorder = NoopMetrics{}
}

func TestNoopMetrics_RecordCompile(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordCompile(context.Background(), 100*time.Millisecond, nil)
		})
	})

	t.Run("does not panic with error", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordCompile(context.Background(), 100*time.Millisecond, errors.New("test"))
		})
	})

	t.Run("does not panic with nil context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordCompile(nil, 0, nil) //nolint:staticcheck
		})
	})
}

func TestNoopMetrics_RecordEvaluate(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with success", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordEvaluate(context.Background(), 500*time.Millisecond, nil)
		})
	})

	t.Run("does not panic with error", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordEvaluate(context.Background(), 100*time.Millisecond, errors.New("fail"))
		})
	})
}

func TestNoopMetrics_RecordFunctionCall(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordFunctionCall(context.Background(), "toUpper", time.Microsecond, nil)
		})
	})

	t.Run("does not panic with empty name", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordFunctionCall(context.Background(), "", 0, nil)
		})
	})
}

func TestNoopSpanManager_ImplementsInterface(t *testing.T) {
	var _ SpanManager = NoopSpanManager{}
}

func TestNoopSpanManager_StartCompileSpan(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("returns same context", func(t *testing.T) {
		ctx := context.Background()
		newCtx, span := sm.StartCompileSpan(ctx, "${x}")

		assert.Equal(t, ctx, newCtx, "Context should be unchanged")
		assert.NotNil(t, span, "Span should not be nil")
	})

	t.Run("span is valid noop span", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartCompileSpan(ctx, "${x}")

		assert.False(t, span.IsRecording())
	})

	t.Run("does not panic with empty template", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.StartCompileSpan(context.Background(), "")
		})
	})
}

func TestNoopSpanManager_StartEvaluateSpan(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("returns same context", func(t *testing.T) {
		ctx := context.Background()
		newCtx, span := sm.StartEvaluateSpan(ctx, "e1")

		assert.Equal(t, ctx, newCtx, "Context should be unchanged")
		assert.NotNil(t, span, "Span should not be nil")
	})

	t.Run("span is valid noop span", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartEvaluateSpan(ctx, "e1")

		assert.False(t, span.IsRecording())
	})

	t.Run("does not panic with empty id", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.StartEvaluateSpan(context.Background(), "")
		})
	})
}

func TestNoopSpanManager_EndSpanWithError(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("does not panic with nil span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, nil)
		})
	})

	t.Run("does not panic with nil error", func(t *testing.T) {
		_, span := sm.StartCompileSpan(context.Background(), "x")
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(span, nil)
		})
	})

	t.Run("does not panic with error", func(t *testing.T) {
		_, span := sm.StartCompileSpan(context.Background(), "x")
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(span, errors.New("test error"))
		})
	})
}

func TestNoopSpanManager_AddSpanEvent(t *testing.T) {
	sm := NoopSpanManager{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		ctx := context.Background()
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(ctx, "test_event", attribute.String("key", "value"))
		})
	})

	t.Run("does not panic with no attributes", func(t *testing.T) {
		ctx := context.Background()
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(ctx, "test_event")
		})
	})

	t.Run("does not panic with empty event name", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(context.Background(), "")
		})
	})
}

func TestNoopImplementations_NoSideEffects(t *testing.T) {
	// Verifies that noop implementations can be used in a realistic
	// compile+evaluate scenario without any side effects.

	metrics := NoopMetrics{}
	spans := NoopSpanManager{}

	ctx := context.Background()

	ctx, compileSpan := spans.StartCompileSpan(ctx, "${attr:toUpper():trim()}")

	start := time.Now()
	time.Sleep(time.Millisecond)
	metrics.RecordCompile(ctx, time.Since(start), nil)
	spans.EndSpanWithError(compileSpan, nil)

	for _, exprID := range []string{"e1", "e2", "e3"} {
		ctx, evalSpan := spans.StartEvaluateSpan(ctx, exprID)

		start := time.Now()
		time.Sleep(time.Millisecond)
		metrics.RecordFunctionCall(ctx, "toUpper", time.Since(start), nil)

		var err error
		if exprID == "e2" {
			err = errors.New("simulated evaluation error")
			spans.AddSpanEvent(ctx, "error", attribute.String("message", err.Error()))
		}
		metrics.RecordEvaluate(ctx, time.Since(start), err)
		spans.EndSpanWithError(evalSpan, err)
	}

	// If we get here without panicking, the test passes.
}
