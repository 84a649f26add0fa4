package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records for testing.
type testHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &testHandler{buf: h.buf, level: h.level, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *testHandler) lastRecord(t *testing.T) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(h.buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var data map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &data))
	return data
}

func TestEnrichLogger(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	enriched := EnrichLogger(logger, "proc-1:attr", "evaluate")
	enriched.Info("doing work")

	rec := h.lastRecord(t)
	assert.Equal(t, "proc-1:attr", rec["expr_id"])
	assert.Equal(t, "evaluate", rec["phase"])
}

func TestEnrichLogger_NilLogger(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "x", "compile"))
}

func TestLogCompileLifecycle(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogCompileStart(logger, "e1")
	rec := h.lastRecord(t)
	assert.Equal(t, "compiling expression", rec["msg"])
	assert.Equal(t, "e1", rec["expr_id"])

	LogCompileComplete(logger, "e1", 1.5, 4)
	rec = h.lastRecord(t)
	assert.Equal(t, "expression compiled", rec["msg"])
	assert.EqualValues(t, 4, rec["node_count"])

	LogCompileError(logger, "e1", errors.New("bad token"), 0.5)
	rec = h.lastRecord(t)
	assert.Equal(t, "ERROR", rec["level"])
	assert.Contains(t, rec["error"], "bad token")
}

func TestLogEvaluateLifecycle(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogEvaluateStart(logger, "e1")
	rec := h.lastRecord(t)
	assert.Equal(t, "evaluating expression", rec["msg"])

	LogEvaluateComplete(logger, "e1", 0.2)
	rec = h.lastRecord(t)
	assert.Equal(t, "expression evaluated", rec["msg"])

	LogEvaluateError(logger, "e1", errors.New("divide by zero"))
	rec = h.lastRecord(t)
	assert.Equal(t, "WARN", rec["level"])
	assert.Contains(t, rec["error"], "divide by zero")
}

func TestLogFunctionCall(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogFunctionCall(logger, "toUpper", 0.1, nil)
	rec := h.lastRecord(t)
	assert.Equal(t, "function call", rec["msg"])
	assert.Equal(t, "toUpper", rec["function"])

	LogFunctionCall(logger, "divide", 0.1, errors.New("not a number"))
	rec = h.lastRecord(t)
	assert.Equal(t, "function call failed", rec["msg"])
}

func TestNilLoggerNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		LogCompileStart(nil, "e1")
		LogCompileComplete(nil, "e1", 0, 0)
		LogCompileError(nil, "e1", errors.New("x"), 0)
		LogEvaluateStart(nil, "e1")
		LogEvaluateComplete(nil, "e1", 0)
		LogEvaluateError(nil, "e1", errors.New("x"))
		LogFunctionCall(nil, "f", 0, nil)
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	elapsed := done()
	assert.GreaterOrEqual(t, elapsed, 0.0)
}
