package el

import (
	"log/slog"

	"github.com/flowbeam/el/pkg/el/observability"
)

// CompileOption configures a single Compile call using the functional
// options pattern.
type CompileOption func(*compileConfig)

type compileConfig struct {
	regexEnabled bool
	logger       *slog.Logger
	metrics      observability.MetricsRecorder
	spans        observability.SpanManager
	exprID       string
}

func newCompileConfig() *compileConfig {
	return &compileConfig{
		regexEnabled: true,
		metrics:      observability.NoopMetrics{},
		spans:        observability.NoopSpanManager{},
	}
}

// WithRegexEnabled toggles the regex_enabled capability flag. Default
// true. When false, the parser's function-lookup step rejects every
// regex-only builtin with ErrRegexDisabled rather than registering stubs.
func WithRegexEnabled(enabled bool) CompileOption {
	return func(c *compileConfig) { c.regexEnabled = enabled }
}

// WithLogger attaches a structured logger; compile and evaluate phases log
// through it via pkg/el/observability. A nil logger (the default) disables
// logging.
func WithLogger(logger *slog.Logger) CompileOption {
	return func(c *compileConfig) { c.logger = logger }
}

// WithMetrics attaches a MetricsRecorder. Defaults to observability.NoopMetrics,
// so metrics collection is zero-overhead unless the caller opts in.
func WithMetrics(m observability.MetricsRecorder) CompileOption {
	return func(c *compileConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager attaches a SpanManager. Defaults to
// observability.NoopSpanManager.
func WithSpanManager(s observability.SpanManager) CompileOption {
	return func(c *compileConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// WithExprID sets the identifier used to tag this expression's log records
// and spans. Defaults to a short hash of the template text.
func WithExprID(id string) CompileOption {
	return func(c *compileConfig) { c.exprID = id }
}
