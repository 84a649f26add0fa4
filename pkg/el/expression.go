package el

import (
	"context"
	"log/slog"
	"time"

	"github.com/flowbeam/el/pkg/el/ast"
	"github.com/flowbeam/el/pkg/el/function"
	"github.com/flowbeam/el/pkg/el/observability"
	"github.com/flowbeam/el/pkg/el/value"
)

// Expression is an immutable compiled template: safe to share across
// goroutines and to evaluate repeatedly against different record sets. It
// carries no reference to any record that produced a past result.
type Expression struct {
	root         *ast.Node
	exprID       string
	regexEnabled bool
	logger       *slog.Logger
	metrics      observability.MetricsRecorder
	spans        observability.SpanManager
}

// Evaluate applies the compiled expression to records, producing a Value.
// Evaluation is synchronous, re-entrant, and touches no shared mutable
// state across concurrent calls; any error is an *EvaluationError and does
// not invalidate the Expression for future use.
func (e *Expression) Evaluate(records RecordSet) (value.Value, error) {
	ctx := context.Background()
	observability.LogEvaluateStart(e.logger, e.exprID)
	start := time.Now()
	_, span := e.spans.StartEvaluateSpan(ctx, e.exprID)

	fnCtx := &function.Context{RegexEnabled: e.regexEnabled}
	v, err := eval(e.root, records, fnCtx, e)

	duration := time.Since(start)
	e.metrics.RecordEvaluate(ctx, duration, err)
	e.spans.EndSpanWithError(span, err)

	if err != nil {
		evalErr, ok := err.(*EvaluationError)
		if !ok {
			evalErr = &EvaluationError{Err: err}
		}
		observability.LogEvaluateError(e.logger, e.exprID, evalErr)
		return value.Value{}, evalErr
	}
	observability.LogEvaluateComplete(e.logger, e.exprID, float64(duration.Milliseconds()))
	return v, nil
}

func eval(n *ast.Node, records RecordSet, fnCtx *function.Context, e *Expression) (value.Value, error) {
	switch n.Kind {
	case ast.Literal:
		return n.Value, nil

	case ast.Text:
		return value.String(n.TextValue), nil

	case ast.AttrRef:
		if v, ok := records.Lookup(n.Name); ok {
			return value.String(v), nil
		}
		return value.Null(), nil

	case ast.Concat:
		var sb []byte
		for _, c := range n.Children {
			v, err := eval(c, records, fnCtx, e)
			if err != nil {
				return value.Value{}, err
			}
			sb = append(sb, v.AsString()...)
		}
		return value.String(string(sb)), nil

	case ast.Call:
		args := make([]value.Value, len(n.Children))
		for i, c := range n.Children {
			v, err := eval(c, records, fnCtx, e)
			if err != nil {
				return value.Value{}, err
			}
			args[i] = v
		}
		spec, err := function.Resolve(n.Function, len(args), fnCtx)
		if err != nil {
			return value.Value{}, &EvaluationError{Function: n.Function, Err: err}
		}

		ctx := context.Background()
		callStart := time.Now()
		result, callErr := spec.Call(fnCtx, args)
		callDuration := time.Since(callStart)
		e.metrics.RecordFunctionCall(ctx, n.Function, callDuration, callErr)
		observability.LogFunctionCall(e.logger, n.Function, float64(callDuration.Milliseconds()), callErr)
		if callErr != nil {
			return value.Value{}, &EvaluationError{Function: n.Function, Err: callErr}
		}
		return result, nil

	default:
		return value.Value{}, &EvaluationError{Err: errUnknownNodeKind(n.Kind)}
	}
}

func errUnknownNodeKind(k ast.NodeKind) error {
	return &unknownNodeKindError{kind: k}
}

type unknownNodeKindError struct{ kind ast.NodeKind }

func (e *unknownNodeKindError) Error() string {
	return "el: unknown AST node kind: " + e.kind.String()
}
