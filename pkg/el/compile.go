package el

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"time"

	"github.com/flowbeam/el/pkg/el/ast"
	"github.com/flowbeam/el/pkg/el/function"
	"github.com/flowbeam/el/pkg/el/lexer"
	"github.com/flowbeam/el/pkg/el/observability"
	"github.com/flowbeam/el/pkg/el/parser"
)

// Compile parses template into an immutable Expression. The returned
// error, when non-nil, is always a *ParseError wrapping
// one of the ErrUnknownFunction / ErrWrongArity / ErrUnterminatedExpr /
// ErrRegexDisabled / ErrMalformedLiteral / ErrSyntax sentinels (or an
// *ArityError via errors.As).
func Compile(template string, opts ...CompileOption) (*Expression, error) {
	cfg := newCompileConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.exprID == "" {
		cfg.exprID = shortHash(template)
	}

	ctx := context.Background()
	observability.LogCompileStart(cfg.logger, cfg.exprID)
	start := time.Now()
	spanCtx, span := cfg.spans.StartCompileSpan(ctx, template)
	_ = spanCtx

	root, err := parser.Parse([]byte(template), &function.Context{RegexEnabled: cfg.regexEnabled})
	duration := time.Since(start)
	cfg.metrics.RecordCompile(ctx, duration, err)
	cfg.spans.EndSpanWithError(span, err)

	if err != nil {
		parseErr := &ParseError{Template: template, Err: classifyParseError(err)}
		observability.LogCompileError(cfg.logger, cfg.exprID, parseErr, float64(duration.Milliseconds()))
		return nil, parseErr
	}

	observability.LogCompileComplete(cfg.logger, cfg.exprID, float64(duration.Milliseconds()), countNodes(root))
	return &Expression{
		root:         root,
		exprID:       cfg.exprID,
		regexEnabled: cfg.regexEnabled,
		logger:       cfg.logger,
		metrics:      cfg.metrics,
		spans:        cfg.spans,
	}, nil
}

// classifyParseError maps the lexer/parser/function sentinel errors onto
// el's public sentinels, preserving the original via %w so errors.As still
// finds *function.ArityError underneath.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, function.ErrUnknownFunction):
		return joinSentinel(ErrUnknownFunction, err)
	case errors.Is(err, function.ErrRegexDisabled):
		return joinSentinel(ErrRegexDisabled, err)
	case isArityError(err):
		return joinSentinel(ErrWrongArity, err)
	case errors.Is(err, parser.ErrUnmatchedExpr):
		return joinSentinel(ErrUnterminatedExpr, err)
	case errors.Is(err, lexer.ErrUnterminatedString):
		return joinSentinel(ErrUnterminatedExpr, err)
	case errors.Is(err, lexer.ErrMalformedNumber):
		return joinSentinel(ErrMalformedLiteral, err)
	case errors.Is(err, parser.ErrUnexpectedToken), errors.Is(err, parser.ErrTrailingInput), errors.Is(err, lexer.ErrIllegalCharacter):
		return joinSentinel(ErrSyntax, err)
	default:
		return err
	}
}

func isArityError(err error) bool {
	var ae *function.ArityError
	return errors.As(err, &ae)
}

// joinSentinel keeps the original error (whose Error() carries the exact
// mandated wording, e.g. the arity message) as the wrapped chain while
// still letting errors.Is(err, sentinel) succeed for the public sentinel.
func joinSentinel(sentinel, original error) error {
	return &sentinelWrap{sentinel: sentinel, original: original}
}

type sentinelWrap struct {
	sentinel error
	original error
}

func (w *sentinelWrap) Error() string { return w.original.Error() }

func (w *sentinelWrap) Unwrap() []error { return []error{w.sentinel, w.original} }

func countNodes(n *ast.Node) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.Children {
		count += countNodes(c)
	}
	return count
}

func shortHash(template string) string {
	sum := sha1.Sum([]byte(template))
	return hex.EncodeToString(sum[:4])
}
