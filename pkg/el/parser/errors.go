package parser

import "errors"

// Grammar-level sentinel errors. el.Compile wraps these (and any error
// from the lexer or function registry) into a *el.ParseError.
var (
	ErrUnmatchedExpr   = errors.New("el/parser: unmatched '${'")
	ErrUnexpectedToken = errors.New("el/parser: unexpected token")
	ErrTrailingInput   = errors.New("el/parser: trailing input after template")
)
