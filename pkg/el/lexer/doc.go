// Package lexer scans an EL template into a token stream.
//
// The scanner has two modes. Text mode emits TEXT tokens for literal
// template bytes, treats "$$" as an escaped literal '$', and switches to
// expression mode on "${". Expression mode skips whitespace and emits
// identifier, number, string, and punctuation tokens; a nested "${" inside
// a function argument re-enters expression mode rather than returning to
// text mode, and only the matching '}' at depth zero returns control to
// the caller's text-mode scanning.
package lexer
