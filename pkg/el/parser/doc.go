// Package parser turns a lexer.Token stream into a pkg/el/ast tree.
//
// The grammar:
//
//	template  := (text | expr)*
//	expr      := '${' subject (':' call)* '}'
//	subject   := identifier | quoted_string | call
//	call      := identifier '(' [arg (',' arg)*] ')'
//	arg       := expr | quoted_string | number_literal
//
// A chained call's subject (the left side of ':') is prepended as args[0]
// before arity is checked against the function registry — the subject
// counts toward arity the same as any explicit argument.
package parser
