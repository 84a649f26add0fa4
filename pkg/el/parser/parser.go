// Package parser implements a recursive-descent parser over the lexer's
// token stream, producing pkg/el/ast nodes. The parser knows nothing about
// function semantics — only arity, looked up from pkg/el/function's
// registry — keeping grammar and builtin behavior decoupled.
package parser

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/flowbeam/el/pkg/el/ast"
	"github.com/flowbeam/el/pkg/el/function"
	"github.com/flowbeam/el/pkg/el/lexer"
	"github.com/flowbeam/el/pkg/el/value"
)

// Parser holds the full token stream for one template and the function
// context used to validate calls during parsing.
type Parser struct {
	toks []lexer.Token
	pos  int
	ctx  *function.Context
}

// Parse lexes and parses template into an AST, validating every function
// call's name and arity against the registry as it goes.
func Parse(template []byte, ctx *function.Context) (*ast.Node, error) {
	toks, err := tokenize(template)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks, ctx: ctx}
	node, err := p.parseTemplate()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != lexer.EOF {
		return nil, fmt.Errorf("%w at byte %d", ErrTrailingInput, p.peek().Pos)
	}
	return node, nil
}

func tokenize(template []byte) ([]lexer.Token, error) {
	l := lexer.New(template)
	var toks []lexer.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			return toks, nil
		}
	}
}

func (p *Parser) peek() lexer.Token { return p.toks[p.pos] }

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF sentinel
	}
	return p.toks[idx]
}

func (p *Parser) next() lexer.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind lexer.Kind) error {
	if p.peek().Kind != kind {
		return fmt.Errorf("%w: expected %s, got %s at byte %d", ErrUnexpectedToken, kind, p.peek().Kind, p.peek().Pos)
	}
	p.next()
	return nil
}

// parseTemplate := (text | expr)*
func (p *Parser) parseTemplate() (*ast.Node, error) {
	var nodes []*ast.Node
	for {
		switch p.peek().Kind {
		case lexer.TEXT:
			tok := p.next()
			nodes = append(nodes, ast.NewText(tok.Text))
		case lexer.EXPR_START:
			n, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		default:
			switch len(nodes) {
			case 0:
				return ast.NewText(""), nil
			case 1:
				return nodes[0], nil
			default:
				return ast.NewConcat(nodes), nil
			}
		}
	}
}

// parseExpr := '${' subject (':' call)* '}'
func (p *Parser) parseExpr() (*ast.Node, error) {
	if p.peek().Kind != lexer.EXPR_START {
		return nil, fmt.Errorf("%w: expected '${'", ErrUnexpectedToken)
	}
	p.next()

	node, err := p.parseSubject()
	if err != nil {
		return nil, err
	}

	for p.peek().Kind == lexer.COLON {
		p.next()
		node, err = p.parseCallAfterColon(node)
		if err != nil {
			return nil, err
		}
	}

	if p.peek().Kind == lexer.EOF {
		return nil, fmt.Errorf("%w", ErrUnmatchedExpr)
	}
	if err := p.expect(lexer.EXPR_END); err != nil {
		return nil, err
	}
	return node, nil
}

// subject := identifier | quoted_string | call
func (p *Parser) parseSubject() (*ast.Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.IDENT:
		if p.peekAt(1).Kind == lexer.LPAREN {
			return p.parseCall(nil)
		}
		p.next()
		return ast.NewAttrRef(tok.Text), nil
	case lexer.STRING:
		p.next()
		return ast.NewAttrRef(tok.Text), nil
	case lexer.EOF:
		return nil, fmt.Errorf("%w", ErrUnmatchedExpr)
	default:
		return nil, fmt.Errorf("%w: expected attribute reference or function call, got %s at byte %d", ErrUnexpectedToken, tok.Kind, tok.Pos)
	}
}

func (p *Parser) parseCallAfterColon(subject *ast.Node) (*ast.Node, error) {
	return p.parseCall(subject)
}

// call := identifier '(' [arg (',' arg)*] ')'
//
// subject is nil when this call is the expression's own subject (the
// "call" alternative of the subject production); otherwise it is the
// accumulated left operand of a chain and becomes args[0].
func (p *Parser) parseCall(subject *ast.Node) (*ast.Node, error) {
	nameTok := p.peek()
	if nameTok.Kind != lexer.IDENT {
		return nil, fmt.Errorf("%w: expected function name, got %s at byte %d", ErrUnexpectedToken, nameTok.Kind, nameTok.Pos)
	}
	p.next()

	explicitArgs, err := p.parseArgList()
	if err != nil {
		return nil, err
	}

	var args []*ast.Node
	if subject != nil {
		args = append(args, subject)
	}
	args = append(args, explicitArgs...)

	if _, err := function.Resolve(nameTok.Text, len(args), p.ctx); err != nil {
		return nil, err
	}

	return ast.NewCall(nameTok.Text, args), nil
}

func (p *Parser) parseArgList() ([]*ast.Node, error) {
	if err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var args []*ast.Node
	if p.peek().Kind != lexer.RPAREN {
		for {
			arg, err := p.parseArg()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().Kind == lexer.COMMA {
				p.next()
				continue
			}
			break
		}
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// arg := expr | quoted_string | number_literal
func (p *Parser) parseArg() (*ast.Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.EXPR_START:
		return p.parseExpr()
	case lexer.STRING:
		p.next()
		return ast.NewLiteral(value.String(tok.Text)), nil
	case lexer.INT:
		p.next()
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", lexer.ErrMalformedNumber, tok.Text)
		}
		return ast.NewLiteral(value.SignedInt(n)), nil
	case lexer.DECIMAL:
		p.next()
		d, err := decimal.NewFromString(tok.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", lexer.ErrMalformedNumber, tok.Text)
		}
		return ast.NewLiteral(value.Decimal(d)), nil
	default:
		return nil, fmt.Errorf("%w: expected argument, got %s at byte %d", ErrUnexpectedToken, tok.Kind, tok.Pos)
	}
}
