package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbeam/el/pkg/el/lexer"
)

func allTokens(t *testing.T, src string) []lexer.Token {
	t.Helper()
	l := lexer.New([]byte(src))
	var toks []lexer.Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			return toks
		}
	}
}

func TestPlainText(t *testing.T) {
	toks := allTokens(t, "hello world")
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.TEXT, toks[0].Kind)
	assert.Equal(t, "hello world", toks[0].Text)
	assert.Equal(t, lexer.EOF, toks[1].Kind)
}

func TestDollarEscape(t *testing.T) {
	toks := allTokens(t, "te$$xt")
	require.GreaterOrEqual(t, len(toks), 1)
	assert.Equal(t, "te$xt", toks[0].Text)
}

func TestBareDollarIsLiteral(t *testing.T) {
	toks := allTokens(t, "cost: $5")
	assert.Equal(t, "cost: $5", toks[0].Text)
}

func TestSimpleExpression(t *testing.T) {
	toks := allTokens(t, "${attr}")
	kinds := kindsOf(toks)
	assert.Equal(t, []lexer.Kind{lexer.EXPR_START, lexer.IDENT, lexer.EXPR_END, lexer.EOF}, kinds)
	assert.Equal(t, "attr", toks[1].Text)
}

func TestChainedCall(t *testing.T) {
	toks := allTokens(t, "${attr:substring(6, 8)}")
	kinds := kindsOf(toks)
	assert.Equal(t, []lexer.Kind{
		lexer.EXPR_START, lexer.IDENT, lexer.COLON, lexer.IDENT, lexer.LPAREN,
		lexer.INT, lexer.COMMA, lexer.INT, lexer.RPAREN, lexer.EXPR_END, lexer.EOF,
	}, kinds)
}

func TestQuotedStringWithEscapes(t *testing.T) {
	toks := allTokens(t, `${x:equals('a\'b')}`)
	var str lexer.Token
	for _, tok := range toks {
		if tok.Kind == lexer.STRING {
			str = tok
		}
	}
	assert.Equal(t, "a'b", str.Text)
}

func TestDecimalLiteralWithExponent(t *testing.T) {
	toks := allTokens(t, "${attr:plus(10e+6)}")
	var num lexer.Token
	for _, tok := range toks {
		if tok.Kind == lexer.DECIMAL {
			num = tok
		}
	}
	assert.Equal(t, "10e+6", num.Text)
}

func TestNestedExpressionArgument(t *testing.T) {
	// Scenario 10: a '${...}' appears as an argument inside a chained call.
	toks := allTokens(t, "${filename:equals( ${filename} )}")
	count := 0
	for _, tok := range toks {
		if tok.Kind == lexer.EXPR_START {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestUnterminatedString(t *testing.T) {
	l := lexer.New([]byte(`${x:equals('abc)}`))
	var err error
	for {
		var tok lexer.Token
		tok, err = l.NextToken()
		if err != nil || tok.Kind == lexer.EOF {
			break
		}
	}
	assert.ErrorIs(t, err, lexer.ErrUnterminatedString)
}

func kindsOf(toks []lexer.Token) []lexer.Kind {
	kinds := make([]lexer.Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}
