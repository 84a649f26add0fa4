package lexer

// Kind identifies the lexical category of a Token.
type Kind int

const (
	// TEXT is a maximal run of literal template bytes outside any expression.
	TEXT Kind = iota
	// EXPR_START marks a '${' that opens an expression (top-level or nested).
	EXPR_START
	// EXPR_END marks the '}' that closes the innermost open expression.
	EXPR_END
	IDENT
	INT
	DECIMAL
	STRING
	COLON
	COMMA
	LPAREN
	RPAREN
	EOF
)

func (k Kind) String() string {
	switch k {
	case TEXT:
		return "TEXT"
	case EXPR_START:
		return "EXPR_START"
	case EXPR_END:
		return "EXPR_END"
	case IDENT:
		return "IDENT"
	case INT:
		return "INT"
	case DECIMAL:
		return "DECIMAL"
	case STRING:
		return "STRING"
	case COLON:
		return "COLON"
	case COMMA:
		return "COMMA"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case EOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// Token is one lexical unit produced by the Lexer.
type Token struct {
	Kind Kind
	// Text is the decoded value: raw bytes for TEXT, the identifier name for
	// IDENT, the literal digits for INT/DECIMAL, and the unescaped contents
	// (without surrounding quotes) for STRING.
	Text string
	// Pos is the byte offset in the original template where the token began.
	Pos int
}
