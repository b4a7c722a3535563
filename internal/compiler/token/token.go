package token

import "fmt"

type TokenType string

type Position struct {
	Line   int
	Column int
	Offset int
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

const (
	// Special
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + literals
	IDENT TokenType = "IDENT"
	INT   TokenType = "INT"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	BANG     TokenType = "!"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"

	// Comparison
	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"

	LPAREN TokenType = "("
	RPAREN TokenType = ")"
	LBRACE TokenType = "{"
	RBRACE TokenType = "}"

	// Keywords
	FUNCTION TokenType = "FUNCTION"
	LET      TokenType = "LET"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	RETURN   TokenType = "RETURN"
)

var keywords = map[string]TokenType{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

// operators holds every fixed operator and delimiter spelling. Two-character
// operators are looked up whole; the lexer assembles them before calling Classify.
var operators = map[string]TokenType{
	"=":  ASSIGN,
	"+":  PLUS,
	"-":  MINUS,
	"!":  BANG,
	"*":  ASTERISK,
	"/":  SLASH,
	"<":  LT,
	">":  GT,
	"==": EQ,
	"!=": NOT_EQ,
	",":  COMMA,
	";":  SEMICOLON,
	"(":  LPAREN,
	")":  RPAREN,
	"{":  LBRACE,
	"}":  RBRACE,
}

// Classify maps a literal to its structural or keyword token type. It only
// reports a match when the literal is exactly one of the fixed spellings;
// identifiers, numbers and unknown characters return false.
func Classify(literal string) (TokenType, bool) {
	if tok, ok := operators[literal]; ok {
		return tok, true
	}
	if tok, ok := keywords[literal]; ok {
		return tok, true
	}
	return "", false
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

func IsKeyword(t TokenType) bool {
	switch t {
	case FUNCTION, LET, TRUE, FALSE, IF, ELSE, RETURN:
		return true
	}
	return false
}

// HasLiteral reports whether tokens of this type carry source text that is
// not implied by the type itself.
func HasLiteral(t TokenType) bool {
	return t == IDENT || t == INT || t == ILLEGAL
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// String renders IDENT("x"), INT("5"), LET or "=" style labels.
func (t Token) String() string {
	if HasLiteral(t.Type) {
		return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
	}
	return string(t.Type)
}
