package lexer

import (
	"github.com/btouchard/monkey/internal/compiler/token"
)

// Lexer scans an owned copy of the source one byte at a time. Only ASCII
// input is classified meaningfully; any other byte comes back as ILLEGAL.
type Lexer struct {
	input    []byte
	position int // index of the next unread byte, in [0, len(input)]
	line     int // current line (1-based)
	column   int // column of input[position] (1-based)
}

func New(input string) *Lexer {
	return &Lexer{
		input:  []byte(input),
		line:   1,
		column: 1,
	}
}

// Tokenize drains a fresh lexer and returns every token up to and including
// the first EOF.
func Tokenize(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

// Offset returns the cursor position in bytes.
func (l *Lexer) Offset() int {
	return l.position
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// ch returns the byte under the cursor, 0 at end of input.
func (l *Lexer) ch() byte {
	if l.atEnd() {
		return 0
	}
	return l.input[l.position]
}

func (l *Lexer) peekChar() byte {
	if l.position+1 >= len(l.input) {
		return 0
	}
	return l.input[l.position+1]
}

func (l *Lexer) readChar() {
	if l.atEnd() {
		return
	}
	if l.input[l.position] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.position++
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}

// NextToken returns the next token and advances past it. It never fails:
// unknown bytes produce ILLEGAL and an exhausted input produces EOF on every
// call.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := l.currentPos()
	if l.atEnd() {
		return token.Token{Type: token.EOF, Literal: "", Pos: pos}
	}

	ch := l.ch()
	switch ch {
	case '=', '!':
		if l.peekChar() == '=' {
			return l.classified(l.readBytes(2), pos)
		}
		return l.classified(l.readBytes(1), pos)
	case '+', '-', '*', '/', '<', '>', '(', ')', '{', '}', ',', ';':
		return l.classified(l.readBytes(1), pos)
	}

	if isLetter(ch) || isDigit(ch) {
		lit := l.readWord()
		return token.Token{Type: wordType(lit), Literal: lit, Pos: pos}
	}

	return token.Token{Type: token.ILLEGAL, Literal: l.readBytes(1), Pos: pos}
}

// readBytes consumes n bytes and returns them exactly as they appear in the
// input. A byte above 0x7f stays a one-byte literal.
func (l *Lexer) readBytes(n int) string {
	start := l.position
	for i := 0; i < n; i++ {
		l.readChar()
	}
	return string(l.input[start:l.position])
}

func (l *Lexer) classified(lit string, pos token.Position) token.Token {
	typ, ok := token.Classify(lit)
	if !ok {
		typ = token.ILLEGAL
	}
	return token.Token{Type: typ, Literal: lit, Pos: pos}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() {
		switch l.ch() {
		case ' ', '\t', '\n', '\r':
			l.readChar()
		default:
			return
		}
	}
}

// readWord consumes a run of letters, digits and underscores. The loop stops
// on the first byte outside the class, which stays unread for the next token.
func (l *Lexer) readWord() string {
	start := l.position
	for !l.atEnd() && (isLetter(l.ch()) || isDigit(l.ch())) {
		l.readChar()
	}
	return string(l.input[start:l.position])
}

// wordType decides a run by content: all digits is INT, an exact keyword is
// that keyword, anything else is IDENT.
func wordType(lit string) token.TokenType {
	if isNumber(lit) {
		return token.INT
	}
	return token.LookupIdent(lit)
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
