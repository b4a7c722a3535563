package token

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		literal  string
		expected TokenType
		ok       bool
	}{
		{"=", ASSIGN, true},
		{"==", EQ, true},
		{"!", BANG, true},
		{"!=", NOT_EQ, true},
		{"+", PLUS, true},
		{"-", MINUS, true},
		{"*", ASTERISK, true},
		{"/", SLASH, true},
		{"<", LT, true},
		{">", GT, true},
		{",", COMMA, true},
		{";", SEMICOLON, true},
		{"(", LPAREN, true},
		{")", RPAREN, true},
		{"{", LBRACE, true},
		{"}", RBRACE, true},
		{"fn", FUNCTION, true},
		{"let", LET, true},
		{"true", TRUE, true},
		{"false", FALSE, true},
		{"if", IF, true},
		{"else", ELSE, true},
		{"return", RETURN, true},
		{"letx", "", false},
		{"le", "", false},
		{"===", "", false},
		{"=!", "", false},
		{"foo", "", false},
		{"42", "", false},
		{"@", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			typ, ok := Classify(tt.literal)
			if ok != tt.ok || typ != tt.expected {
				t.Errorf("Classify(%q) = (%q, %v), want (%q, %v)", tt.literal, typ, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident    string
		expected TokenType
	}{
		{"fn", FUNCTION},
		{"let", LET},
		{"return", RETURN},
		{"x", IDENT},
		{"letter", IDENT},
		{"==", IDENT},
	}

	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.expected {
			t.Errorf("LookupIdent(%q) = %q, want %q", tt.ident, got, tt.expected)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	for _, typ := range []TokenType{FUNCTION, LET, TRUE, FALSE, IF, ELSE, RETURN} {
		if !IsKeyword(typ) {
			t.Errorf("IsKeyword(%s) = false, want true", typ)
		}
	}
	for _, typ := range []TokenType{IDENT, INT, ASSIGN, EOF, ILLEGAL} {
		if IsKeyword(typ) {
			t.Errorf("IsKeyword(%s) = true, want false", typ)
		}
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{Token{Type: IDENT, Literal: "five"}, `IDENT("five")`},
		{Token{Type: INT, Literal: "5"}, `INT("5")`},
		{Token{Type: ILLEGAL, Literal: "@"}, `ILLEGAL("@")`},
		{Token{Type: LET, Literal: "let"}, "LET"},
		{Token{Type: NOT_EQ, Literal: "!="}, "!="},
		{Token{Type: EOF}, "EOF"},
	}

	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.expected {
			t.Errorf("Token.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestTokenEqualityIsStructural(t *testing.T) {
	a := Token{Type: IDENT, Literal: "x", Pos: Position{Line: 1, Column: 5, Offset: 4}}
	b := a
	if a != b {
		t.Fatal("copied token should compare equal")
	}
	b.Literal = "y"
	if a == b {
		t.Fatal("tokens with different literals should differ")
	}
}
