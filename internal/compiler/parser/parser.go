package parser

import (
	"github.com/btouchard/monkey/internal/compiler/ast"
	"github.com/btouchard/monkey/internal/compiler/errors"
	"github.com/btouchard/monkey/internal/compiler/lexer"
	"github.com/btouchard/monkey/internal/compiler/token"
)

type Parser struct {
	l         *lexer.Lexer
	file      string
	curToken  token.Token
	peekToken token.Token
	errors    errors.ErrorList
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse lexes and parses source in one call.
func Parse(source string) (*ast.Program, []*errors.CompileError) {
	p := New(lexer.New(source))
	program := p.ParseProgram()
	return program, p.Errors()
}

// SetFile names the source in reported positions.
func (p *Parser) SetFile(name string) {
	p.file = name
}

// Errors returns the diagnostics for statements that were dropped.
func (p *Parser) Errors() []*errors.CompileError {
	return p.errors.Errors
}

// Err returns the diagnostics as a single error, nil when every statement
// was kept.
func (p *Parser) Err() error {
	return p.errors.Err()
}

func (p *Parser) addError(tok token.Token, phase errors.Phase, format string, args ...any) {
	p.errors.Addf(errors.At(p.file, tok.Pos), phase, format, args...)
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances only when the peek token matches. On a mismatch the
// unexpected token stays in the peek slot.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(p.peekToken, errors.PhaseParser,
		"expected %s, got %s (%q)", t, p.peekToken.Type, p.peekToken.Literal)
	return false
}

// ParseProgram consumes tokens up to EOF. After every statement attempt the
// window moves forward by exactly one token, so a dropped statement resumes
// on the token right after the one that was current.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{
		Statements: []ast.Statement{},
	}

	for !p.curTokenIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		// a nil *LetStmt must not become a non-nil Statement
		if stmt := p.parseLetStatement(); stmt != nil {
			return stmt
		}
		return nil
	case token.ILLEGAL:
		p.addError(p.curToken, errors.PhaseLexer, "illegal character %q", p.curToken.Literal)
		return nil
	default:
		return nil
	}
}

// parseLetStatement recognises LET IDENT ASSIGN ... SEMICOLON. Tokens between
// the '=' and the ';' are skipped; the bound value is the name itself.
func (p *Parser) parseLetStatement() *ast.LetStmt {
	stmt := &ast.LetStmt{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = ast.Ident{Token: p.curToken, Name: p.curToken.Literal}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}

	for !p.curTokenIs(token.SEMICOLON) {
		if p.curTokenIs(token.EOF) {
			p.addError(p.curToken, errors.PhaseParser,
				"expected %s to end let %s, got EOF", token.SEMICOLON, stmt.Name.Name)
			return nil
		}
		p.nextToken()
	}

	stmt.Value = ast.Ident{Token: stmt.Name.Token, Name: stmt.Name.Name}
	return stmt
}
