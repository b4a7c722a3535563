package ast

import (
	"strings"

	"github.com/btouchard/monkey/internal/compiler/token"
)

// Node is the base interface for all AST nodes
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement is the interface for all statements. The unexported marker keeps
// the set of statement kinds closed to this package.
type Statement interface {
	Node
	statementNode()
}

// Expression is the interface for all expressions
type Expression interface {
	Node
	expressionNode()
}

// Program is the root AST node; it owns its statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Names returns the names bound by let statements, in source order.
func (p *Program) Names() []string {
	var names []string
	for _, s := range p.Statements {
		if let, ok := s.(*LetStmt); ok {
			names = append(names, let.Name.Name)
		}
	}
	return names
}

// ============ STATEMENTS ============

// LetStmt: let x = expr;
// Name and Value are held by value so no two statements share a node.
type LetStmt struct {
	Token token.Token // the LET token
	Name  Ident
	Value Expression
}

func (l *LetStmt) TokenLiteral() string { return l.Token.Literal }
func (l *LetStmt) statementNode()       {}

func (l *LetStmt) String() string {
	var b strings.Builder
	b.WriteString(l.TokenLiteral() + " ")
	b.WriteString(l.Name.String())
	b.WriteString(" = ")
	if l.Value != nil {
		b.WriteString(l.Value.String())
	}
	b.WriteString(";")
	return b.String()
}

// ============ EXPRESSIONS ============

// Ident: variable name
type Ident struct {
	Token token.Token // the IDENT token
	Name  string
}

func (i Ident) TokenLiteral() string { return i.Token.Literal }
func (i Ident) String() string       { return i.Name }
func (i Ident) expressionNode()      {}
