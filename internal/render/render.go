package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/btouchard/monkey/internal/compiler/ast"
	"github.com/btouchard/monkey/internal/compiler/errors"
	"github.com/btouchard/monkey/internal/compiler/token"
	"github.com/btouchard/monkey/internal/store"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

var (
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	identStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	intStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	opStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	illegalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	eofStyle     = lipgloss.NewStyle().Faint(true)
	posStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Printer writes tokens, programs and sessions in one output format.
type Printer struct {
	w      io.Writer
	format Format
	color  bool
}

func NewPrinter(w io.Writer, format Format, color bool) *Printer {
	return &Printer{w: w, format: format, color: color}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) tokenStyle(t token.TokenType) lipgloss.Style {
	switch {
	case token.IsKeyword(t):
		return keywordStyle
	case t == token.IDENT:
		return identStyle
	case t == token.INT:
		return intStyle
	case t == token.ILLEGAL:
		return illegalStyle
	case t == token.EOF:
		return eofStyle
	}
	return opStyle
}

// tokenView is the serialised shape of a token.
type tokenView struct {
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal" yaml:"literal"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

func viewTokens(toks []token.Token) []tokenView {
	views := make([]tokenView, 0, len(toks))
	for _, tok := range toks {
		views = append(views, tokenView{
			Type:    string(tok.Type),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
		})
	}
	return views
}

type letView struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Line  int    `json:"line" yaml:"line"`
}

type programView struct {
	Statements []letView `json:"statements" yaml:"statements"`
	Errors     []string  `json:"errors" yaml:"errors"`
}

func viewProgram(prog *ast.Program, errs []*errors.CompileError) programView {
	v := programView{Statements: []letView{}, Errors: []string{}}
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.LetStmt:
			lv := letView{Name: s.Name.Name, Line: s.Token.Pos.Line}
			if s.Value != nil {
				lv.Value = s.Value.String()
			}
			v.Statements = append(v.Statements, lv)
		}
	}
	for _, e := range errs {
		v.Errors = append(v.Errors, e.Error())
	}
	return v
}

func (p *Printer) encode(v any) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", p.format)
}

// Tokens prints one token per line in text mode, a list otherwise.
func (p *Printer) Tokens(toks []token.Token) error {
	if p.format != FormatText {
		return p.encode(viewTokens(toks))
	}
	for _, tok := range toks {
		line := fmt.Sprintf("%s %s\n",
			p.style(posStyle, fmt.Sprintf("%-7s", tok.Pos.String())),
			p.style(p.tokenStyle(tok.Type), tok.String()))
		if _, err := io.WriteString(p.w, line); err != nil {
			return err
		}
	}
	return nil
}

// Program prints the parsed statements followed by the diagnostics.
func (p *Printer) Program(prog *ast.Program, errs []*errors.CompileError) error {
	if p.format != FormatText {
		return p.encode(viewProgram(prog, errs))
	}
	var b strings.Builder
	for _, stmt := range prog.Statements {
		b.WriteString(stmt.String())
		b.WriteString("\n")
	}
	for _, e := range errs {
		b.WriteString(p.style(errorStyle, e.Error()))
		b.WriteString("\n")
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Sessions prints a summary line per session.
func (p *Printer) Sessions(sessions []store.Session) error {
	if p.format != FormatText {
		if sessions == nil {
			sessions = []store.Session{}
		}
		return p.encode(sessions)
	}
	for _, s := range sessions {
		line := fmt.Sprintf("%s  %s  %-5s tokens=%d statements=%d errors=%d  %s\n",
			s.ID,
			p.style(posStyle, s.CreatedAt.Format("2006-01-02 15:04:05")),
			s.Mode, s.TokenCount, s.StatementCount, s.ErrorCount,
			summarize(s.Source, 40))
		if _, err := io.WriteString(p.w, line); err != nil {
			return err
		}
	}
	return nil
}

// Session prints one session with its tokens.
func (p *Printer) Session(s *store.Session) error {
	if p.format != FormatText {
		return p.encode(s)
	}
	header := fmt.Sprintf("session %s (%s, %s)\n%s\n", s.ID, s.Mode,
		s.CreatedAt.Format("2006-01-02 15:04:05"), s.Source)
	if _, err := io.WriteString(p.w, header); err != nil {
		return err
	}
	toks := make([]token.Token, 0, len(s.Tokens))
	for _, rec := range s.Tokens {
		toks = append(toks, rec.Token())
	}
	return p.Tokens(toks)
}

// summarize folds whitespace and cuts s to n display cells.
func summarize(s string, n int) string {
	return runewidth.Truncate(strings.Join(strings.Fields(s), " "), n, "...")
}
