package errors

import (
	"fmt"
	"strings"

	"github.com/btouchard/monkey/internal/compiler/token"
)

// Phase names the front-end stage that reported a diagnostic.
type Phase string

const (
	PhaseLexer  Phase = "lexer"
	PhaseParser Phase = "parser"
)

// Position is a token position qualified by the source name. File is empty
// for sources typed at the REPL or passed as arguments.
type Position struct {
	File   string
	Line   int
	Column int
}

// At places a diagnostic on pos inside file.
func At(file string, pos token.Position) Position {
	return Position{File: file, Line: pos.Line, Column: pos.Column}
}

func (p Position) String() string {
	loc := fmt.Sprintf("%d:%d", p.Line, p.Column)
	if p.File == "" {
		return loc
	}
	return p.File + ":" + loc
}

// CompileError reports one statement the front end had to drop.
type CompileError struct {
	Pos     Position
	Phase   Phase
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Pos, e.Message)
}

// ErrorList accumulates diagnostics in source order. The zero value is ready
// to use.
type ErrorList struct {
	Errors []*CompileError
}

// Addf records a diagnostic with a formatted message.
func (el *ErrorList) Addf(pos Position, phase Phase, format string, args ...any) {
	el.Errors = append(el.Errors, &CompileError{
		Pos:     pos,
		Phase:   phase,
		Message: fmt.Sprintf(format, args...),
	})
}

func (el *ErrorList) Len() int {
	return len(el.Errors)
}

// Err returns nil when nothing was recorded, the list otherwise.
func (el *ErrorList) Err() error {
	if el.Len() == 0 {
		return nil
	}
	return el
}

// Error joins every diagnostic, one per line.
func (el *ErrorList) Error() string {
	msgs := make([]string, 0, el.Len())
	for _, e := range el.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the individual diagnostics to errors.Is and errors.As.
func (el *ErrorList) Unwrap() []error {
	errs := make([]error, 0, el.Len())
	for _, e := range el.Errors {
		errs = append(errs, e)
	}
	return errs
}
