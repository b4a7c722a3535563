//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/btouchard/monkey/internal/compiler/lexer"
	"github.com/btouchard/monkey/internal/compiler/parser"
)

func main() {
	js.Global().Set("lexMonkey", js.FuncOf(wrap(lexMonkey)))
	js.Global().Set("parseMonkey", js.FuncOf(wrap(parseMonkey)))

	// Keep the program alive
	select {}
}

// wrap checks the single source argument and turns a panic into an error
// result so the page never loses the Go runtime.
func wrap(fn func(source string) map[string]interface{}) func(js.Value, []js.Value) interface{} {
	return func(this js.Value, args []js.Value) (out interface{}) {
		defer func() {
			if r := recover(); r != nil {
				out = js.ValueOf(errorResult(fmt.Sprintf("panic: %v", r)))
			}
		}()

		if len(args) != 1 {
			return js.ValueOf(errorResult("expected 1 argument (source code)"))
		}
		return js.ValueOf(fn(args[0].String()))
	}
}

func errorResult(msg string) map[string]interface{} {
	return map[string]interface{}{
		"tokens":     []interface{}{},
		"statements": []interface{}{},
		"errors":     []interface{}{msg},
	}
}

// lexMonkey returns every token of source, EOF included.
func lexMonkey(source string) map[string]interface{} {
	toks := lexer.Tokenize(source)

	jsTokens := make([]interface{}, len(toks))
	for i, tok := range toks {
		jsTokens[i] = map[string]interface{}{
			"type":    string(tok.Type),
			"literal": tok.Literal,
			"line":    tok.Pos.Line,
			"column":  tok.Pos.Column,
			"text":    tok.String(),
		}
	}
	return map[string]interface{}{
		"tokens": jsTokens,
		"errors": []interface{}{},
	}
}

// parseMonkey returns the let statements as source text and the diagnostics
// for the statements that were dropped.
func parseMonkey(source string) map[string]interface{} {
	prog, errs := parser.Parse(source)

	statements := make([]interface{}, len(prog.Statements))
	for i, stmt := range prog.Statements {
		statements[i] = stmt.String()
	}
	jsErrors := make([]interface{}, len(errs))
	for i, err := range errs {
		jsErrors[i] = err.Error()
	}
	return map[string]interface{}{
		"program":    prog.String(),
		"statements": statements,
		"names":      toInterfaces(prog.Names()),
		"errors":     jsErrors,
	}
}

func toInterfaces(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
