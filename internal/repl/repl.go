package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/btouchard/monkey/internal/compiler/ast"
	"github.com/btouchard/monkey/internal/compiler/lexer"
	"github.com/btouchard/monkey/internal/compiler/parser"
	"github.com/btouchard/monkey/internal/compiler/token"
	"github.com/btouchard/monkey/internal/config"
	"github.com/btouchard/monkey/internal/logging"
	"github.com/btouchard/monkey/internal/render"
	"github.com/btouchard/monkey/internal/store"
)

const help = `Commands:
  :help              show this message
  :mode [lex|parse]  show or switch the evaluation mode
  :quit              leave the REPL
Anything else is lexed (and parsed in parse mode) as Monkey source.`

// LineReader is the line-editing front end. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// REPL reads one line at a time and prints the tokens (lex mode) or the
// parsed program (parse mode) for it.
type REPL struct {
	in      LineReader
	out     io.Writer
	prompt  string
	mode    string
	printer *render.Printer
	store   *store.Store
	log     *slog.Logger
}

type Option func(*REPL)

// WithStore records every evaluated line in s.
func WithStore(s *store.Store) Option {
	return func(r *REPL) { r.store = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *REPL) { r.log = l }
}

func New(cfg config.REPLConfig, in LineReader, out io.Writer, opts ...Option) *REPL {
	r := &REPL{
		in:      in,
		out:     out,
		prompt:  cfg.Prompt,
		mode:    cfg.Mode,
		printer: render.NewPrinter(out, render.FormatText, cfg.Color),
		log:     logging.Discard(),
	}
	if r.mode == "" {
		r.mode = config.ModeLex
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the current evaluation mode.
func (r *REPL) Mode() string {
	return r.mode
}

// Run loops until the reader reports io.EOF, the user types :quit or ctx is
// cancelled.
func (r *REPL) Run(ctx context.Context) error {
	r.log.Debug("repl started", "mode", r.mode)
	defer r.log.Debug("repl stopped")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := r.in.Prompt(r.prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		r.in.AppendHistory(line)

		if strings.HasPrefix(trimmed, ":") {
			if quit := r.command(trimmed); quit {
				return nil
			}
			continue
		}

		if err := r.Eval(ctx, line); err != nil {
			return err
		}
	}
}

// command handles a ':' meta-command and reports whether the REPL should stop.
func (r *REPL) command(line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintln(r.out, help)
	case ":mode":
		if len(fields) == 1 {
			fmt.Fprintf(r.out, "mode: %s\n", r.mode)
			break
		}
		switch fields[1] {
		case config.ModeLex, config.ModeParse:
			r.mode = fields[1]
			fmt.Fprintf(r.out, "mode: %s\n", r.mode)
		default:
			fmt.Fprintf(r.out, "unknown mode %q (want %s or %s)\n", fields[1], config.ModeLex, config.ModeParse)
		}
	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for help.\n", fields[0])
	}
	return false
}

// Eval lexes line with a fresh lexer and prints the result for the current
// mode. Only output and store failures are returned.
func (r *REPL) Eval(ctx context.Context, line string) error {
	toks := lexer.Tokenize(line)

	switch r.mode {
	case config.ModeParse:
		p := parser.New(lexer.New(line))
		prog := p.ParseProgram()
		errs := p.Errors()
		r.log.Debug("parsed line", "statements", len(prog.Statements), "errors", len(errs))
		if err := r.printer.Program(prog, errs); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return r.record(ctx, line, toks, prog, len(errs))
	default:
		r.log.Debug("lexed line", "tokens", len(toks))
		if err := r.printer.Tokens(toks); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return r.record(ctx, line, toks, nil, 0)
	}
}

// record journals the line when a store is attached. A failed write is
// logged and does not stop the REPL.
func (r *REPL) record(ctx context.Context, line string, toks []token.Token, prog *ast.Program, errCount int) error {
	if r.store == nil {
		return nil
	}
	session, err := r.store.Record(ctx, line, r.mode, toks, prog, errCount)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.log.Warn("recording session failed", "error", err)
		return nil
	}
	r.log.Debug("session recorded", "id", session.ID)
	return nil
}
