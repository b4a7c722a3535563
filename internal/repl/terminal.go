package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterh/liner"
)

// Terminal is a liner-backed LineReader that persists its history to a file.
type Terminal struct {
	*liner.State
	historyFile string
}

// OpenTerminal puts the terminal in raw mode and loads history from
// historyFile when it exists. An empty historyFile disables persistence.
func OpenTerminal(historyFile string) *Terminal {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)

	t := &Terminal{State: ln, historyFile: historyFile}
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	return t
}

// Prompt reads a line. Ctrl-C ends input the same way Ctrl-D does.
func (t *Terminal) Prompt(prompt string) (string, error) {
	line, err := t.State.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	return line, err
}

// Close writes the history back and restores the terminal.
func (t *Terminal) Close() error {
	var saveErr error
	if t.historyFile != "" {
		saveErr = t.saveHistory()
	}
	if err := t.State.Close(); err != nil {
		return err
	}
	return saveErr
}

func (t *Terminal) saveHistory() error {
	if dir := filepath.Dir(t.historyFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
	}
	f, err := os.Create(t.historyFile)
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	defer f.Close()
	if _, err := t.WriteHistory(f); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}
