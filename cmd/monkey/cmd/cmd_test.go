package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/btouchard/monkey/internal/config"
	"github.com/btouchard/monkey/internal/store"
)

// run executes the command line against a fresh app and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfig, "")

	a := newApp()
	defer a.close()

	root := a.rootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--no-color"}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestLexArguments(t *testing.T) {
	out, err := run(t, "", "lex", "let five = 5;", "10 != 9")
	if err != nil {
		t.Fatalf("lex error = %v", err)
	}

	if n := strings.Count(out, "EOF"); n != 2 {
		t.Errorf("expected one EOF per argument, got %d:\n%s", n, out)
	}
	for _, want := range []string{`IDENT("five")`, `INT("5")`, "!=", `INT("9")`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestLexStdinJSON(t *testing.T) {
	out, err := run(t, "let x = @;", "lex", "--format", "json")
	if err != nil {
		t.Fatalf("lex error = %v", err)
	}

	var toks []struct {
		Type    string `json:"type"`
		Literal string `json:"literal"`
	}
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(toks) != 6 {
		t.Fatalf("expected 6 tokens, got %d", len(toks))
	}
	if toks[3].Type != "ILLEGAL" || toks[3].Literal != "@" {
		t.Errorf("token 3 = %+v", toks[3])
	}
}

func TestLexFile(t *testing.T) {
	out, err := run(t, "", "lex", "-f", filepath.Join("..", "..", "..", "examples", "first.mk"))
	if err != nil {
		t.Fatalf("lex error = %v", err)
	}
	if !strings.Contains(out, "FUNCTION") || strings.Contains(out, "ILLEGAL") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestLexRejectsFileAndArgs(t *testing.T) {
	if _, err := run(t, "", "lex", "-f", "x.mk", "let"); err == nil {
		t.Fatal("expected an error for --file with arguments")
	}
}

func TestLexUnknownFormat(t *testing.T) {
	_, err := run(t, "", "lex", "--format", "xml", "x")
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("error = %v", err)
	}
}

func TestParse(t *testing.T) {
	out, err := run(t, "", "parse", "let x = 5;\nlet y = 10;")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if out != "let x = x;\nlet y = y;\n" {
		t.Errorf("output = %q", out)
	}
}

func TestParseReportsDroppedStatements(t *testing.T) {
	out, err := run(t, "", "parse", "let x = 5; let = 1;")
	if err == nil {
		t.Fatal("expected an error when statements are dropped")
	}
	if err.Error() != `[parser] 1:16: expected IDENT, got = ("=")` {
		t.Errorf("error = %q", err.Error())
	}
	if !strings.Contains(out, "let x = x;") {
		t.Errorf("valid statement missing:\n%s", out)
	}
	if !strings.Contains(out, "[parser] 1:16: expected IDENT") {
		t.Errorf("diagnostic missing:\n%s", out)
	}
}

func TestParseFileNamesDiagnostics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mk")
	if err := os.WriteFile(path, []byte("let 5 = 1;"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "parse", "-f", path)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(out, path+":1:5") {
		t.Errorf("diagnostic does not carry the file name:\n%s", out)
	}
}

func TestParseTooManyArgs(t *testing.T) {
	if _, err := run(t, "", "parse", "let a = 1;", "let b = 2;"); err == nil {
		t.Fatal("expected an error for two sources")
	}
}

func TestHistoryRequiresStore(t *testing.T) {
	_, err := run(t, "", "history")
	if err == nil || !strings.Contains(err.Error(), "no session store") {
		t.Fatalf("error = %v", err)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	db := filepath.Join(t.TempDir(), "sessions.db")

	if _, err := run(t, "", "--db", db, "lex", "let a = 1;"); err != nil {
		t.Fatalf("lex error = %v", err)
	}
	if _, err := run(t, "", "--db", db, "parse", "let b = 2;"); err != nil {
		t.Fatalf("parse error = %v", err)
	}

	out, err := run(t, "", "--db", db, "history", "--format", "json")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	var sessions []store.Session
	if err := json.Unmarshal([]byte(out), &sessions); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}

	var parsed store.Session
	for _, s := range sessions {
		if s.Mode == config.ModeParse {
			parsed = s
		}
	}
	if parsed.ID == "" || parsed.StatementCount != 1 {
		t.Fatalf("parse session = %+v", parsed)
	}

	out, err = run(t, "", "--db", db, "history", "show", parsed.ID)
	if err != nil {
		t.Fatalf("history show error = %v", err)
	}
	if !strings.Contains(out, "let b = 2;") || !strings.Contains(out, `IDENT("b")`) {
		t.Errorf("unexpected show output:\n%s", out)
	}

	if _, err := run(t, "", "--db", db, "history", "rm", parsed.ID); err != nil {
		t.Fatalf("history rm error = %v", err)
	}
	if _, err := run(t, "", "--db", db, "history", "show", parsed.ID); err == nil {
		t.Fatal("expected an error for a deleted session")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "monkey.toml")
	content := "[store]\nenabled = true\npath = \"" + filepath.Join(dir, "s.db") + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "", "--config", path, "lex", "x"); err != nil {
		t.Fatalf("lex error = %v", err)
	}
	out, err := run(t, "", "--config", path, "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, "tokens=2") {
		t.Errorf("recorded session missing:\n%s", out)
	}
}

func TestBadConfigFails(t *testing.T) {
	if _, err := run(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml"), "lex", "x"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
