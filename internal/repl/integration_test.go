package repl

import (
	"bytes"
	"strings"
	"testing"
)

func TestProcessInputEvaluatesBareExpression(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	r.ProcessInput("2 + 2", &buf)
	if !strings.Contains(buf.String(), "4") {
		t.Errorf("expected output to contain 4, got %q", buf.String())
	}
}

func TestProcessInputAccumulatesDeclarations(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	r.ProcessInput("struct Point do\n  x: Int\n  y: Int\nend", &buf)
	if strings.Contains(buf.String(), "error") {
		t.Fatalf("unexpected error adding struct declaration: %s", buf.String())
	}
	if len(r.decls) != 1 {
		t.Fatalf("expected one accumulated declaration, got %d", len(r.decls))
	}
}

func TestProcessInputFlagsNonExhaustiveMatchInExpression(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	r.ProcessInput("type Option do\n  case Some(Int)\n  case None\nend", &buf)
	buf.Reset()

	r.ProcessInput("match Some(1) do\n  case Some(x) => x\nend", &buf)
	if !strings.Contains(buf.String(), "PAT001") {
		t.Errorf("expected a PAT001 non-exhaustive match report, got %q", buf.String())
	}
}

func TestHandleCommandReset(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	r.ProcessInput("struct Point do\n  x: Int\nend", &buf)
	if len(r.decls) != 1 {
		t.Fatalf("expected one declaration before reset")
	}
	buf.Reset()
	r.HandleCommand(":reset", &buf)
	if len(r.decls) != 0 {
		t.Errorf("expected :reset to clear accumulated declarations")
	}
}

func TestHandleCommandHelpPrintsUsage(t *testing.T) {
	r := New()
	var buf bytes.Buffer
	r.HandleCommand(":help", &buf)
	if !strings.Contains(buf.String(), "REPL commands") {
		t.Errorf("expected help output to list commands, got %q", buf.String())
	}
}
