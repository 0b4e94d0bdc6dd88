package format

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/snowlang/snow/internal/cst"
	"github.com/snowlang/snow/internal/lexer"
)

func parseFile(t *testing.T, src string) cst.File {
	t.Helper()
	toks := lexer.New(src, "test.snow").Tokenize()
	tree, errs := cst.Parse(toks)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return cst.NewFile(tree)
}

func TestFormatFunction(t *testing.T) {
	src := "fn   add(x:Int,y:Int) -> Int do\nx+y\nend\n"
	got := Format(parseFile(t, src))
	want := "fn add(x: Int, y: Int) -> Int do\n  x + y\nend\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatStruct(t *testing.T) {
	src := "struct   Point do\nx: Int\ny: Int\nend\n"
	got := Format(parseFile(t, src))
	want := "struct Point do\n  x: Int\n  y: Int\nend\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatSumType(t *testing.T) {
	src := "type Option do\ncase Some(Int)\ncase None\nend\n"
	got := Format(parseFile(t, src))
	want := "type Option do\n  case Some(Int)\n  case None\nend\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatIfElse(t *testing.T) {
	src := "fn max(a:Int,b:Int) -> Int do\nif a>b then\na\nelse\nb\nend\nend\n"
	got := Format(parseFile(t, src))
	if !strings.Contains(got, "if a > b then") || !strings.Contains(got, "else") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestFormatMatch(t *testing.T) {
	src := "type Option do\ncase Some(Int)\ncase None\nend\n\n" +
		"fn unwrap(o:Option) -> Int do\nmatch o do\ncase Some(x) => x\ncase None => 0\nend\nend\n"
	got := Format(parseFile(t, src))
	if !strings.Contains(got, "match o do") || !strings.Contains(got, "case Some(x) =>") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestFormatActorWithReceive(t *testing.T) {
	src := "actor Counter(start) do\nreceive do\ncase Increment => self\nend\nend\n"
	got := Format(parseFile(t, src))
	if !strings.Contains(got, "actor Counter(start) do") || !strings.Contains(got, "receive do") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestFormatStructLiteralAndCall(t *testing.T) {
	src := "fn origin() -> Point do\nmake(Point { x: 0, y: 0 })\nend\n"
	got := Format(parseFile(t, src))
	if !strings.Contains(got, "Point { x: 0, y: 0 }") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	src := "fn add(x: Int, y: Int) -> Int do\n  x + y\nend\n"
	once := Format(parseFile(t, src))
	twice := Format(parseFile(t, once))
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("formatting is not idempotent (-once +twice):\n%s", diff)
	}
}
