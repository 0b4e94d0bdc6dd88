package repl

import "testing"

func TestNeedsContinuationBalancesDoEnd(t *testing.T) {
	if needsContinuation("1 + 2") {
		t.Fatal("expected a complete expression not to need continuation")
	}
	if !needsContinuation("if true do") {
		t.Fatal("expected an open 'do' to need continuation")
	}
	if needsContinuation("if true do\n  1\nend") {
		t.Fatal("expected a balanced do/end block not to need continuation")
	}
}

func TestNeedsContinuationBalancesParens(t *testing.T) {
	if !needsContinuation("(1, 2") {
		t.Fatal("expected an open paren to need continuation")
	}
	if needsContinuation("(1, 2)") {
		t.Fatal("expected a balanced paren group not to need continuation")
	}
}

func TestIsDeclarationRecognizesKeywords(t *testing.T) {
	cases := map[string]bool{
		"fn square(x) -> Int do x * x end": true,
		"struct Point do\n  x: Int\nend":   true,
		"1 + 2":                            false,
		"square(3)":                        false,
	}
	for src, want := range cases {
		if got := isDeclaration(src); got != want {
			t.Errorf("isDeclaration(%q) = %v, want %v", src, got, want)
		}
	}
}
