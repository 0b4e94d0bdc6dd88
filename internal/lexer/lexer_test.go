package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `let x = 5 + 10
fn add(a, b) do
  a + b
end

if x > 10 then "big" else "small" end

match value do
  case Some(x) => x * 2
  case None => 0
end

[1, 2, 3] ++ [4, 5]

-- this is a comment
true && false || !true
`

	tests := []struct {
		kind    TokenKind
		literal string
	}{
		{LET, "let"}, {IDENT, "x"}, {ASSIGN, "="}, {INT, "5"}, {PLUS, "+"}, {INT, "10"}, {NEWLINE, "\\n"},

		{FN, "fn"}, {IDENT, "add"}, {LPAREN, "("}, {IDENT, "a"}, {COMMA, ","}, {IDENT, "b"}, {RPAREN, ")"}, {DO, "do"}, {NEWLINE, "\\n"},
		{IDENT, "a"}, {PLUS, "+"}, {IDENT, "b"}, {NEWLINE, "\\n"},
		{END, "end"}, {NEWLINE, "\\n"}, {NEWLINE, "\\n"},

		{IF, "if"}, {IDENT, "x"}, {GT, ">"}, {INT, "10"}, {THEN, "then"}, {STRING_CONTENT, "big"},
		{ELSE, "else"}, {STRING_CONTENT, "small"}, {END, "end"}, {NEWLINE, "\\n"}, {NEWLINE, "\\n"},

		{MATCH, "match"}, {IDENT, "value"}, {DO, "do"}, {NEWLINE, "\\n"},
		{CASE, "case"}, {IDENT, "Some"}, {LPAREN, "("}, {IDENT, "x"}, {RPAREN, ")"}, {FARROW, "=>"}, {IDENT, "x"}, {STAR, "*"}, {INT, "2"}, {NEWLINE, "\\n"},
		{CASE, "case"}, {IDENT, "None"}, {FARROW, "=>"}, {INT, "0"}, {NEWLINE, "\\n"},
		{END, "end"}, {NEWLINE, "\\n"}, {NEWLINE, "\\n"},

		{LBRACKET, "["}, {INT, "1"}, {COMMA, ","}, {INT, "2"}, {COMMA, ","}, {INT, "3"}, {RBRACKET, "]"},
		{APPEND, "++"}, {LBRACKET, "["}, {INT, "4"}, {COMMA, ","}, {INT, "5"}, {RBRACKET, "]"}, {NEWLINE, "\\n"}, {NEWLINE, "\\n"},

		{TRUE, "true"}, {AND, "&&"}, {FALSE, "false"}, {OR, "||"}, {NOT, "!"}, {TRUE, "true"}, {NEWLINE, "\\n"},

		{EOF, ""},
	}

	l := New(input, "test.snow")
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (%q)", i, tt.kind, tok.Kind, tok.Literal)
		}
		if tok.Literal != tt.literal {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.literal, tok.Literal)
		}
	}
}

func TestByteSpans(t *testing.T) {
	input := `let x = 5`
	l := New(input, "test.snow")

	tok := l.NextToken() // let
	if tok.Start != 0 || tok.End != 3 {
		t.Errorf("let: expected span [0,3), got [%d,%d)", tok.Start, tok.End)
	}

	tok = l.NextToken() // x
	if tok.Start != 4 || tok.End != 5 {
		t.Errorf("x: expected span [4,5), got [%d,%d)", tok.Start, tok.End)
	}
}

func TestFloatLiterals(t *testing.T) {
	input := `3.14 2.0 1e10 1.5e-3`
	tests := []struct {
		kind    TokenKind
		literal string
	}{
		{FLOAT, "3.14"}, {FLOAT, "2.0"}, {FLOAT, "1e10"}, {FLOAT, "1.5e-3"}, {EOF, ""},
	}
	l := New(input, "test.snow")
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind || tok.Literal != tt.literal {
			t.Fatalf("tests[%d]: expected %s %q, got %s %q", i, tt.kind, tt.literal, tok.Kind, tok.Literal)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	input := `"hello\nworld" "tab\there"`
	l := New(input, "test.snow")

	tok1 := l.NextToken()
	if tok1.Kind != STRING_CONTENT || tok1.Literal != "hello\nworld" {
		t.Fatalf("got %s %q", tok1.Kind, tok1.Literal)
	}
	tok2 := l.NextToken()
	if tok2.Kind != STRING_CONTENT || tok2.Literal != "tab\there" {
		t.Fatalf("got %s %q", tok2.Kind, tok2.Literal)
	}
}

func TestOperators(t *testing.T) {
	input := `+ - * / % == != < > <= >= && || ! -> => | ++ <> .. :: . ?`
	tests := []TokenKind{
		PLUS, MINUS, STAR, SLASH, PERCENT,
		EQ, NEQ, LT, GT, LTE, GTE,
		AND, OR, NOT,
		ARROW, FARROW,
		PIPE, APPEND, CONCAT, RANGE, DCOLON,
		DOT, QUESTION,
		EOF,
	}
	l := New(input, "test.snow")
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Kind != expected {
			t.Fatalf("tests[%d] - wrong kind. expected=%s, got=%s", i, expected, tok.Kind)
		}
	}
}

func TestActorKeywords(t *testing.T) {
	keywords := []string{
		"actor", "service", "supervisor", "spawn", "send", "receive",
		"self", "link", "monitor", "terminate", "trap", "after",
	}
	for _, kw := range keywords {
		l := New(kw, "test.snow")
		tok := l.NextToken()
		expected := LookupIdent(kw)
		if tok.Kind != expected {
			t.Errorf("keyword %q: expected %s, got %s", kw, expected, tok.Kind)
		}
		if tok.Kind == IDENT {
			t.Errorf("keyword %q was scanned as IDENT", kw)
		}
	}
}

func TestLineAndColumn(t *testing.T) {
	input := "let x = 5\nfn add(a, b) do\n  a + b\nend"
	l := New(input, "test.snow")

	tok := l.NextToken() // let
	if tok.Line != 1 || tok.Column != 1 {
		t.Errorf("let: expected 1:1, got %d:%d", tok.Line, tok.Column)
	}

	tok = l.NextToken() // x
	if tok.Line != 1 || tok.Column != 5 {
		t.Errorf("x: expected 1:5, got %d:%d", tok.Line, tok.Column)
	}

	for tok.Kind != FN {
		tok = l.NextToken()
	}
	if tok.Line != 2 || tok.Column != 1 {
		t.Errorf("fn: expected 2:1, got %d:%d", tok.Line, tok.Column)
	}
}

func TestComments(t *testing.T) {
	input := "-- leading comment\nlet x = 5 -- inline\nfn f() do x end"
	expected := []TokenKind{
		LET, IDENT, ASSIGN, INT, NEWLINE,
		FN, IDENT, LPAREN, RPAREN, DO, IDENT, END,
		EOF,
	}
	l := New(input, "test.snow")
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Kind != exp {
			t.Fatalf("tests[%d]: expected %s, got %s", i, exp, tok.Kind)
		}
	}
}

func TestQuasiquoteRegex(t *testing.T) {
	input := `regex/[a-z]+/i`
	l := New(input, "test.snow")
	tok := l.NextToken()
	if tok.Kind != REGEX_QUOTE {
		t.Fatalf("expected REGEX_QUOTE, got %s", tok.Kind)
	}
	if tok.Literal != "[a-z]+i" {
		t.Fatalf("unexpected regex literal: %q", tok.Literal)
	}
}

func TestTokenize(t *testing.T) {
	toks := New("let x = 1", "t.snow").Tokenize()
	if toks[len(toks)-1].Kind != EOF {
		t.Fatalf("Tokenize did not end in EOF")
	}
}
