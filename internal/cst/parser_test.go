package cst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowlang/snow/internal/lexer"
)

func parse(t *testing.T, src string) *Node {
	t.Helper()
	toks := lexer.New(src, "test.snow").Tokenize()
	tree, errs := Parse(toks)
	require.Empty(t, errs, "unexpected parse errors: %v", errs)
	return tree
}

func TestParseLetBinding(t *testing.T) {
	tree := parse(t, "let x = 1 + 2\n")
	lets := findAll(tree, LET_BINDING)
	require.Len(t, lets, 1)
	binExpr := findAll(lets[0], BINARY_EXPR)
	assert.Len(t, binExpr, 1)
}

func TestParseIfExpr(t *testing.T) {
	tree := parse(t, "let r = if x > 0 then 1 else 0 end\n")
	ifs := findAll(tree, IF_EXPR)
	require.Len(t, ifs, 1)
	assert.NotNil(t, ifs[0].FirstChild(ELSE_BRANCH))
}

func TestParseFnDef(t *testing.T) {
	tree := parse(t, "fn add(a, b) -> Int do\n  a + b\nend\n")
	fns := findAll(tree, FN_DEF)
	require.Len(t, fns, 1)
	params := fns[0].FirstChild(PARAM_LIST)
	require.NotNil(t, params)
	assert.Len(t, params.ChildrenOf(PARAM), 2)
}

func TestParseCallChain(t *testing.T) {
	tree := parse(t, "let r = point.x.add(1).sub(2)\n")
	calls := findAll(tree, CALL_EXPR)
	assert.Len(t, calls, 2)
	fields := findAll(tree, FIELD_ACCESS)
	assert.Len(t, fields, 3)
}

func TestParseMatchExpr(t *testing.T) {
	tree := parse(t, `let r = match v do
  case Some(x) => x
  case None => 0
end
`)
	matches := findAll(tree, CASE_EXPR)
	require.Len(t, matches, 1)
	arms := findAll(matches[0], MATCH_ARM)
	assert.Len(t, arms, 2)
}

func TestParseActorDef(t *testing.T) {
	tree := parse(t, `actor Counter(start) do
  receive do
    case Inc => send self, start
  end
end
`)
	actors := findAll(tree, ACTOR_DEF)
	require.Len(t, actors, 1)
	recv := findAll(actors[0], RECEIVE_EXPR)
	assert.Len(t, recv, 1)
}

func TestParseServiceAndSupervisor(t *testing.T) {
	tree := parse(t, `service Counter do
  call get() do
    0
  end
end

supervisor Root do
  strategy one_for_one
  child Counter
end
`)
	assert.Len(t, findAll(tree, SERVICE_DEF), 1)
	assert.Len(t, findAll(tree, CALL_HANDLER), 1)
	assert.Len(t, findAll(tree, SUPERVISOR_DEF), 1)
	assert.Len(t, findAll(tree, CHILD_SPEC_DEF), 1)
}

func TestParseSumTypeAndStruct(t *testing.T) {
	tree := parse(t, `type Option do
  case Some(Int)
  case None
end

struct Point do
  x: Int
  y: Int
end
`)
	assert.Len(t, findAll(tree, SUM_TYPE_DEF), 1)
	assert.Len(t, findAll(tree, VARIANT_DEF), 2)
	assert.Len(t, findAll(tree, STRUCT_DEF), 1)
	assert.Len(t, findAll(tree, STRUCT_FIELD), 2)
}

func TestPratt_PipePrecedenceLoosestThanArithmetic(t *testing.T) {
	// `a + 1 |> f` should parse as `(a + 1) |> f`, not `a + (1 |> f)`.
	tree := parse(t, "let r = a + 1 |> f\n")
	pipes := findAll(tree, PIPE_EXPR)
	require.Len(t, pipes, 1)
	assert.Len(t, findAll(pipes[0], BINARY_EXPR), 1)
}

func TestMissingEndReportsRelatedSpan(t *testing.T) {
	toks := lexer.New("fn add(a, b) do\n  a + b\n", "test.snow").Tokenize()
	_, errs := Parse(toks)
	require.NotEmpty(t, errs)
	assert.Equal(t, "PAR010", errs[0].Code)
}

// findAll walks the tree collecting every node of the given kind.
func findAll(n *Node, kind NodeKind) []*Node {
	var out []*Node
	if !n.IsToken() && n.Kind == kind {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, findAll(c, kind)...)
	}
	return out
}
