package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/snowlang/snow/internal/cst"
	"github.com/snowlang/snow/internal/lexer"
	"github.com/snowlang/snow/internal/types"
)

// Value is the tiny REPL result representation — just enough to echo
// back what a literal/arithmetic expression evaluates to, grounded on
// the teacher's eval.Value shape (a closed set of scalar wrappers) but
// with no environment, no closures and no user-defined functions: the
// pipeline doesn't lower expression bodies (see internal/pipeline's
// design notes), so there is nothing here to call into.
type Value interface {
	value()
	String() string
}

type intValue int64

func (intValue) value()           {}
func (v intValue) String() string { return strconv.FormatInt(int64(v), 10) }

type floatValue float64

func (floatValue) value()           {}
func (v floatValue) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

type boolValue bool

func (boolValue) value() {}
func (v boolValue) String() string {
	if v {
		return "true"
	}
	return "false"
}

type stringValue string

func (stringValue) value()           {}
func (v stringValue) String() string { return strconv.Quote(string(v)) }

type tupleValue string

func (tupleValue) value()           {}
func (v tupleValue) String() string { return string(v) }

func formatValue(v Value) string {
	if v == nil {
		return "()"
	}
	return v.String()
}

// evalLiteral evaluates (and types) a restricted expression grammar:
// literals, unary -/not, tuples, and binary arithmetic/comparison/boolean/
// string-concat operators. Anything else (calls, names, pattern
// matches, actor operations) returns an error rather than a wrong
// answer — this is a calculator for REPL demonstration purposes, not a
// general evaluator.
func evalLiteral(n *cst.Node) (Value, types.Ty, error) {
	if n == nil {
		return nil, types.Unit(), fmt.Errorf("empty expression")
	}
	switch n.Kind {
	case cst.LITERAL:
		return evalLiteralToken(n)
	case cst.UNARY_EXPR:
		return evalUnary(n)
	case cst.BINARY_EXPR:
		return evalBinary(n)
	case cst.TUPLE_EXPR:
		return evalTuple(n)
	default:
		return nil, nil, fmt.Errorf("%s is not supported by the REPL's expression evaluator", n.Kind)
	}
}

func evalLiteralToken(n *cst.Node) (Value, types.Ty, error) {
	if tok := n.Token0(lexer.INT); tok != nil {
		i, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid integer literal %q: %w", tok.Literal, err)
		}
		return intValue(i), types.Int(), nil
	}
	if tok := n.Token0(lexer.FLOAT); tok != nil {
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid float literal %q: %w", tok.Literal, err)
		}
		return floatValue(f), types.Float(), nil
	}
	if n.Token0(lexer.TRUE) != nil {
		return boolValue(true), types.Bool(), nil
	}
	if n.Token0(lexer.FALSE) != nil {
		return boolValue(false), types.Bool(), nil
	}
	if tok := n.Token0(lexer.STRING_CONTENT); tok != nil {
		return stringValue(tok.Literal), types.String(), nil
	}
	return nil, nil, fmt.Errorf("unsupported literal")
}

func firstChildExpr(n *cst.Node) *cst.Node {
	for _, c := range n.Children {
		if !c.IsToken() {
			return c
		}
	}
	return nil
}

func childExprs(n *cst.Node) []*cst.Node {
	var out []*cst.Node
	for _, c := range n.Children {
		if !c.IsToken() {
			out = append(out, c)
		}
	}
	return out
}

func evalUnary(n *cst.Node) (Value, types.Ty, error) {
	operand := firstChildExpr(n)
	val, ty, err := evalLiteral(operand)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case n.Token0(lexer.MINUS) != nil:
		switch v := val.(type) {
		case intValue:
			return -v, ty, nil
		case floatValue:
			return -v, ty, nil
		}
		return nil, nil, fmt.Errorf("unary '-' needs a number, got %s", ty)
	case n.Token0(lexer.NOT) != nil:
		if b, ok := val.(boolValue); ok {
			return !b, ty, nil
		}
		return nil, nil, fmt.Errorf("unary 'not' needs a Bool, got %s", ty)
	default:
		return nil, nil, fmt.Errorf("unsupported unary operator")
	}
}

// evalTuple handles TUPLE_EXPR, which the grammar uses both for a real
// tuple and for a single parenthesized expression (distinguished only by
// child count, per cst/expr.go's parseGroupOrTuple): a lone child is
// unwrapped rather than reported as a one-tuple.
func evalTuple(n *cst.Node) (Value, types.Ty, error) {
	children := childExprs(n)
	if len(children) == 1 {
		return evalLiteral(children[0])
	}
	elems := make([]types.Ty, 0, len(children))
	var parts []string
	for _, c := range children {
		v, ty, err := evalLiteral(c)
		if err != nil {
			return nil, nil, err
		}
		elems = append(elems, ty)
		parts = append(parts, formatValue(v))
	}
	return tupleValue("(" + strings.Join(parts, ", ") + ")"), types.TyTuple{Elems: elems}, nil
}

func evalBinary(n *cst.Node) (Value, types.Ty, error) {
	children := childExprs(n)
	if len(children) != 2 {
		return nil, nil, fmt.Errorf("binary expression needs two operands, found %d", len(children))
	}
	lv, lt, err := evalLiteral(children[0])
	if err != nil {
		return nil, nil, err
	}
	rv, rt, err := evalLiteral(children[1])
	if err != nil {
		return nil, nil, err
	}

	op := binaryOperator(n)
	switch op {
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return evalArith(op, lv, rv)
	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE:
		return evalCompare(op, lv, rv)
	case lexer.AND, lexer.OR:
		return evalBoolOp(op, lv, rv)
	case lexer.CONCAT:
		ls, lok := lv.(stringValue)
		rs, rok := rv.(stringValue)
		if !lok || !rok {
			return nil, nil, fmt.Errorf("'<>' needs two Strings, got %s and %s", lt, rt)
		}
		return ls + rs, types.String(), nil
	default:
		return nil, nil, fmt.Errorf("operator not supported by the REPL's expression evaluator")
	}
}

func binaryOperator(n *cst.Node) lexer.TokenKind {
	for _, c := range n.Children {
		if c.IsToken() {
			return c.Token.Kind
		}
	}
	return lexer.ILLEGAL
}

func evalArith(op lexer.TokenKind, l, r Value) (Value, types.Ty, error) {
	if li, lok := l.(intValue); lok {
		if ri, rok := r.(intValue); rok {
			switch op {
			case lexer.PLUS:
				return li + ri, types.Int(), nil
			case lexer.MINUS:
				return li - ri, types.Int(), nil
			case lexer.STAR:
				return li * ri, types.Int(), nil
			case lexer.SLASH:
				if ri == 0 {
					return nil, nil, fmt.Errorf("division by zero")
				}
				return li / ri, types.Int(), nil
			case lexer.PERCENT:
				if ri == 0 {
					return nil, nil, fmt.Errorf("division by zero")
				}
				return li % ri, types.Int(), nil
			}
		}
	}
	lf, lok := toFloat(l)
	rf, rok := toFloat(r)
	if !lok || !rok {
		return nil, nil, fmt.Errorf("arithmetic needs two numbers")
	}
	switch op {
	case lexer.PLUS:
		return floatValue(lf + rf), types.Float(), nil
	case lexer.MINUS:
		return floatValue(lf - rf), types.Float(), nil
	case lexer.STAR:
		return floatValue(lf * rf), types.Float(), nil
	case lexer.SLASH:
		if rf == 0 {
			return nil, nil, fmt.Errorf("division by zero")
		}
		return floatValue(lf / rf), types.Float(), nil
	}
	return nil, nil, fmt.Errorf("unsupported arithmetic operator")
}

func toFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case intValue:
		return float64(n), true
	case floatValue:
		return float64(n), true
	default:
		return 0, false
	}
}

func evalCompare(op lexer.TokenKind, l, r Value) (Value, types.Ty, error) {
	lf, lok := toFloat(l)
	rf, rok := toFloat(r)
	if lok && rok {
		switch op {
		case lexer.EQ:
			return boolValue(lf == rf), types.Bool(), nil
		case lexer.NEQ:
			return boolValue(lf != rf), types.Bool(), nil
		case lexer.LT:
			return boolValue(lf < rf), types.Bool(), nil
		case lexer.GT:
			return boolValue(lf > rf), types.Bool(), nil
		case lexer.LTE:
			return boolValue(lf <= rf), types.Bool(), nil
		case lexer.GTE:
			return boolValue(lf >= rf), types.Bool(), nil
		}
	}
	ls, lsok := l.(stringValue)
	rs, rsok := r.(stringValue)
	if lsok && rsok {
		switch op {
		case lexer.EQ:
			return boolValue(ls == rs), types.Bool(), nil
		case lexer.NEQ:
			return boolValue(ls != rs), types.Bool(), nil
		}
	}
	return nil, nil, fmt.Errorf("comparison operands must be the same comparable type")
}

func evalBoolOp(op lexer.TokenKind, l, r Value) (Value, types.Ty, error) {
	lb, lok := l.(boolValue)
	rb, rok := r.(boolValue)
	if !lok || !rok {
		return nil, nil, fmt.Errorf("'%s' needs two Bools", op)
	}
	switch op {
	case lexer.AND:
		return lb && rb, types.Bool(), nil
	case lexer.OR:
		return lb || rb, types.Bool(), nil
	}
	return nil, nil, fmt.Errorf("unsupported boolean operator")
}
