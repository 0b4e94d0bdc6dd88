// Package cst builds the concrete syntax tree that Parse returns: every
// token the lexer emits is a leaf, and whitespace is recoverable as the
// gaps between token offsets. `--` comments are skipped by the lexer and
// are not in the tree. The typed view in view.go wraps this tree instead
// of owning a second, parallel AST, so error spans point at exact text
// without a separate mapping.
package cst

import "fmt"

// NodeKind identifies a composite CST node. Kept Go-idiomatic as a
// uint16-backed type with a String() method rather than the derive-macro
// enum the grammar was grounded on.
type NodeKind uint16

const (
	TOMBSTONE NodeKind = iota
	ERROR_NODE

	SOURCE_FILE

	// Declarations
	MODULE_DEF
	IMPORT_DECL
	FROM_IMPORT_DECL
	IMPORT_LIST
	FN_DEF
	STRUCT_DEF
	STRUCT_FIELD
	SUM_TYPE_DEF
	VARIANT_DEF
	VARIANT_FIELD
	TYPE_ALIAS_DEF
	INTERFACE_DEF
	INTERFACE_METHOD
	IMPL_DEF
	WHERE_CLAUSE
	TRAIT_BOUND
	GENERIC_PARAM_LIST
	GENERIC_ARG_LIST
	VISIBILITY

	// Concurrency declarations
	ACTOR_DEF
	SERVICE_DEF
	CALL_HANDLER
	CAST_HANDLER
	SUPERVISOR_DEF
	CHILD_SPEC_DEF
	STRATEGY_CLAUSE
	RESTART_LIMIT
	SECONDS_LIMIT

	// Statements / bindings
	LET_BINDING
	RETURN_EXPR
	BLOCK

	// Expressions
	IF_EXPR
	ELSE_BRANCH
	CASE_EXPR
	MATCH_ARM
	GUARD_CLAUSE
	BINARY_EXPR
	UNARY_EXPR
	CALL_EXPR
	PIPE_EXPR
	FIELD_ACCESS
	INDEX_EXPR
	TUPLE_EXPR
	CLOSURE_EXPR
	TRAILING_CLOSURE
	FN_EXPR_BODY
	STRING_EXPR
	INTERPOLATION
	LITERAL
	STRUCT_LITERAL
	STRUCT_LITERAL_FIELD
	OPTION_TYPE
	RESULT_TYPE

	// Concurrency expressions
	SPAWN_EXPR
	SEND_EXPR
	RECEIVE_EXPR
	RECEIVE_ARM
	SELF_EXPR
	LINK_EXPR
	AFTER_CLAUSE
	TERMINATE_CLAUSE

	// Names / paths / types
	NAME
	NAME_REF
	PATH
	TYPE_ANNOTATION

	// Params / args
	PARAM_LIST
	PARAM
	ARG_LIST

	// Patterns
	WILDCARD_PAT
	IDENT_PAT
	LITERAL_PAT
	TUPLE_PAT
	STRUCT_PAT
	CONSTRUCTOR_PAT
	OR_PAT
	AS_PAT
)

var nodeNames = map[NodeKind]string{
	TOMBSTONE:  "TOMBSTONE",
	ERROR_NODE: "ERROR_NODE",

	SOURCE_FILE: "SOURCE_FILE",

	MODULE_DEF:         "MODULE_DEF",
	IMPORT_DECL:        "IMPORT_DECL",
	FROM_IMPORT_DECL:   "FROM_IMPORT_DECL",
	IMPORT_LIST:        "IMPORT_LIST",
	FN_DEF:             "FN_DEF",
	STRUCT_DEF:         "STRUCT_DEF",
	STRUCT_FIELD:       "STRUCT_FIELD",
	SUM_TYPE_DEF:       "SUM_TYPE_DEF",
	VARIANT_DEF:        "VARIANT_DEF",
	VARIANT_FIELD:      "VARIANT_FIELD",
	TYPE_ALIAS_DEF:     "TYPE_ALIAS_DEF",
	INTERFACE_DEF:      "INTERFACE_DEF",
	INTERFACE_METHOD:   "INTERFACE_METHOD",
	IMPL_DEF:           "IMPL_DEF",
	WHERE_CLAUSE:       "WHERE_CLAUSE",
	TRAIT_BOUND:        "TRAIT_BOUND",
	GENERIC_PARAM_LIST: "GENERIC_PARAM_LIST",
	GENERIC_ARG_LIST:   "GENERIC_ARG_LIST",
	VISIBILITY:         "VISIBILITY",

	ACTOR_DEF:       "ACTOR_DEF",
	SERVICE_DEF:     "SERVICE_DEF",
	CALL_HANDLER:    "CALL_HANDLER",
	CAST_HANDLER:    "CAST_HANDLER",
	SUPERVISOR_DEF:  "SUPERVISOR_DEF",
	CHILD_SPEC_DEF:  "CHILD_SPEC_DEF",
	STRATEGY_CLAUSE: "STRATEGY_CLAUSE",
	RESTART_LIMIT:   "RESTART_LIMIT",
	SECONDS_LIMIT:   "SECONDS_LIMIT",

	LET_BINDING: "LET_BINDING",
	RETURN_EXPR: "RETURN_EXPR",
	BLOCK:       "BLOCK",

	IF_EXPR:              "IF_EXPR",
	ELSE_BRANCH:          "ELSE_BRANCH",
	CASE_EXPR:            "CASE_EXPR",
	MATCH_ARM:            "MATCH_ARM",
	GUARD_CLAUSE:         "GUARD_CLAUSE",
	BINARY_EXPR:          "BINARY_EXPR",
	UNARY_EXPR:           "UNARY_EXPR",
	CALL_EXPR:            "CALL_EXPR",
	PIPE_EXPR:            "PIPE_EXPR",
	FIELD_ACCESS:         "FIELD_ACCESS",
	INDEX_EXPR:           "INDEX_EXPR",
	TUPLE_EXPR:           "TUPLE_EXPR",
	CLOSURE_EXPR:         "CLOSURE_EXPR",
	TRAILING_CLOSURE:     "TRAILING_CLOSURE",
	FN_EXPR_BODY:         "FN_EXPR_BODY",
	STRING_EXPR:          "STRING_EXPR",
	INTERPOLATION:        "INTERPOLATION",
	LITERAL:              "LITERAL",
	STRUCT_LITERAL:       "STRUCT_LITERAL",
	STRUCT_LITERAL_FIELD: "STRUCT_LITERAL_FIELD",
	OPTION_TYPE:          "OPTION_TYPE",
	RESULT_TYPE:          "RESULT_TYPE",

	SPAWN_EXPR:       "SPAWN_EXPR",
	SEND_EXPR:        "SEND_EXPR",
	RECEIVE_EXPR:     "RECEIVE_EXPR",
	RECEIVE_ARM:      "RECEIVE_ARM",
	SELF_EXPR:        "SELF_EXPR",
	LINK_EXPR:        "LINK_EXPR",
	AFTER_CLAUSE:     "AFTER_CLAUSE",
	TERMINATE_CLAUSE: "TERMINATE_CLAUSE",

	NAME:            "NAME",
	NAME_REF:        "NAME_REF",
	PATH:            "PATH",
	TYPE_ANNOTATION: "TYPE_ANNOTATION",

	PARAM_LIST: "PARAM_LIST",
	PARAM:      "PARAM",
	ARG_LIST:   "ARG_LIST",

	WILDCARD_PAT:    "WILDCARD_PAT",
	IDENT_PAT:       "IDENT_PAT",
	LITERAL_PAT:     "LITERAL_PAT",
	TUPLE_PAT:       "TUPLE_PAT",
	STRUCT_PAT:      "STRUCT_PAT",
	CONSTRUCTOR_PAT: "CONSTRUCTOR_PAT",
	OR_PAT:          "OR_PAT",
	AS_PAT:          "AS_PAT",
}

func (k NodeKind) String() string {
	if s, ok := nodeNames[k]; ok {
		return s
	}
	return fmt.Sprintf("NodeKind(%d)", k)
}
