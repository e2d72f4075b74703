// Package ast defines the tagged abstract syntax tree produced by the parser
// (component P) and consumed by the name resolver and transformers (N, X, T,
// C, U, W). Each clause and expression variant is modeled as its own Go type
// rather than a generically tagged node, so that transform code dispatches
// via an exhaustive type switch instead of an unchecked cast.
package ast

import "github.com/cypherplan/cyq/src/token"

// Expr is implemented by every expression AST node.
type Expr interface {
	Span() token.Span
}

type baseExpr struct {
	span token.Span
}

func (b baseExpr) Span() token.Span { return b.span }

// BinaryOp enumerates the binary operators. OpOr and OpAnd tag the n-ary
// BoolExpr connective; the others keep their operands as a plain pair in a
// BinaryExpr (arithmetic, IN, and @> containment). The parser desugars XOR
// into AND/OR/NOT, so it never emits OpXor.
type BinaryOp int

const (
	OpOr BinaryOp = iota
	OpAnd
	OpXor
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpIn
	// OpContains is AGE's `@>` operator: lhs's property map contains every
	// key/value pair rhs specifies. Used to lower a pattern element's inline
	// `{...}` properties against its own properties column.
	OpContains
)

// BinaryExpr is a two-operand expression for operators that neither chain
// nor flatten: arithmetic, the IN membership test, and @> containment. The
// parser builds AND/OR as BoolExpr instead.
type BinaryExpr struct {
	baseExpr
	Op          BinaryOp
	Left, Right Expr
}

func NewBinaryExpr(sp token.Span, op BinaryOp, l, r Expr) *BinaryExpr {
	return &BinaryExpr{baseExpr{sp}, op, l, r}
}

// BoolExpr is a fully flattened AND or OR connective: every operand is a
// direct child, never another BoolExpr of the same Op, per §8's invariant
// that no AND node has an AND child (and likewise for OR). Use FlattenBool
// rather than constructing this directly so nested same-op runs always
// collapse into one node.
type BoolExpr struct {
	baseExpr
	Op       BinaryOp // OpOr or OpAnd
	Operands []Expr
}

// FlattenBool combines operands under op into one maximally flattened
// BoolExpr: any operand that is itself a BoolExpr with the same Op has its
// own operands spliced in rather than nested. A single resulting operand is
// returned unwrapped, since a one-operand AND/OR node is not a connective.
func FlattenBool(sp token.Span, op BinaryOp, operands []Expr) Expr {
	flat := make([]Expr, 0, len(operands))
	for _, o := range operands {
		if b, ok := o.(*BoolExpr); ok && b.Op == op {
			flat = append(flat, b.Operands...)
		} else {
			flat = append(flat, o)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &BoolExpr{baseExpr{sp}, op, flat}
}

// NotExpr negates its operand. XOR is desugared at parse time into
// (A∨B) ∧ ¬(A∧B), so NOT is the only unary boolean connective that survives
// into the tree.
type NotExpr struct {
	baseExpr
	Operand Expr
}

func NewNotExpr(sp token.Span, e Expr) *NotExpr { return &NotExpr{baseExpr{sp}, e} }

// CmpOp enumerates the six comparison operators.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNeq
	CmpLt
	CmpLte
	CmpGt
	CmpGte
)

// ChainCmp accumulates a run of chained comparisons (a < b < c) into one
// node, per the design note in spec.md §9: rather than inspecting and
// rewriting the LHS of each newly parsed comparison, the parser appends to
// this node's Operands/Ops and the transformer lowers it once, in one pass,
// into a conjunction of pairwise comparisons.
type ChainCmp struct {
	baseExpr
	Operands []Expr
	Ops      []CmpOp // len(Ops) == len(Operands)-1
}

func NewChainCmp(sp token.Span, first Expr) *ChainCmp {
	return &ChainCmp{baseExpr: baseExpr{sp}, Operands: []Expr{first}}
}

// Extend appends one more "op operand" pair to the chain.
func (c *ChainCmp) Extend(op CmpOp, operand Expr) {
	c.Ops = append(c.Ops, op)
	c.Operands = append(c.Operands, operand)
}

// UnaryMinus negates its operand. Per §4.1 the parser folds a unary minus
// applied to a numeric literal directly into the literal's value, so this
// node only appears for other operands (`-n.age`, `-$p`); the expression
// transformer keeps it as a UnaryMinus node around its transformed operand.
type UnaryMinus struct {
	baseExpr
	Operand Expr
}

func NewUnaryMinus(sp token.Span, e Expr) *UnaryMinus { return &UnaryMinus{baseExpr{sp}, e} }

// StringMatchOp enumerates the dedicated string-match operators, kept
// distinct from plain equality per §4.3.
type StringMatchOp int

const (
	MatchStartsWith StringMatchOp = iota
	MatchEndsWith
	MatchContains
)

type StringMatchExpr struct {
	baseExpr
	Op          StringMatchOp
	Left, Right Expr
}

func NewStringMatchExpr(sp token.Span, op StringMatchOp, l, r Expr) *StringMatchExpr {
	return &StringMatchExpr{baseExpr{sp}, op, l, r}
}

// RegexMatchExpr represents the =~ operator. It is lowered by the expression
// transformer into a call to the function regex_match(str, pattern).
type RegexMatchExpr struct {
	baseExpr
	Left, Right Expr
}

func NewRegexMatchExpr(sp token.Span, l, r Expr) *RegexMatchExpr {
	return &RegexMatchExpr{baseExpr{sp}, l, r}
}

// IsNullExpr represents `x IS NULL` / `x IS NOT NULL`.
type IsNullExpr struct {
	baseExpr
	Operand  Expr
	Negated  bool
}

func NewIsNullExpr(sp token.Span, e Expr, negated bool) *IsNullExpr {
	return &IsNullExpr{baseExpr{sp}, e, negated}
}

// TypecastExpr represents `x :: T`. The parser accepts any identifier as
// Target; TransformExpr rejects a Target other than integer, float, numeric,
// string, boolean, vertex, edge, traversal or variable_edge (compared
// case-insensitively).
type TypecastExpr struct {
	baseExpr
	Operand Expr
	Target  string
}

func NewTypecastExpr(sp token.Span, e Expr, target string) *TypecastExpr {
	return &TypecastExpr{baseExpr{sp}, e, target}
}

// Indirection covers both subscription (expr[i]) and slicing
// (expr[lo..hi]); IsSlice discriminates. Half-open slice semantics and
// out-of-range-yields-NULL are transformer concerns, not parser concerns.
type Indirection struct {
	baseExpr
	Target  Expr
	IsSlice bool
	Index   Expr // set when !IsSlice
	Lo, Hi  Expr // set when IsSlice; either may be nil (open end)
}

func NewSubscript(sp token.Span, target, index Expr) *Indirection {
	return &Indirection{baseExpr: baseExpr{sp}, Target: target, Index: index}
}

func NewSlice(sp token.Span, target, lo, hi Expr) *Indirection {
	return &Indirection{baseExpr: baseExpr{sp}, Target: target, IsSlice: true, Lo: lo, Hi: hi}
}

// PropertyAccess represents `a.b`. Whether `a` resolves to an entity's
// properties column or a scalar map-field access is decided by the
// expression transformer (X), which needs binding information this node
// does not carry.
type PropertyAccess struct {
	baseExpr
	Target   Expr
	Property string
}

func NewPropertyAccess(sp token.Span, target Expr, prop string) *PropertyAccess {
	return &PropertyAccess{baseExpr{sp}, target, prop}
}

// Variable is a bare identifier reference, resolved against the current
// scope's bindings by the name resolver.
type Variable struct {
	baseExpr
	Name string
}

func NewVariable(sp token.Span, name string) *Variable { return &Variable{baseExpr{sp}, name} }

// Parameter is a `$name` reference.
type Parameter struct {
	baseExpr
	Name string
}

func NewParameter(sp token.Span, name string) *Parameter { return &Parameter{baseExpr{sp}, name} }

// Literal is a constant scalar value: string, integer, float, boolean, or
// null (represented by Value == nil with IsNull true, to distinguish from
// an absent literal).
type Literal struct {
	baseExpr
	Value  interface{}
	IsNull bool
}

func NewLiteral(sp token.Span, v interface{}) *Literal { return &Literal{baseExpr{sp}, v, false} }
func NewNullLiteral(sp token.Span) *Literal             { return &Literal{baseExpr{sp}, nil, true} }

// ListLiteral is `[e1, e2, ...]`.
type ListLiteral struct {
	baseExpr
	Items []Expr
}

func NewListLiteral(sp token.Span, items []Expr) *ListLiteral {
	return &ListLiteral{baseExpr{sp}, items}
}

// MapEntry is one `key: value` pair of a map literal or property map.
type MapEntry struct {
	Key   string
	Value Expr
}

// MapLiteral is `{k1: v1, k2: v2, ...}`, used both as a general expression
// and as the property-map portion of a node/relationship pattern.
type MapLiteral struct {
	baseExpr
	Entries []MapEntry
}

func NewMapLiteral(sp token.Span, entries []MapEntry) *MapLiteral {
	return &MapLiteral{baseExpr{sp}, entries}
}

// FuncCall is a function invocation, including aggregate functions; the
// expression transformer does not distinguish aggregate from scalar here —
// that is a host-engine concern once the call reaches the target list.
type FuncCall struct {
	baseExpr
	Namespace []string // e.g. {"apoc","coll"} for apoc.coll.sum(...)
	Name      string
	Distinct  bool
	Args      []Expr
	Star      bool // count(*)
}

func NewFuncCall(sp token.Span, ns []string, name string, args []Expr) *FuncCall {
	return &FuncCall{baseExpr: baseExpr{sp}, Namespace: ns, Name: name, Args: args}
}

// CaseWhen is one `WHEN cond THEN result` arm.
type CaseWhen struct {
	When Expr
	Then Expr
}

// CaseExpr covers both CASE forms. When Operand is non-nil, each arm's When
// is compared for equality against Operand rather than evaluated as a
// boolean — both forms produce this same node (§4.3); the transformer
// synthesizes the equality comparisons when lowering.
type CaseExpr struct {
	baseExpr
	Operand Expr // nil for the operand-less form
	Whens   []CaseWhen
	Else    Expr // nil means an elided ELSE, which defaults to NULL
}

func NewCaseExpr(sp token.Span, operand Expr, whens []CaseWhen, els Expr) *CaseExpr {
	return &CaseExpr{baseExpr{sp}, operand, whens, els}
}

// SubPattern wraps a pattern used inside an expression position, currently
// only EXISTS { pattern }.
type SubPattern struct {
	Pattern *Pattern
}

// ExistsExpr is `EXISTS { pattern }`. The expression transformer lowers this
// into a correlated Exists subquery built by running the same pattern
// pipeline as MATCH over an anonymous nested scope (§4.3).
type ExistsExpr struct {
	baseExpr
	SubPattern *SubPattern
}

func NewExistsExpr(sp token.Span, sub *SubPattern) *ExistsExpr {
	return &ExistsExpr{baseExpr{sp}, sub}
}
