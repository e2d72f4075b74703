package ast

import "github.com/cypherplan/cyq/src/token"

// ReturnItem is one projected expression, optionally aliased. WITH requires
// every non-variable expression to carry an alias (§4.5); RETURN does not.
type ReturnItem struct {
	Expr     Expr
	Alias    string
	HasAlias bool
}

// OrderItem is one ORDER BY term.
type OrderItem struct {
	Expr       Expr
	Descending bool
}

// Match is `[OPTIONAL] MATCH pattern [WHERE where]`.
type Match struct {
	Optional bool
	Pattern  *Pattern
	Where    Expr
	Span     token.Span
}

// Create is `CREATE pattern`.
type Create struct {
	Pattern *Pattern
	Span    token.Span
}

// SetItemKind discriminates the five shapes a SET/REMOVE item can take.
type SetItemKind int

const (
	SetProperty       SetItemKind = iota // n.prop = expr
	SetPropertyMerge                     // n += expr
	SetVariable                          // n = expr  (whole-entity property replace)
	SetLabel                             // n:Label
	RemoveProperty                       // REMOVE n.prop
	RemoveLabel                          // REMOVE n:Label
)

// SetItem is one element of a SET or REMOVE clause.
type SetItem struct {
	Kind     SetItemKind
	Variable string
	Property string // valid for SetProperty/RemoveProperty
	Label    string // valid for SetLabel/RemoveLabel
	Value    Expr   // valid for SetProperty/SetPropertyMerge/SetVariable
	Span     token.Span
}

// Set represents both SET and REMOVE clauses: the original source unifies
// them into one node distinguished by IsRemove, which this AST preserves.
type Set struct {
	Items    []*SetItem
	IsRemove bool
	Span     token.Span
}

// Merge is `MERGE path [ON CREATE SET ...] [ON MATCH SET ...]`.
type Merge struct {
	Path     *Path
	OnCreate []*SetItem
	OnMatch  []*SetItem
	Span     token.Span
}

// Delete is `[DETACH] DELETE expr, ...`.
type Delete struct {
	Detach bool
	Exprs  []Expr
	Span   token.Span
}

// Unwind is `UNWIND expr AS name`.
type Unwind struct {
	Expr Expr
	As   string
	Span token.Span
}

// With is `WITH [DISTINCT] items [WHERE where] [ORDER BY ...] [SKIP n] [LIMIT n]`.
type With struct {
	Distinct bool
	Items    []*ReturnItem
	Where    Expr
	OrderBy  []*OrderItem
	Skip     Expr
	Limit    Expr
	Star     bool // WITH * — see spec.md §9 Open Question (b)
	Span     token.Span
}

// Return is a leaf projection: `RETURN [DISTINCT] items [ORDER BY ...] [SKIP n] [LIMIT n]`.
// The UNION combinator that the distilled spec.md described as extra fields
// on this same node (op/all_or_distinct/larg/rarg) is instead modeled as its
// own sum-type arm, RegularQuery, one level up — see DESIGN.md for the
// rationale. No information from spec.md's Return variant is lost: a leaf
// RegularQuery.Single ends in exactly one Return, carrying exactly these
// fields.
type Return struct {
	Distinct bool
	Items    []*ReturnItem
	OrderBy  []*OrderItem
	Skip     Expr
	Limit    Expr
	Span     token.Span
}

// CallYield is `CALL proc(args) [YIELD names]`. Parsed so that the grammar
// can accept it (§1 lists it among clauses the parser must recognize) but
// always rejected by the clause pipeline with a NotSupported error — see
// spec.md §1 Non-goals and §7.
type CallYield struct {
	Namespace []string
	Procedure string
	Args      []Expr
	Yields    []string
	Span      token.Span
}

// ClauseKind enumerates the concrete clause variants for switch dispatch
// convenience; Clause.Kind() is mechanical and never needs updating by hand
// beyond adding a case when a new variant is introduced.
type ClauseKind int

const (
	KindMatch ClauseKind = iota
	KindCreate
	KindMerge
	KindSet
	KindDelete
	KindUnwind
	KindWith
	KindReturn
	KindCall
)

// Clause is a sum type over the clauses a single query may contain. Exactly
// one field is non-nil; Kind reports which.
type Clause struct {
	Match  *Match
	Create *Create
	Merge  *Merge
	Set    *Set
	Delete *Delete
	Unwind *Unwind
	With   *With
	Return *Return
	Call   *CallYield
}

// Kind reports which variant this clause holds.
func (c *Clause) Kind() ClauseKind {
	switch {
	case c.Match != nil:
		return KindMatch
	case c.Create != nil:
		return KindCreate
	case c.Merge != nil:
		return KindMerge
	case c.Set != nil:
		return KindSet
	case c.Delete != nil:
		return KindDelete
	case c.Unwind != nil:
		return KindUnwind
	case c.With != nil:
		return KindWith
	case c.Return != nil:
		return KindReturn
	case c.Call != nil:
		return KindCall
	default:
		panic("ast: empty Clause")
	}
}

// SingleQuery is an ordered list of clauses, per spec.md §3's "Clause
// chain". The doubly-linked-list shape spec.md describes is realized by the
// transform pass walking this slice by index (prev = Clauses[i-1], next =
// Clauses[i+1]) rather than by storing raw pointers in the AST itself — see
// the arena/index-based cross-reference design note in spec.md §9.
type SingleQuery struct {
	Clauses []*Clause
}

// UnionOp enumerates how two single queries are combined.
type UnionOp int

const (
	OpNone UnionOp = iota
	OpUnion
	OpUnionAll
)

// RegularQuery is the top-level statement: either one SingleQuery, or two
// RegularQuery operands combined by UNION/UNION ALL. ORDER BY/SKIP/LIMIT at
// this level apply to the outer query as a whole (§4.6) and may only
// reference output column names, never expressions.
type RegularQuery struct {
	Single *SingleQuery // non-nil iff Op == OpNone
	Op     UnionOp
	Left   *RegularQuery // non-nil iff Op != OpNone
	Right  *RegularQuery // non-nil iff Op != OpNone

	OrderBy []*OrderItem
	Skip    Expr
	Limit   Expr
}
