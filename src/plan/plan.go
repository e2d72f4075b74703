// Package plan defines the relational plan tree that the transform
// pipeline (src/transform) builds out of a bound AST. It is the Go
// analog of the "Query tree" spec.md §3 describes a pattern compiling
// down to: range-table-like scan nodes joined together, with filter,
// projection, sort, limit, and set-operation nodes layered on top exactly
// the way a relational planner would build them.
//
// There is no single teacher file this package is grounded on — the
// teacher never plans anything, it only builds Cypher text — so the node
// shapes here are modeled directly on Apache AGE's own Query tree output
// (rtable entries, JoinExpr nodes, a targetList of TargetEntry) as
// described in original_source/src/backend/parser/cypher_clause.c, reexpressed
// as a typed Go AST (an interface plus concrete node structs) rather than
// PostgreSQL's generic Node/Plan union.
package plan

import (
	"github.com/cypherplan/cyq/src/ast"
	"github.com/cypherplan/cyq/src/catalog"
)

// Node is implemented by every plan tree node.
type Node interface {
	isNode()
}

type node struct{}

func (node) isNode() {}

// ScanNode reads every entity of one label. Kind distinguishes a vertex
// scan from an edge scan.
type ScanNode struct {
	node
	Alias string
	Label catalog.LabelInfo
	Kind  catalog.LabelKind
}

// AllLabelsScan unions every label of the given kind, for a pattern
// element that names no label at all (spec.md §5: label-table scanning is
// structural, not a cost-based choice — see DESIGN.md).
type AllLabelsScan struct {
	node
	Alias  string
	Labels []catalog.LabelInfo
	Kind   catalog.LabelKind
}

// JoinType mirrors the two join kinds a Cypher pattern can require: plain
// MATCH produces inner joins, OPTIONAL MATCH produces left outer joins.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
)

// JoinNode combines two subtrees under a list of join-qualifying
// predicates, grounded on Apache AGE's make_path_join_quals /
// make_directed_edge_join_conditions (cypher_clause.c): each fixed-length
// relationship in a path becomes two JoinNodes, an inner one joining the
// edge scan to the left vertex's subtree with no Quals, and an outer one
// joining the right vertex's scan whose single Qual equates the edge's
// start/end ids to both vertices' ids.
type JoinNode struct {
	node
	Left, Right Node
	Type        JoinType
	Quals       []ast.Expr
}

// VLENode represents one variable-length relationship. It does not expand
// into a fixed number of JoinNodes: the bounded or unbounded hop count is
// evaluated at runtime by src/vle's DFS engine, which this node parameterizes.
type VLENode struct {
	node
	Alias      string
	Left       Node // the start vertex's scan/join subtree
	EdgeLabels []string
	Direction  ast.Direction
	Range      ast.Range
}

// FilterNode applies a boolean predicate that could not be pushed into a
// join qualifier (a WHERE clause condition, or a MATCH pattern element's
// inline `{...}` properties once lowered to an @> containment test).
type FilterNode struct {
	node
	Input Node
	Cond  ast.Expr
}

// TargetEntry is one projected column.
type TargetEntry struct {
	Expr  ast.Expr
	Alias string
}

// ProjectNode narrows and renames the visible bindings, as WITH and RETURN
// both do (§4.5/§4.6): Distinct requests duplicate elimination over the
// whole row, not per column.
type ProjectNode struct {
	node
	Input    Node
	Targets  []TargetEntry
	Distinct bool
}

// SortKey is one ORDER BY term.
type SortKey struct {
	Expr ast.Expr
	Desc bool
}

type SortNode struct {
	node
	Input Node
	Keys  []SortKey
}

type LimitNode struct {
	node
	Input  Node
	Limit  ast.Expr
	Offset ast.Expr
}

// UnwindNode expands a list-valued expression into one row per element,
// carrying every other visible binding along unchanged.
type UnwindNode struct {
	node
	Input Node
	Expr  ast.Expr
	As    string
}

// UnionNode implements UNION/UNION ALL (§4.6, component U): All controls
// whether duplicate rows across the two branches are eliminated.
type UnionNode struct {
	node
	Left, Right Node
	All         bool
}

// ValuesNode is the root of a query with no MATCH/CREATE/MERGE at all
// (bare `RETURN 1` or `UNWIND [...] AS x`): a single synthetic empty row to
// project and unwind against.
type ValuesNode struct{ node }

// WriteOp enumerates the mutating directives component W emits.
type WriteOp int

const (
	WriteCreate WriteOp = iota
	WriteMergeCreate
	WriteSetProperty
	WriteSetPropertyMerge
	WriteSetVariable
	WriteSetLabel
	WriteRemoveProperty
	WriteRemoveLabel
	WriteDeleteNode
	WriteDeleteRel
)

// WriteNode carries one mutating directive produced by CREATE, MERGE's
// creation branch, SET, REMOVE, or DELETE. Target identifies the pattern
// variable or path the directive applies to; Pattern is populated only for
// WriteCreate/WriteMergeCreate.
type WriteNode struct {
	node
	Input    Node
	Op       WriteOp
	Target   string
	Property string
	Label    string
	Value    ast.Expr
	Pattern  *ast.Path
	Detach   bool // valid for WriteDeleteNode/WriteDeleteRel
}

// ColumnKind classifies one output column for §4.6's UNION common-type
// rule: it distinguishes a constant whose type is still open (an untyped
// NULL literal) from a concrete-typed constant and from any non-constant
// expression, without this front-end needing a full type system to do it.
type ColumnKind int

const (
	// ColumnNonConstant covers anything that is not a literal at all — its
	// type, if UNKNOWN, is left for the host engine to coerce.
	ColumnNonConstant ColumnKind = iota
	// ColumnUnknownConstant is an untyped NULL literal: coercible to
	// whatever concrete type the other side of a UNION supplies.
	ColumnUnknownConstant
	// ColumnKnownConstant is a concrete-typed (non-null) literal.
	ColumnKnownConstant
)

// Plan is a fully transformed SingleQuery or RegularQuery, ready for a host
// engine to lower into its own execution plan.
type Plan struct {
	Root        Node
	Writes      []*WriteNode
	Columns     []string     // output column names, in RETURN/WITH * order
	ColumnKinds []ColumnKind // parallel to Columns; see ColumnKind
}
