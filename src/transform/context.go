// Package transform lowers a bound ast.RegularQuery into a plan.Plan. It is
// split into the same components spec.md §3/§9 names: X lowers expressions,
// T lowers patterns into scan/join trees, C dispatches one clause at a time
// down a SingleQuery's clause chain, U combines SingleQuery plans under
// UNION/UNION ALL, and W emits the mutating WriteNode directives CREATE,
// MERGE, SET, REMOVE, and DELETE produce.
//
// There is no single teacher file this package is grounded on: the teacher
// only ever builds Cypher text, it never plans against a catalog. The join
// and scan shapes it produces are grounded instead on Apache AGE's
// transform_match_entities / make_path_join_quals / make_directed_edge_join_conditions
// (original_source/src/backend/parser/cypher_clause.c), reexpressed against
// this repository's plan tree instead of a PostgreSQL Query/RangeTblEntry.
package transform

import (
	"github.com/cypherplan/cyq/src/ast"
	"github.com/cypherplan/cyq/src/binding"
	"github.com/cypherplan/cyq/src/catalog"
	"github.com/cypherplan/cyq/src/plan"
)

// Context threads the collaborators every transform stage needs: the
// catalog view for the target graph, and the name resolver tracking which
// variables are in scope. ExistsPlans records the correlated subplan built
// for each EXISTS{} expression encountered, keyed by AST identity, since
// plan.Node is not itself an ast.Expr and so cannot be embedded directly
// into the expression tree FilterNode.Cond carries.
// PathExprs records, per named path variable, the build_traversal(...) call
// §4.4 item 6 requires that variable to evaluate to. A path binding's Kind
// alone only reserves the name; the expression it reads back as is kept
// here, since plan.Node carries no AST-expression form of its own for
// TransformExpr's *ast.Variable case to substitute.
type Context struct {
	Catalog     catalog.Catalog
	Graph       catalog.Graph
	Resolver    *binding.Resolver
	ExistsPlans map[*ast.ExistsExpr]*plan.Plan
	PathExprs   map[string]ast.Expr
}

// NewContext resolves graphName against cat and returns a Context ready to
// transform queries against it.
func NewContext(cat catalog.Catalog, graphName string) (*Context, error) {
	g, err := cat.ResolveGraph(graphName)
	if err != nil {
		return nil, err
	}
	return &Context{
		Catalog:     cat,
		Graph:       g,
		Resolver:    binding.New(),
		ExistsPlans: make(map[*ast.ExistsExpr]*plan.Plan),
		PathExprs:   make(map[string]ast.Expr),
	}, nil
}

// visibleNames returns the currently visible bindings' names, in
// declaration order, for WITH */RETURN * and for a terminal clause chain
// that ends without an explicit RETURN.
func (ctx *Context) visibleNames() []string {
	vis := ctx.Resolver.Visible()
	names := make([]string, len(vis))
	for i, b := range vis {
		names[i] = b.Name
	}
	return names
}

// inferKind reports the binding.Kind a freshly-bound UNWIND target should
// carry: a bare variable reuses its source binding's kind, anything else is
// an ordinary scalar/list value.
func (ctx *Context) inferKind(e ast.Expr) binding.Kind {
	if v, ok := e.(*ast.Variable); ok {
		if b, ok := ctx.Resolver.Lookup(v.Name); ok {
			return b.Kind
		}
	}
	return binding.KindValue
}

// narrowToColumns restricts the resolver's visible bindings to exactly the
// named WITH columns, so a later clause cannot reference a variable the
// WITH clause dropped. Every WITH column is either a bare variable or an
// alias buildProjectionChecked has already declared, so each has a matching
// binding; TransformExpr's MustLookup on every variable reference is what
// enforces visibility downstream.
func narrowToColumns(ctx *Context, cols []string) {
	var keep []*binding.Binding
	for _, name := range cols {
		if b, ok := ctx.Resolver.Lookup(name); ok {
			keep = append(keep, b)
		}
	}
	ctx.Resolver.Narrow(keep)
}
