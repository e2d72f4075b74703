package transform

import (
	"github.com/cypherplan/cyq/src/ast"
	"github.com/cypherplan/cyq/src/binding"
	"github.com/cypherplan/cyq/src/cyqerr"
	"github.com/cypherplan/cyq/src/plan"
)

// TransformQuery lowers a full RegularQuery (component U): a leaf is handed
// straight to TransformSingle; a UNION/UNION ALL node transforms each side
// under its own independent binding scope — Cypher does not let one UNION
// branch see the other's variables — then checks the two branches project
// the same number of columns (§4.6) before combining them. The outermost
// ORDER BY/SKIP/LIMIT, which may only reference output column names, is
// applied last against a scope seeded with just those names.
func TransformQuery(ctx *Context, rq *ast.RegularQuery) (*plan.Plan, error) {
	var p *plan.Plan
	var err error
	if rq.Op == ast.OpNone {
		p, err = TransformSingle(ctx, rq.Single)
		if err != nil {
			return nil, err
		}
	} else {
		leftCtx := siblingContext(ctx)
		left, err := TransformQuery(leftCtx, rq.Left)
		if err != nil {
			return nil, err
		}
		rightCtx := siblingContext(ctx)
		right, err := TransformQuery(rightCtx, rq.Right)
		if err != nil {
			return nil, err
		}
		if len(left.Columns) != len(right.Columns) {
			return nil, cyqerr.Typef(cyqerr.Span{}, "UnionColumnMismatch",
				"each side of a UNION must return the same number of columns, got %d and %d", len(left.Columns), len(right.Columns))
		}
		p = &plan.Plan{
			Root:        &plan.UnionNode{Left: left.Root, Right: right.Root, All: rq.Op == ast.OpUnionAll},
			Columns:     left.Columns,
			ColumnKinds: unifyColumnKinds(left.ColumnKinds, right.ColumnKinds),
			Writes:      append(left.Writes, right.Writes...),
		}
	}

	if len(rq.OrderBy) == 0 && rq.Skip == nil && rq.Limit == nil {
		return p, nil
	}

	outer := &Context{Catalog: ctx.Catalog, Graph: ctx.Graph, Resolver: binding.New(), ExistsPlans: ctx.ExistsPlans, PathExprs: make(map[string]ast.Expr)}
	for _, col := range p.Columns {
		if _, err := outer.Resolver.Declare(col, binding.KindValue, zeroSpan); err != nil {
			return nil, err
		}
	}
	if rq.Op != ast.OpNone {
		if err := requireOutputColumnOrderBy(p.Columns, rq.OrderBy); err != nil {
			return nil, err
		}
	}
	root, err := applyOrderSkipLimit(outer, p.Root, rq.OrderBy, rq.Skip, rq.Limit)
	if err != nil {
		return nil, err
	}
	p.Root = root
	return p, nil
}

// unifyColumnKinds applies §4.6's per-position common-type rule: an untyped
// NULL constant paired with a concrete-typed constant unifies to that
// concrete type; anything involving a non-constant expression is left for
// the host engine to coerce at evaluation time.
func unifyColumnKinds(left, right []plan.ColumnKind) []plan.ColumnKind {
	out := make([]plan.ColumnKind, len(left))
	for i := range out {
		a, b := left[i], right[i]
		switch {
		case a == plan.ColumnUnknownConstant && b == plan.ColumnKnownConstant:
			out[i] = plan.ColumnKnownConstant
		case b == plan.ColumnUnknownConstant && a == plan.ColumnKnownConstant:
			out[i] = plan.ColumnKnownConstant
		case a == plan.ColumnUnknownConstant && b == plan.ColumnUnknownConstant:
			out[i] = plan.ColumnUnknownConstant
		case a == plan.ColumnKnownConstant && b == plan.ColumnKnownConstant:
			out[i] = plan.ColumnKnownConstant
		default:
			out[i] = plan.ColumnNonConstant
		}
	}
	return out
}

// requireOutputColumnOrderBy enforces §4.6: a top-level ORDER BY over a
// UNION may only name output columns, never arbitrary expressions.
func requireOutputColumnOrderBy(columns []string, order []*ast.OrderItem) error {
	for _, o := range order {
		if !isOutputColumn(columns, o.Expr) {
			return cyqerr.Semanticf(toErrSpan(o.Expr.Span()), "InvalidUnionOrderBy",
				"UNION's ORDER BY may only reference output column names, not expressions")
		}
	}
	return nil
}

func isOutputColumn(columns []string, e ast.Expr) bool {
	v, ok := e.(*ast.Variable)
	if !ok {
		return false
	}
	for _, col := range columns {
		if col == v.Name {
			return true
		}
	}
	return false
}

// siblingContext gives one UNION branch its own resolver while keeping the
// same catalog/graph view and the shared EXISTS subplan table.
func siblingContext(ctx *Context) *Context {
	return &Context{Catalog: ctx.Catalog, Graph: ctx.Graph, Resolver: binding.New(), ExistsPlans: ctx.ExistsPlans, PathExprs: make(map[string]ast.Expr)}
}
