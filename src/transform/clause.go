package transform

import (
	"github.com/cypherplan/cyq/src/ast"
	"github.com/cypherplan/cyq/src/binding"
	"github.com/cypherplan/cyq/src/cyqerr"
	"github.com/cypherplan/cyq/src/plan"
)

// singleResult accumulates the running plan.Node, the write directives
// collected so far, and the output column list while walking a
// SingleQuery's clause chain.
type singleResult struct {
	root        plan.Node
	writes      []*plan.WriteNode
	columns     []string
	columnKinds []plan.ColumnKind
}

// TransformSingle walks one SingleQuery's ordered clause chain (component
// C), dispatching each clause by kind and threading the running plan
// through Match/Create/Merge/Set/Remove/Delete/Unwind/With, and returning
// the final plan at Return.
func TransformSingle(ctx *Context, sq *ast.SingleQuery) (*plan.Plan, error) {
	res := &singleResult{root: &plan.ValuesNode{}}
	for i, clause := range sq.Clauses {
		last := i == len(sq.Clauses)-1
		var err error
		res, err = dispatchClause(ctx, res, clause)
		if err != nil {
			return nil, err
		}
		if last && clause.Kind() != ast.KindReturn && clause.Kind() != ast.KindWith {
			// A clause chain that does not end in RETURN or WITH (both of
			// which already set res.columns themselves) yields the last
			// clause's visible bindings as its projection, so UNION and
			// the host driver always see a defined column list.
			res.columns = ctx.visibleNames()
			res.columnKinds = make([]plan.ColumnKind, len(res.columns)) // bare bindings are never constants
		}
	}
	return &plan.Plan{Root: res.root, Writes: res.writes, Columns: res.columns, ColumnKinds: res.columnKinds}, nil
}

func dispatchClause(ctx *Context, res *singleResult, clause *ast.Clause) (*singleResult, error) {
	switch clause.Kind() {
	case ast.KindMatch:
		return dispatchMatch(ctx, res, clause.Match)
	case ast.KindCreate:
		return dispatchCreate(ctx, res, clause.Create)
	case ast.KindMerge:
		return dispatchMerge(ctx, res, clause.Merge)
	case ast.KindSet:
		return dispatchSet(ctx, res, clause.Set)
	case ast.KindDelete:
		return dispatchDelete(ctx, res, clause.Delete)
	case ast.KindUnwind:
		return dispatchUnwind(ctx, res, clause.Unwind)
	case ast.KindWith:
		return dispatchWith(ctx, res, clause.With)
	case ast.KindReturn:
		return dispatchReturn(ctx, res, clause.Return)
	case ast.KindCall:
		return nil, cyqerr.NotSupportedf(toErrSpan(clause.Call.Span), "CallYieldUnsupported", "CALL/YIELD is not supported")
	default:
		return nil, cyqerr.Semanticf(cyqerr.Span{}, "UnhandledClause", "transform: unhandled clause kind %d", clause.Kind())
	}
}

func dispatchMatch(ctx *Context, res *singleResult, m *ast.Match) (*singleResult, error) {
	patNode, err := TransformPattern(ctx, m.Pattern)
	if err != nil {
		return nil, err
	}
	if _, empty := res.root.(*plan.ValuesNode); empty {
		res.root = patNode
	} else if m.Optional {
		res.root = &plan.JoinNode{Left: res.root, Right: patNode, Type: plan.LeftJoin}
	} else {
		res.root = &plan.JoinNode{Left: res.root, Right: patNode, Type: plan.InnerJoin}
	}
	if m.Where != nil {
		cond, err := TransformExpr(ctx, m.Where)
		if err != nil {
			return nil, err
		}
		res.root = &plan.FilterNode{Input: res.root, Cond: cond}
	}
	return res, nil
}

func dispatchCreate(ctx *Context, res *singleResult, c *ast.Create) (*singleResult, error) {
	for _, path := range c.Pattern.Paths {
		if err := requireDirectedPath(path); err != nil {
			return nil, err
		}
		res.writes = append(res.writes, &plan.WriteNode{
			Input:   res.root,
			Op:      plan.WriteCreate,
			Target:  path.VarName,
			Pattern: path,
		})
	}
	return res, nil
}

// requireDirectedPath enforces that every relationship in a CREATE pattern
// names an explicit direction (spec.md §5): there is no sensible physical
// orientation for `-[]-`  when writing a new edge.
func requireDirectedPath(path *ast.Path) error {
	for _, rel := range path.Rels {
		if rel.Direction == ast.DirEither {
			return cyqerr.Semanticf(toErrSpan(rel.Span), "DirectedEdgeRequired", "CREATE requires a directed relationship")
		}
	}
	return nil
}

func dispatchMerge(ctx *Context, res *singleResult, m *ast.Merge) (*singleResult, error) {
	if err := requireDirectedPath(m.Path); err != nil {
		return nil, err
	}
	writeNode := &plan.WriteNode{
		Input:   res.root,
		Op:      plan.WriteMergeCreate,
		Target:  m.Path.VarName,
		Pattern: m.Path,
	}
	res.writes = append(res.writes, writeNode)

	// MERGE introduces the node and relationship names its path mentions.
	for _, np := range m.Path.Nodes {
		if !np.Anonymous {
			if _, err := ctx.Resolver.Declare(np.Name, binding.KindNode, np.Span); err != nil {
				return nil, err
			}
		}
	}
	for _, rel := range m.Path.Rels {
		if !rel.Anonymous {
			if _, err := ctx.Resolver.Declare(rel.Name, binding.KindRel, rel.Span); err != nil {
				return nil, err
			}
		}
	}
	for _, item := range m.OnCreate {
		w, err := setItemToWrite(ctx, res.root, item)
		if err != nil {
			return nil, err
		}
		res.writes = append(res.writes, w)
	}
	for _, item := range m.OnMatch {
		w, err := setItemToWrite(ctx, res.root, item)
		if err != nil {
			return nil, err
		}
		res.writes = append(res.writes, w)
	}
	return res, nil
}

var setKindToWriteOp = map[ast.SetItemKind]plan.WriteOp{
	ast.SetProperty:      plan.WriteSetProperty,
	ast.SetPropertyMerge: plan.WriteSetPropertyMerge,
	ast.SetVariable:      plan.WriteSetVariable,
	ast.SetLabel:         plan.WriteSetLabel,
	ast.RemoveProperty:   plan.WriteRemoveProperty,
	ast.RemoveLabel:      plan.WriteRemoveLabel,
}

func setItemToWrite(ctx *Context, input plan.Node, item *ast.SetItem) (*plan.WriteNode, error) {
	if _, err := ctx.Resolver.MustLookup(item.Variable, item.Span); err != nil {
		return nil, err
	}
	var value ast.Expr
	if item.Value != nil {
		v, err := TransformExpr(ctx, item.Value)
		if err != nil {
			return nil, err
		}
		value = v
	}
	return &plan.WriteNode{
		Input:    input,
		Op:       setKindToWriteOp[item.Kind],
		Target:   item.Variable,
		Property: item.Property,
		Label:    item.Label,
		Value:    value,
	}, nil
}

func dispatchSet(ctx *Context, res *singleResult, s *ast.Set) (*singleResult, error) {
	for _, item := range s.Items {
		w, err := setItemToWrite(ctx, res.root, item)
		if err != nil {
			return nil, err
		}
		res.writes = append(res.writes, w)
	}
	return res, nil
}

func dispatchDelete(ctx *Context, res *singleResult, d *ast.Delete) (*singleResult, error) {
	for _, e := range d.Exprs {
		v, err := TransformExpr(ctx, e)
		if err != nil {
			return nil, err
		}
		res.writes = append(res.writes, &plan.WriteNode{
			Input:  res.root,
			Op:     plan.WriteDeleteNode,
			Value:  v,
			Detach: d.Detach,
		})
	}
	return res, nil
}

func dispatchUnwind(ctx *Context, res *singleResult, u *ast.Unwind) (*singleResult, error) {
	v, err := TransformExpr(ctx, u.Expr)
	if err != nil {
		return nil, err
	}
	if _, err := ctx.Resolver.Declare(u.As, ctx.inferKind(v), u.Span); err != nil {
		return nil, err
	}
	res.root = &plan.UnwindNode{Input: res.root, Expr: v, As: u.As}
	return res, nil
}

func dispatchWith(ctx *Context, res *singleResult, w *ast.With) (*singleResult, error) {
	projected, cols, kinds, err := buildProjectionChecked(ctx, res.root, w.Items, w.Star, true)
	if err != nil {
		return nil, err
	}
	res.root = projected
	if w.Where != nil {
		cond, err := TransformExpr(ctx, w.Where)
		if err != nil {
			return nil, err
		}
		res.root = &plan.FilterNode{Input: res.root, Cond: cond}
	}
	res.root, err = applyOrderSkipLimit(ctx, res.root, w.OrderBy, w.Skip, w.Limit)
	if err != nil {
		return nil, err
	}
	res.columns = cols
	res.columnKinds = kinds
	if !w.Star {
		narrowToColumns(ctx, cols)
	}
	return res, nil
}

func dispatchReturn(ctx *Context, res *singleResult, r *ast.Return) (*singleResult, error) {
	projected, cols, kinds, err := buildProjectionChecked(ctx, res.root, r.Items, false, false)
	if err != nil {
		return nil, err
	}
	res.root = projected
	res.root, err = applyOrderSkipLimit(ctx, res.root, r.OrderBy, r.Skip, r.Limit)
	if err != nil {
		return nil, err
	}
	res.columns = cols
	res.columnKinds = kinds
	return res, nil
}

// buildProjectionChecked builds a projection from items; when requireAlias is
// set (WITH, per §4.5), every item that is not a bare variable reference must
// carry an explicit alias — WITH's output names become bindings for the rest
// of the query, and a synthesized name would silently shadow or collide
// rather than the author choosing one. It also classifies each resulting
// column's ColumnKind (§4.6), so a later UNION can unify types per position.
func buildProjectionChecked(ctx *Context, input plan.Node, items []*ast.ReturnItem, star, requireAlias bool) (plan.Node, []string, []plan.ColumnKind, error) {
	if star {
		names := ctx.visibleNames()
		return input, names, make([]plan.ColumnKind, len(names)), nil
	}
	targets := make([]plan.TargetEntry, len(items))
	cols := make([]string, len(items))
	kinds := make([]plan.ColumnKind, len(items))
	for i, item := range items {
		if requireAlias && !item.HasAlias {
			if _, isVar := item.Expr.(*ast.Variable); !isVar {
				return nil, nil, nil, cyqerr.Semanticf(toErrSpan(item.Expr.Span()), "MissingAlias",
					"WITH item must be aliased with AS unless it is a bare variable")
			}
		}
		v, err := TransformExpr(ctx, item.Expr)
		if err != nil {
			return nil, nil, nil, err
		}
		alias := item.Alias
		if !item.HasAlias {
			alias = exprDisplayName(item.Expr)
		}
		targets[i] = plan.TargetEntry{Expr: v, Alias: alias}
		cols[i] = alias
		kinds[i] = columnKindOf(v)
	}
	// An aliased item becomes a binding, so ORDER BY/SKIP/LIMIT and the
	// clauses after a WITH can refer to it by name.
	for i, item := range items {
		if _, bound := ctx.Resolver.Lookup(cols[i]); item.HasAlias && !bound {
			if _, err := ctx.Resolver.Declare(cols[i], ctx.inferKind(targets[i].Expr), item.Expr.Span()); err != nil {
				return nil, nil, nil, err
			}
		}
	}
	return &plan.ProjectNode{Input: input, Targets: targets}, cols, kinds, nil
}

// columnKindOf classifies a projected, already-transformed expression for
// §4.6's common-type rule: only literals carry a fixed type at this stage.
func columnKindOf(e ast.Expr) plan.ColumnKind {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return plan.ColumnNonConstant
	}
	if lit.IsNull {
		return plan.ColumnUnknownConstant
	}
	return plan.ColumnKnownConstant
}

// exprDisplayName mirrors the host's column-naming convention for an
// unaliased projection item: a bare variable keeps its own name, a property
// access becomes `target.property`, and anything else, whose source text is
// unavailable here, gets the deterministic placeholder "expr".
func exprDisplayName(e ast.Expr) string {
	if v, ok := e.(*ast.Variable); ok {
		return v.Name
	}
	if p, ok := e.(*ast.PropertyAccess); ok {
		return exprDisplayName(p.Target) + "." + p.Property
	}
	return "expr"
}

func applyOrderSkipLimit(ctx *Context, input plan.Node, order []*ast.OrderItem, skip, limit ast.Expr) (plan.Node, error) {
	out := input
	if len(order) > 0 {
		keys := make([]plan.SortKey, len(order))
		for i, o := range order {
			v, err := TransformExpr(ctx, o.Expr)
			if err != nil {
				return nil, err
			}
			keys[i] = plan.SortKey{Expr: v, Desc: o.Descending}
		}
		out = &plan.SortNode{Input: out, Keys: keys}
	}
	if skip != nil || limit != nil {
		var s, l ast.Expr
		var err error
		if skip != nil {
			if err := requireConstantLimit(ctx, "SKIP", skip); err != nil {
				return nil, err
			}
			s, err = TransformExpr(ctx, skip)
			if err != nil {
				return nil, err
			}
		}
		if limit != nil {
			if err := requireConstantLimit(ctx, "LIMIT", limit); err != nil {
				return nil, err
			}
			l, err = TransformExpr(ctx, limit)
			if err != nil {
				return nil, err
			}
		}
		out = &plan.LimitNode{Input: out, Limit: l, Offset: s}
	}
	return out, nil
}

// requireConstantLimit rejects a SKIP/LIMIT expression that references any
// currently visible variable: §4.5/§7 permit only parameters and constants
// there, since the row count a plan produces cannot depend on a per-row
// value the way a WHERE condition can.
func requireConstantLimit(ctx *Context, clause string, e ast.Expr) error {
	if v := findVisibleVariable(ctx, e); v != nil {
		return cyqerr.Semanticf(toErrSpan(v.Span()), "IllegalLimit",
			"%s must be a constant or parameter, not a reference to variable %q", clause, v.Name)
	}
	return nil
}

// findVisibleVariable walks e looking for a *ast.Variable that resolves to a
// binding already in scope, returning the first one found.
func findVisibleVariable(ctx *Context, e ast.Expr) *ast.Variable {
	switch n := e.(type) {
	case nil, *ast.Literal, *ast.Parameter:
		return nil
	case *ast.Variable:
		if _, ok := ctx.Resolver.Lookup(n.Name); ok {
			return n
		}
		return nil
	case *ast.BinaryExpr:
		if v := findVisibleVariable(ctx, n.Left); v != nil {
			return v
		}
		return findVisibleVariable(ctx, n.Right)
	case *ast.BoolExpr:
		for _, o := range n.Operands {
			if v := findVisibleVariable(ctx, o); v != nil {
				return v
			}
		}
		return nil
	case *ast.NotExpr:
		return findVisibleVariable(ctx, n.Operand)
	case *ast.UnaryMinus:
		return findVisibleVariable(ctx, n.Operand)
	case *ast.ChainCmp:
		for _, o := range n.Operands {
			if v := findVisibleVariable(ctx, o); v != nil {
				return v
			}
		}
		return nil
	case *ast.StringMatchExpr:
		if v := findVisibleVariable(ctx, n.Left); v != nil {
			return v
		}
		return findVisibleVariable(ctx, n.Right)
	case *ast.RegexMatchExpr:
		if v := findVisibleVariable(ctx, n.Left); v != nil {
			return v
		}
		return findVisibleVariable(ctx, n.Right)
	case *ast.IsNullExpr:
		return findVisibleVariable(ctx, n.Operand)
	case *ast.TypecastExpr:
		return findVisibleVariable(ctx, n.Operand)
	case *ast.Indirection:
		if v := findVisibleVariable(ctx, n.Target); v != nil {
			return v
		}
		if n.IsSlice {
			if v := findVisibleVariable(ctx, n.Lo); v != nil {
				return v
			}
			return findVisibleVariable(ctx, n.Hi)
		}
		return findVisibleVariable(ctx, n.Index)
	case *ast.PropertyAccess:
		return findVisibleVariable(ctx, n.Target)
	case *ast.ListLiteral:
		for _, it := range n.Items {
			if v := findVisibleVariable(ctx, it); v != nil {
				return v
			}
		}
		return nil
	case *ast.MapLiteral:
		for _, entry := range n.Entries {
			if v := findVisibleVariable(ctx, entry.Value); v != nil {
				return v
			}
		}
		return nil
	case *ast.FuncCall:
		for _, a := range n.Args {
			if v := findVisibleVariable(ctx, a); v != nil {
				return v
			}
		}
		return nil
	case *ast.CaseExpr:
		if v := findVisibleVariable(ctx, n.Operand); v != nil {
			return v
		}
		for _, w := range n.Whens {
			if v := findVisibleVariable(ctx, w.When); v != nil {
				return v
			}
			if v := findVisibleVariable(ctx, w.Then); v != nil {
				return v
			}
		}
		return findVisibleVariable(ctx, n.Else)
	case *ast.ExistsExpr:
		return nil
	default:
		return nil
	}
}
