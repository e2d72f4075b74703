package transform

import (
	"github.com/cypherplan/cyq/src/ast"
	"github.com/cypherplan/cyq/src/binding"
	"github.com/cypherplan/cyq/src/catalog"
	"github.com/cypherplan/cyq/src/cyqerr"
	"github.com/cypherplan/cyq/src/plan"
	"github.com/cypherplan/cyq/src/token"
)

var zeroSpan token.Span

func toErrSpan(sp token.Span) cyqerr.Span {
	return cyqerr.Span{Offset: sp.Offset, Length: sp.Length}
}

// TransformPattern lowers a comma-separated pattern (MATCH's, CREATE's, or
// an EXISTS{} subpattern's) into a scan/join tree, declaring every named
// and anonymous element in ctx.Resolver along the way. Distinct paths
// combine under a cartesian InnerJoin, matching how AGE treats comma-joined
// patterns with no shared variable as an unqualified cross join.
func TransformPattern(ctx *Context, pat *ast.Pattern) (plan.Node, error) {
	var root plan.Node
	var edgeAliases []string
	var sp token.Span
	for _, path := range pat.Paths {
		n, aliases, err := transformPath(ctx, path)
		if err != nil {
			return nil, err
		}
		edgeAliases = append(edgeAliases, aliases...)
		if len(path.Rels) > 0 {
			sp = path.Rels[0].Span
		}
		if root == nil {
			root = n
			continue
		}
		root = &plan.JoinNode{Left: root, Right: n, Type: plan.InnerJoin}
	}
	if len(edgeAliases) > 1 {
		root = &plan.FilterNode{Input: root, Cond: edgeUniquenessPredicate(sp, edgeAliases)}
	}
	return root, nil
}

// edgeUniquenessPredicate builds enforce_edge_uniqueness(e0.id, e1.id, ...),
// the predicate §4.4 requires for every pattern with more than one
// relationship: Cypher's no-repeated-edge-in-one-match semantics, matching
// AGE's own call of the same name inserted into the generated WHERE clause.
func edgeUniquenessPredicate(sp token.Span, edgeAliases []string) ast.Expr {
	args := make([]ast.Expr, len(edgeAliases))
	for i, alias := range edgeAliases {
		args[i] = ast.NewPropertyAccess(sp, ast.NewVariable(sp, alias), "id")
	}
	return ast.NewFuncCall(sp, nil, "enforce_edge_uniqueness", args)
}

// aliasOf returns name if set, otherwise reserves and returns a fresh
// anonymous name — called exactly once per pattern element so the alias
// used in the scan and the alias used in adjoining join quals always match.
func aliasOf(ctx *Context, name string, anonymous bool) string {
	if anonymous || name == "" {
		return ctx.Resolver.NextAnonymous()
	}
	return name
}

func transformPath(ctx *Context, path *ast.Path) (plan.Node, []string, error) {
	aliases := make([]string, len(path.Nodes))
	for i, np := range path.Nodes {
		aliases[i] = aliasOf(ctx, np.Name, np.Anonymous)
	}

	left, err := transformNode(ctx, path.Nodes[0], aliases[0])
	if err != nil {
		return nil, nil, err
	}
	relAliases := make([]string, len(path.Rels))
	for i, rel := range path.Rels {
		right, err := transformNode(ctx, path.Nodes[i+1], aliases[i+1])
		if err != nil {
			return nil, nil, err
		}
		relAlias := aliasOf(ctx, rel.Name, rel.Anonymous)
		left, err = transformRel(ctx, rel, relAlias, left, right, aliases[i], aliases[i+1])
		if err != nil {
			return nil, nil, err
		}
		relAliases[i] = relAlias
	}
	if path.VarName != "" {
		sp := zeroSpan
		if len(path.Nodes) > 0 {
			sp = path.Nodes[0].Span
		}
		if _, err := ctx.Resolver.Declare(path.VarName, binding.KindPath, sp); err != nil {
			return nil, nil, err
		}
		ctx.PathExprs[path.VarName] = buildTraversalExpr(sp, aliases, relAliases)
	}
	return left, relAliases, nil
}

// buildTraversalExpr builds the build_traversal(n0,e0,n1,e1,...,nk) call
// §4.4 item 6 gives a named path's value: the vertex and edge aliases
// interleaved in path order, matching AGE's own build_path() argument
// ordering for a Path-typed column.
func buildTraversalExpr(sp token.Span, nodeAliases, relAliases []string) ast.Expr {
	args := make([]ast.Expr, 0, len(nodeAliases)+len(relAliases))
	for i, alias := range nodeAliases {
		args = append(args, ast.NewVariable(sp, alias))
		if i < len(relAliases) {
			args = append(args, ast.NewVariable(sp, relAliases[i]))
		}
	}
	return ast.NewFuncCall(sp, nil, "build_traversal", args)
}

// transformNode builds the scan for one pattern vertex, already assigned
// alias, and declares its binding.
func transformNode(ctx *Context, np *ast.NodePattern, alias string) (plan.Node, error) {
	if _, err := ctx.Resolver.Declare(alias, binding.KindNode, np.Span); err != nil {
		return nil, err
	}

	var scan plan.Node
	if len(np.Labels) == 0 {
		scan = &plan.AllLabelsScan{Alias: alias, Labels: ctx.Graph.Labels(catalog.NodeLabel), Kind: catalog.NodeLabel}
	} else {
		info, ok := ctx.Graph.Label(catalog.NodeLabel, np.Labels[0])
		if !ok {
			return nil, cyqerr.Semanticf(toErrSpan(np.Span), "UnknownLabel", "unknown node label %q", np.Labels[0])
		}
		scan = &plan.ScanNode{Alias: alias, Label: info, Kind: catalog.NodeLabel}
	}

	if np.Props != nil {
		cond, err := propsToFilter(ctx, alias, np.Props)
		if err != nil {
			return nil, err
		}
		scan = &plan.FilterNode{Input: scan, Cond: cond}
	}
	return scan, nil
}

// transformRel builds the join (or VLE node) connecting left and right's
// vertex scans through rel, matching AGE's make_directed_edge_join_conditions:
// the start/end id columns of the edge's own scan are equated to the id
// columns of the two vertex scans it connects, oriented by rel.Direction.
func transformRel(ctx *Context, rel *ast.RelPattern, name string, left, right plan.Node, leftAlias, rightAlias string) (plan.Node, error) {
	if _, err := ctx.Resolver.Declare(name, binding.KindRel, rel.Span); err != nil {
		return nil, err
	}

	if rel.VarLen != nil {
		if rel.Direction == ast.DirEither {
			return nil, cyqerr.Semanticf(toErrSpan(rel.Span), "DirectedEdgeRequired", "variable-length relationship %q must be directed", name)
		}
		return &plan.VLENode{
			Alias:      name,
			Left:       left,
			EdgeLabels: rel.Labels,
			Direction:  rel.Direction,
			Range:      *rel.VarLen,
		}, nil
	}

	var edgeScan plan.Node
	if len(rel.Labels) == 0 {
		edgeScan = &plan.AllLabelsScan{Alias: name, Labels: ctx.Graph.Labels(catalog.EdgeLabel), Kind: catalog.EdgeLabel}
	} else {
		info, ok := ctx.Graph.Label(catalog.EdgeLabel, rel.Labels[0])
		if !ok {
			return nil, cyqerr.Semanticf(toErrSpan(rel.Span), "UnknownLabel", "unknown relationship label %q", rel.Labels[0])
		}
		edgeScan = &plan.ScanNode{Alias: name, Label: info, Kind: catalog.EdgeLabel}
	}

	if rel.Props != nil {
		cond, err := propsToFilter(ctx, name, rel.Props)
		if err != nil {
			return nil, err
		}
		edgeScan = &plan.FilterNode{Input: edgeScan, Cond: cond}
	}

	// Join the edge to the left vertex unqualified first, then qualify the
	// join to the right vertex against both aliases at once: DirEither needs
	// a single condition spanning all three aliases (leftVar.id = e.start_id
	// AND rightVar.id = e.end_id) OR the reverse orientation, which a pair of
	// independently-qualified two-way joins cannot express.
	leftJoined := &plan.JoinNode{Left: left, Right: edgeScan, Type: plan.InnerJoin}

	forward := andAll(rel.Span, []ast.Expr{
		idEquals(leftAlias, name, "start_id"),
		idEquals(rightAlias, name, "end_id"),
	})
	backward := andAll(rel.Span, []ast.Expr{
		idEquals(leftAlias, name, "end_id"),
		idEquals(rightAlias, name, "start_id"),
	})

	var cond ast.Expr
	switch rel.Direction {
	case ast.DirRight:
		cond = forward
	case ast.DirLeft:
		cond = backward
	default: // ast.DirEither: either orientation satisfies an undirected `-[]-`
		cond = orAll(rel.Span, []ast.Expr{forward, backward})
	}

	return &plan.JoinNode{
		Left:  leftJoined,
		Right: right,
		Type:  plan.InnerJoin,
		Quals: []ast.Expr{cond},
	}, nil
}

// idEquals builds `leftVar.id = rightVar.<prop>`, the join qualifier shape
// AGE emits for an edge endpoint, as a two-element ChainCmp.
func idEquals(leftVar, rightVar, prop string) ast.Expr {
	l := ast.NewPropertyAccess(zeroSpan, ast.NewVariable(zeroSpan, leftVar), "id")
	r := ast.NewPropertyAccess(zeroSpan, ast.NewVariable(zeroSpan, rightVar), prop)
	cmp := ast.NewChainCmp(zeroSpan, l)
	cmp.Extend(ast.CmpEq, r)
	return cmp
}

// propsToFilter turns a pattern element's inline property map into AGE's own
// `entity.properties @> {...}` containment test (create_property_constraints,
// cypher_clause.c), rather than an equality test per key: containment is
// what lets the constant map itself carry nested structure unevaluated.
func propsToFilter(ctx *Context, varName string, props *ast.MapLiteral) (ast.Expr, error) {
	entries := make([]ast.MapEntry, len(props.Entries))
	for i, entry := range props.Entries {
		val, err := TransformExpr(ctx, entry.Value)
		if err != nil {
			return nil, err
		}
		entries[i] = ast.MapEntry{Key: entry.Key, Value: val}
	}
	access := ast.NewPropertyAccess(props.Span(), ast.NewVariable(props.Span(), varName), "properties")
	constraints := ast.NewMapLiteral(props.Span(), entries)
	return ast.NewBinaryExpr(props.Span(), ast.OpContains, access, constraints), nil
}

// andAll flattens a list of conjuncts into one AND node (or returns the lone
// conjunct unwrapped, or nil for an empty list), rather than nesting
// BinaryExprs pairwise.
func andAll(sp token.Span, conjuncts []ast.Expr) ast.Expr {
	switch len(conjuncts) {
	case 0:
		return nil
	case 1:
		return conjuncts[0]
	default:
		return ast.FlattenBool(sp, ast.OpAnd, conjuncts)
	}
}

// orAll is andAll's OR counterpart, used to combine alternative join
// orientations for an undirected relationship.
func orAll(sp token.Span, disjuncts []ast.Expr) ast.Expr {
	switch len(disjuncts) {
	case 0:
		return nil
	case 1:
		return disjuncts[0]
	default:
		return ast.FlattenBool(sp, ast.OpOr, disjuncts)
	}
}
