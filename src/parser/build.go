package parser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/cypherplan/cyq/src/ast"
	"github.com/cypherplan/cyq/src/token"
)

// build.go walks the participle-produced grammar tree (grammar_expr.go,
// grammar_pattern.go, grammar_clause.go) into src/ast nodes. This is where
// every fold the grammar itself stays silent about happens: unary-minus
// folding into numeric literals, XOR desugaring into (A∨B)∧¬(A∧B),
// flattening of OR/AND runs into one n-ary ast.BoolExpr, left-associative
// accumulation of arithmetic chains, and comparison
// chains collapsing into a single ast.ChainCmp. The teacher's parser.go did
// the analogous grammar-to-domain-object walk for its own (much smaller)
// grammar; this file generalizes that walk to the full ladder.

func spanOf(pos lexer.Position) token.Span {
	return token.Span{Offset: pos.Offset}
}

func unquoteCypherString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(body[i])
			}
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func buildRegularQuery(g *RegularQueryG) *ast.RegularQuery {
	root := &ast.RegularQuery{Single: buildSingleQuery(g.First)}
	for _, u := range g.Unions {
		op := ast.OpUnion
		if u.All {
			op = ast.OpUnionAll
		}
		root = &ast.RegularQuery{Op: op, Left: root, Right: &ast.RegularQuery{Single: buildSingleQuery(u.Query)}}
	}
	root.OrderBy = buildOrderItems(g.OrderBy)
	root.Skip = buildOrExprPtr(g.Skip)
	root.Limit = buildOrExprPtr(g.Limit)
	// The last branch's RETURN grammar consumes a trailing ORDER BY/SKIP/LIMIT
	// itself; after a UNION those apply to the combined result, so they move
	// up to the root.
	if len(g.Unions) > 0 && root.OrderBy == nil && root.Skip == nil && root.Limit == nil {
		clauses := root.Right.Single.Clauses
		if ret := clauses[len(clauses)-1].Return; ret != nil {
			root.OrderBy, root.Skip, root.Limit = ret.OrderBy, ret.Skip, ret.Limit
			ret.OrderBy, ret.Skip, ret.Limit = nil, nil, nil
		}
	}
	return root
}

func buildSingleQuery(g *SingleQueryG) *ast.SingleQuery {
	sq := &ast.SingleQuery{}
	for _, c := range g.Clauses {
		sq.Clauses = append(sq.Clauses, buildClause(c))
	}
	return sq
}

func buildClause(g *ClauseG) *ast.Clause {
	c := &ast.Clause{}
	switch {
	case g.Match != nil:
		c.Match = buildMatch(g.Match)
	case g.Create != nil:
		c.Create = buildCreate(g.Create)
	case g.Merge != nil:
		c.Merge = buildMerge(g.Merge)
	case g.Set != nil:
		c.Set = buildSet(g.Set)
	case g.Remove != nil:
		c.Set = buildRemove(g.Remove)
	case g.Delete != nil:
		c.Delete = buildDelete(g.Delete)
	case g.Unwind != nil:
		c.Unwind = buildUnwind(g.Unwind)
	case g.With != nil:
		c.With = buildWith(g.With)
	case g.Return != nil:
		c.Return = buildReturn(g.Return)
	case g.Call != nil:
		c.Call = buildCall(g.Call)
	}
	return c
}

func buildMatch(g *MatchClauseG) *ast.Match {
	return &ast.Match{Optional: g.Optional, Pattern: buildPattern(g.Pattern), Where: buildOrExprPtr(g.Where)}
}

func buildCreate(g *CreateClauseG) *ast.Create {
	return &ast.Create{Pattern: buildPattern(g.Pattern)}
}

func buildSetItems(list []*SetItemG) []*ast.SetItem {
	var out []*ast.SetItem
	for _, g := range list {
		switch {
		case g.Prop != nil:
			out = append(out, &ast.SetItem{Kind: ast.SetProperty, Variable: g.Prop.Var, Property: g.Prop.Prop, Value: buildOr(g.Prop.Value)})
		case g.Merge != nil:
			out = append(out, &ast.SetItem{Kind: ast.SetPropertyMerge, Variable: g.Merge.Var, Value: buildOr(g.Merge.Value)})
		case g.Label != nil:
			for _, l := range g.Label.Labels {
				out = append(out, &ast.SetItem{Kind: ast.SetLabel, Variable: g.Label.Var, Label: l})
			}
		case g.Var != nil:
			out = append(out, &ast.SetItem{Kind: ast.SetVariable, Variable: g.Var.Var, Value: buildOr(g.Var.Value)})
		}
	}
	return out
}

func buildRemoveItems(list []*RemoveItemG) []*ast.SetItem {
	var out []*ast.SetItem
	for _, g := range list {
		switch {
		case g.Prop != nil:
			out = append(out, &ast.SetItem{Kind: ast.RemoveProperty, Variable: g.Prop.Var, Property: g.Prop.Prop})
		case g.Label != nil:
			for _, l := range g.Label.Labels {
				out = append(out, &ast.SetItem{Kind: ast.RemoveLabel, Variable: g.Label.Var, Label: l})
			}
		}
	}
	return out
}

func buildSet(g *SetClauseG) *ast.Set {
	return &ast.Set{Items: buildSetItems(g.Items)}
}

func buildRemove(g *RemoveClauseG) *ast.Set {
	return &ast.Set{Items: buildRemoveItems(g.Items), IsRemove: true}
}

func buildMerge(g *MergeClauseG) *ast.Merge {
	return &ast.Merge{
		Path:     buildPath(g.Path),
		OnCreate: buildSetItems(g.OnCreate),
		OnMatch:  buildSetItems(g.OnMatch),
	}
}

func buildDelete(g *DeleteClauseG) *ast.Delete {
	var exprs []ast.Expr
	for _, e := range g.Exprs {
		exprs = append(exprs, buildOr(e))
	}
	return &ast.Delete{Detach: g.Detach, Exprs: exprs}
}

func buildUnwind(g *UnwindClauseG) *ast.Unwind {
	return &ast.Unwind{Expr: buildOr(g.Expr), As: g.As}
}

func buildReturnItems(list []*ReturnItemG) []*ast.ReturnItem {
	var out []*ast.ReturnItem
	for _, g := range list {
		it := &ast.ReturnItem{Expr: buildOr(g.Expr)}
		if g.Alias != nil {
			it.Alias = *g.Alias
			it.HasAlias = true
		}
		out = append(out, it)
	}
	return out
}

func buildOrderItems(list []*OrderItemG) []*ast.OrderItem {
	var out []*ast.OrderItem
	for _, g := range list {
		out = append(out, &ast.OrderItem{Expr: buildOr(g.Expr), Descending: g.Desc})
	}
	return out
}

func buildWith(g *WithClauseG) *ast.With {
	return &ast.With{
		Distinct: g.Distinct,
		Items:    buildReturnItems(g.Items),
		Where:    buildOrExprPtr(g.Where),
		OrderBy:  buildOrderItems(g.OrderBy),
		Skip:     buildOrExprPtr(g.Skip),
		Limit:    buildOrExprPtr(g.Limit),
		Star:     g.Star,
	}
}

func buildReturn(g *ReturnClauseG) *ast.Return {
	return &ast.Return{
		Distinct: g.Distinct,
		Items:    buildReturnItems(g.Items),
		OrderBy:  buildOrderItems(g.OrderBy),
		Skip:     buildOrExprPtr(g.Skip),
		Limit:    buildOrExprPtr(g.Limit),
	}
}

func buildCall(g *CallClauseG) *ast.CallYield {
	var args []ast.Expr
	for _, a := range g.Args {
		args = append(args, buildOr(a))
	}
	return &ast.CallYield{Namespace: g.Namespace, Procedure: g.Proc, Args: args, Yields: g.Yields}
}

// -- patterns --

func buildMapProps(g *MapPropsG) *ast.MapLiteral {
	if g == nil {
		return nil
	}
	var entries []ast.MapEntry
	for _, e := range g.Entries {
		entries = append(entries, ast.MapEntry{Key: e.Key, Value: buildOr(e.Value)})
	}
	return ast.NewMapLiteral(token.Span{}, entries)
}

func buildRange(g *RangeG) *ast.Range {
	if g.Lo == nil && !g.HasRange {
		return &ast.Range{Lo: 1, HiInfinite: true}
	}
	lo := 1
	if g.Lo != nil {
		lo, _ = strconv.Atoi(*g.Lo)
	}
	if !g.HasRange {
		return &ast.Range{Lo: lo, Hi: lo}
	}
	if g.Hi == nil {
		return &ast.Range{Lo: lo, HiInfinite: true}
	}
	hi, _ := strconv.Atoi(*g.Hi)
	return &ast.Range{Lo: lo, Hi: hi}
}

func buildNodePattern(g *NodePatternG) *ast.NodePattern {
	np := &ast.NodePattern{Anonymous: true, Labels: g.Labels, Span: spanOf(g.Pos)}
	if g.Name != nil {
		np.Name = *g.Name
		np.Anonymous = false
	}
	np.Props = buildMapProps(g.Props)
	return np
}

func buildRelPattern(g *RelPatternG) *ast.RelPattern {
	var body *RelBodyG
	var dir ast.Direction
	switch {
	case g.Left != nil:
		body, dir = g.Left.Body, ast.DirLeft
	case g.Right != nil:
		body, dir = g.Right.Body, ast.DirRight
	default:
		body, dir = g.Either.Body, ast.DirEither
	}
	rp := &ast.RelPattern{Direction: dir, Anonymous: true}
	if body != nil {
		if body.Name != nil {
			rp.Name = *body.Name
			rp.Anonymous = false
		}
		if body.Types != nil {
			rp.Labels = body.Types.Types
		}
		rp.Props = buildMapProps(body.Props)
		if body.Range != nil {
			rp.VarLen = buildRange(body.Range)
		}
		rp.Span = spanOf(body.Pos)
	}
	return rp
}

func buildPath(g *PathG) *ast.Path {
	path := &ast.Path{}
	if g.VarName != nil {
		path.VarName = *g.VarName
	}
	path.Nodes = append(path.Nodes, buildNodePattern(g.First))
	for _, step := range g.Chain {
		path.Rels = append(path.Rels, buildRelPattern(step.Rel))
		path.Nodes = append(path.Nodes, buildNodePattern(step.Node))
	}
	return path
}

func buildPattern(g *PatternG) *ast.Pattern {
	p := &ast.Pattern{}
	for _, pg := range g.Paths {
		p.Paths = append(p.Paths, buildPath(pg))
	}
	return p
}

// -- expressions --

func buildOrExprPtr(g *OrExpr) ast.Expr {
	if g == nil {
		return nil
	}
	return buildOr(g)
}

// buildOr collects the full left-plus-rest operand list in one pass rather
// than folding left-to-right, so a chain of ORs (or a parenthesized OR
// nested inside another) flattens into one BoolExpr instead of nesting.
func buildOr(g *OrExpr) ast.Expr {
	first := buildAnd(g.Left)
	if len(g.Rest) == 0 {
		return first
	}
	operands := make([]ast.Expr, 0, len(g.Rest)+1)
	operands = append(operands, first)
	for _, r := range g.Rest {
		operands = append(operands, buildAnd(r))
	}
	return ast.FlattenBool(first.Span(), ast.OpOr, operands)
}

func buildAnd(g *AndExpr) ast.Expr {
	first := buildXor(g.Left)
	if len(g.Rest) == 0 {
		return first
	}
	operands := make([]ast.Expr, 0, len(g.Rest)+1)
	operands = append(operands, first)
	for _, r := range g.Rest {
		operands = append(operands, buildXor(r))
	}
	return ast.FlattenBool(first.Span(), ast.OpAnd, operands)
}

func buildXor(g *XorExpr) ast.Expr {
	acc := buildNot(g.Left)
	for _, r := range g.Rest {
		acc = desugarXor(acc, buildNot(r))
	}
	return acc
}

// desugarXor lowers A XOR B into (A∨B) ∧ ¬(A∧B) at parse time, so the rest
// of the pipeline never needs to know XOR exists.
func desugarXor(a, b ast.Expr) ast.Expr {
	or := ast.FlattenBool(a.Span(), ast.OpOr, []ast.Expr{a, b})
	and := ast.FlattenBool(a.Span(), ast.OpAnd, []ast.Expr{a, b})
	return ast.FlattenBool(a.Span(), ast.OpAnd, []ast.Expr{or, ast.NewNotExpr(a.Span(), and)})
}

func buildNot(g *NotExpr) ast.Expr {
	if g.Negated != nil {
		inner := buildNot(g.Negated)
		return ast.NewNotExpr(inner.Span(), inner)
	}
	return buildComparison(g.Cmp)
}

func cmpOpFromString(s string) ast.CmpOp {
	switch s {
	case "<>", "!=":
		return ast.CmpNeq
	case "<":
		return ast.CmpLt
	case "<=":
		return ast.CmpLte
	case ">":
		return ast.CmpGt
	case ">=":
		return ast.CmpGte
	default:
		return ast.CmpEq
	}
}

func buildComparison(g *ComparisonExpr) ast.Expr {
	left := buildAdd(g.Left)
	if len(g.Rest) == 0 {
		return left
	}
	chain := ast.NewChainCmp(left.Span(), left)
	for _, term := range g.Rest {
		chain.Extend(cmpOpFromString(term.Op), buildAdd(term.Right))
	}
	return chain
}

func buildAdd(g *AddExpr) ast.Expr {
	acc := buildMul(g.Left)
	for _, t := range g.Rest {
		op := ast.OpAdd
		if t.Op == "-" {
			op = ast.OpSub
		}
		acc = ast.NewBinaryExpr(acc.Span(), op, acc, buildMul(t.Right))
	}
	return acc
}

func buildMul(g *MulExpr) ast.Expr {
	acc := buildPow(g.Left)
	for _, t := range g.Rest {
		var op ast.BinaryOp
		switch t.Op {
		case "*":
			op = ast.OpMul
		case "/":
			op = ast.OpDiv
		case "%":
			op = ast.OpMod
		}
		acc = ast.NewBinaryExpr(acc.Span(), op, acc, buildPow(t.Right))
	}
	return acc
}

func buildPow(g *PowExpr) ast.Expr {
	acc := buildInIs(g.Left)
	for _, t := range g.Rest {
		acc = ast.NewBinaryExpr(acc.Span(), ast.OpPow, acc, buildInIs(t.Right))
	}
	return acc
}

func buildInIs(g *InIsExpr) ast.Expr {
	acc := buildUnary(g.Left)
	for _, t := range g.Rest {
		if t.In != nil {
			acc = ast.NewBinaryExpr(acc.Span(), ast.OpIn, acc, buildUnary(t.In))
		} else {
			acc = ast.NewIsNullExpr(acc.Span(), acc, t.IsNot)
		}
	}
	return acc
}

// buildUnary folds `-` onto a numeric literal directly (§4.1); any other
// operand keeps an ast.UnaryMinus node, which the expression transformer
// keeps as a UnaryMinus around its transformed operand.
func buildUnary(g *UnaryExpr) ast.Expr {
	if g.Neg != nil {
		inner := buildUnary(g.Neg)
		if lit, ok := inner.(*ast.Literal); ok && !lit.IsNull {
			switch v := lit.Value.(type) {
			case int64:
				return ast.NewLiteral(lit.Span(), -v)
			case float64:
				return ast.NewLiteral(lit.Span(), -v)
			}
		}
		return ast.NewUnaryMinus(inner.Span(), inner)
	}
	return buildStringMatch(g.Match)
}

func buildStringMatch(g *StringMatchExpr) ast.Expr {
	acc := buildCast(g.Left)
	for _, t := range g.Rest {
		right := buildCast(t.Right)
		switch {
		case t.StartsWith:
			acc = ast.NewStringMatchExpr(acc.Span(), ast.MatchStartsWith, acc, right)
		case t.EndsWith:
			acc = ast.NewStringMatchExpr(acc.Span(), ast.MatchEndsWith, acc, right)
		case t.Contains:
			acc = ast.NewStringMatchExpr(acc.Span(), ast.MatchContains, acc, right)
		case t.Regex:
			acc = ast.NewRegexMatchExpr(acc.Span(), acc, right)
		}
	}
	return acc
}

func buildCast(g *CastExpr) ast.Expr {
	base := buildPostfix(g.Base)
	if g.Type != nil {
		return ast.NewTypecastExpr(base.Span(), base, *g.Type)
	}
	return base
}

func buildPostfix(g *PostfixExpr) ast.Expr {
	acc := buildAtom(g.Atom)
	for _, suf := range g.Suffixes {
		switch {
		case suf.Dot != nil:
			acc = ast.NewPropertyAccess(acc.Span(), acc, suf.Dot.Property)
		case suf.Slice != nil:
			acc = ast.NewSlice(acc.Span(), acc, buildOrExprPtr(suf.Slice.Lo), buildOrExprPtr(suf.Slice.Hi))
		case suf.Index != nil:
			acc = ast.NewSubscript(acc.Span(), acc, buildOr(suf.Index.Index))
		}
	}
	return acc
}

func buildFuncCall(sp token.Span, g *FuncCallG) ast.Expr {
	fc := ast.NewFuncCall(sp, g.Namespace, g.Name, nil)
	if g.Args != nil {
		fc.Distinct = g.Args.Distinct
		fc.Star = g.Args.Star
		for _, a := range g.Args.Args {
			fc.Args = append(fc.Args, buildOr(a))
		}
	}
	return fc
}

func buildCaseExpr(sp token.Span, g *CaseExprG) ast.Expr {
	var operand ast.Expr
	if g.Operand != nil {
		operand = buildOr(g.Operand)
	}
	var whens []ast.CaseWhen
	for _, w := range g.Whens {
		whens = append(whens, ast.CaseWhen{When: buildOr(w.When), Then: buildOr(w.Then)})
	}
	var els ast.Expr
	if g.Else != nil {
		els = buildOr(g.Else)
	}
	return ast.NewCaseExpr(sp, operand, whens, els)
}

func buildAtom(g *Atom) ast.Expr {
	sp := spanOf(g.Pos)
	switch {
	case g.Null:
		return ast.NewNullLiteral(sp)
	case g.True:
		return ast.NewLiteral(sp, true)
	case g.False:
		return ast.NewLiteral(sp, false)
	case g.Case != nil:
		return buildCaseExpr(sp, g.Case)
	case g.Exists != nil:
		return ast.NewExistsExpr(sp, &ast.SubPattern{Pattern: buildPattern(g.Exists.Pattern)})
	case g.Func != nil:
		return buildFuncCall(sp, g.Func)
	case g.Param != nil:
		return ast.NewParameter(sp, strings.TrimPrefix(*g.Param, "$"))
	case g.Float != nil:
		f, _ := strconv.ParseFloat(*g.Float, 64)
		return ast.NewLiteral(sp, f)
	case g.Int != nil:
		n, _ := strconv.ParseInt(*g.Int, 10, 64)
		return ast.NewLiteral(sp, n)
	case g.String != nil:
		return ast.NewLiteral(sp, unquoteCypherString(*g.String))
	case g.List != nil:
		var items []ast.Expr
		for _, it := range g.List.Items {
			items = append(items, buildOr(it))
		}
		return ast.NewListLiteral(sp, items)
	case g.Map != nil:
		var entries []ast.MapEntry
		for _, e := range g.Map.Entries {
			entries = append(entries, ast.MapEntry{Key: e.Key, Value: buildOr(e.Value)})
		}
		return ast.NewMapLiteral(sp, entries)
	case g.Variable != nil:
		return ast.NewVariable(sp, *g.Variable)
	case g.SubExpr != nil:
		return buildOr(g.SubExpr)
	default:
		return ast.NewNullLiteral(sp)
	}
}
