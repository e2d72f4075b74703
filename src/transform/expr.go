package transform

import (
	"strings"

	"github.com/cypherplan/cyq/src/ast"
	"github.com/cypherplan/cyq/src/cyqerr"
	"github.com/cypherplan/cyq/src/plan"
)

// TransformExpr lowers one expression tree in place: chained comparisons
// become a conjunction of pairwise ChainCmp nodes, =~ becomes a call to
// regex_match, the operand form of CASE is rewritten into the operand-less
// form by synthesizing equality comparisons, and EXISTS{} plans its
// subpattern and is left as a marker node keyed into ctx.ExistsPlans. Every
// other node is rebuilt with its children transformed.
func TransformExpr(ctx *Context, e ast.Expr) (ast.Expr, error) {
	if e == nil {
		return nil, nil
	}
	switch n := e.(type) {
	case *ast.Literal, *ast.Parameter:
		return e, nil

	case *ast.Variable:
		if expr, ok := ctx.PathExprs[n.Name]; ok {
			return expr, nil
		}
		if _, err := ctx.Resolver.MustLookup(n.Name, n.Span()); err != nil {
			return nil, err
		}
		return e, nil

	case *ast.BinaryExpr:
		l, err := TransformExpr(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		r, err := TransformExpr(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		if n.Op == ast.OpAnd || n.Op == ast.OpOr {
			return ast.FlattenBool(n.Span(), n.Op, []ast.Expr{l, r}), nil
		}
		return ast.NewBinaryExpr(n.Span(), n.Op, l, r), nil

	case *ast.BoolExpr:
		operands := make([]ast.Expr, len(n.Operands))
		for i, o := range n.Operands {
			v, err := TransformExpr(ctx, o)
			if err != nil {
				return nil, err
			}
			operands[i] = v
		}
		return ast.FlattenBool(n.Span(), n.Op, operands), nil

	case *ast.NotExpr:
		operand, err := TransformExpr(ctx, n.Operand)
		if err != nil {
			return nil, err
		}
		return ast.NewNotExpr(n.Span(), operand), nil

	case *ast.ChainCmp:
		return lowerChainCmp(ctx, n)

	case *ast.UnaryMinus:
		operand, err := TransformExpr(ctx, n.Operand)
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryMinus(n.Span(), operand), nil

	case *ast.StringMatchExpr:
		l, err := TransformExpr(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		r, err := TransformExpr(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		return ast.NewStringMatchExpr(n.Span(), n.Op, l, r), nil

	case *ast.RegexMatchExpr:
		l, err := TransformExpr(ctx, n.Left)
		if err != nil {
			return nil, err
		}
		r, err := TransformExpr(ctx, n.Right)
		if err != nil {
			return nil, err
		}
		return ast.NewFuncCall(n.Span(), nil, "regex_match", []ast.Expr{l, r}), nil

	case *ast.IsNullExpr:
		operand, err := TransformExpr(ctx, n.Operand)
		if err != nil {
			return nil, err
		}
		return ast.NewIsNullExpr(n.Span(), operand, n.Negated), nil

	case *ast.TypecastExpr:
		switch strings.ToLower(n.Target) {
		case "integer", "float", "numeric", "string", "boolean", "vertex", "edge", "traversal", "variable_edge":
		default:
			return nil, cyqerr.Semanticf(toErrSpan(n.Span()), "UnknownTypecast", "unknown typecast target %q", n.Target)
		}
		operand, err := TransformExpr(ctx, n.Operand)
		if err != nil {
			return nil, err
		}
		return ast.NewTypecastExpr(n.Span(), operand, n.Target), nil

	case *ast.Indirection:
		target, err := TransformExpr(ctx, n.Target)
		if err != nil {
			return nil, err
		}
		if n.IsSlice {
			lo, err := TransformExpr(ctx, n.Lo)
			if err != nil {
				return nil, err
			}
			hi, err := TransformExpr(ctx, n.Hi)
			if err != nil {
				return nil, err
			}
			return ast.NewSlice(n.Span(), target, lo, hi), nil
		}
		index, err := TransformExpr(ctx, n.Index)
		if err != nil {
			return nil, err
		}
		return ast.NewSubscript(n.Span(), target, index), nil

	case *ast.PropertyAccess:
		target, err := TransformExpr(ctx, n.Target)
		if err != nil {
			return nil, err
		}
		return ast.NewPropertyAccess(n.Span(), target, n.Property), nil

	case *ast.ListLiteral:
		items := make([]ast.Expr, len(n.Items))
		for i, it := range n.Items {
			v, err := TransformExpr(ctx, it)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return ast.NewListLiteral(n.Span(), items), nil

	case *ast.MapLiteral:
		entries := make([]ast.MapEntry, len(n.Entries))
		for i, e := range n.Entries {
			v, err := TransformExpr(ctx, e.Value)
			if err != nil {
				return nil, err
			}
			entries[i] = ast.MapEntry{Key: e.Key, Value: v}
		}
		return ast.NewMapLiteral(n.Span(), entries), nil

	case *ast.FuncCall:
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			v, err := TransformExpr(ctx, a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		call := ast.NewFuncCall(n.Span(), n.Namespace, n.Name, args)
		call.Distinct = n.Distinct
		call.Star = n.Star
		return call, nil

	case *ast.CaseExpr:
		return lowerCaseExpr(ctx, n)

	case *ast.ExistsExpr:
		return lowerExists(ctx, n)

	default:
		return nil, cyqerr.Semanticf(cyqerr.Span{}, "UnhandledExpression", "transform: unhandled expression node %T", n)
	}
}

// lowerChainCmp rewrites a1 op1 a2 op2 a3 ... into
// (a1 op1 a2) AND (a2 op2 a3) AND ..., each conjunct itself a two-operand
// ChainCmp, per the design note on ast.ChainCmp.
func lowerChainCmp(ctx *Context, n *ast.ChainCmp) (ast.Expr, error) {
	operands := make([]ast.Expr, len(n.Operands))
	for i, o := range n.Operands {
		v, err := TransformExpr(ctx, o)
		if err != nil {
			return nil, err
		}
		operands[i] = v
	}
	if len(n.Ops) == 0 {
		pair := ast.NewChainCmp(n.Span(), operands[0])
		return pair, nil
	}
	conjuncts := make([]ast.Expr, len(n.Ops))
	for i, op := range n.Ops {
		pair := ast.NewChainCmp(n.Span(), operands[i])
		pair.Extend(op, operands[i+1])
		conjuncts[i] = pair
	}
	if len(conjuncts) == 1 {
		return conjuncts[0], nil
	}
	return ast.FlattenBool(n.Span(), ast.OpAnd, conjuncts), nil
}

// lowerCaseExpr rewrites the operand form `CASE x WHEN v THEN r ...` into
// the operand-less form by synthesizing an equality ChainCmp per arm.
func lowerCaseExpr(ctx *Context, n *ast.CaseExpr) (ast.Expr, error) {
	var operand ast.Expr
	var err error
	if n.Operand != nil {
		operand, err = TransformExpr(ctx, n.Operand)
		if err != nil {
			return nil, err
		}
	}
	whens := make([]ast.CaseWhen, len(n.Whens))
	for i, w := range n.Whens {
		cond, err := TransformExpr(ctx, w.When)
		if err != nil {
			return nil, err
		}
		then, err := TransformExpr(ctx, w.Then)
		if err != nil {
			return nil, err
		}
		if operand != nil {
			eq := ast.NewChainCmp(cond.Span(), operand)
			eq.Extend(ast.CmpEq, cond)
			cond = eq
		}
		whens[i] = ast.CaseWhen{When: cond, Then: then}
	}
	els, err := TransformExpr(ctx, n.Else)
	if err != nil {
		return nil, err
	}
	return ast.NewCaseExpr(n.Span(), nil, whens, els), nil
}

// lowerExists plans the EXISTS{} subpattern as a correlated scan tree over a
// pushed scope that can see every binding currently visible, then records
// the subplan keyed on n itself; the returned expression is n unchanged so
// callers can look the plan back up later.
func lowerExists(ctx *Context, n *ast.ExistsExpr) (ast.Expr, error) {
	ctx.Resolver.PushScope()
	defer ctx.Resolver.PopScope()

	root, err := TransformPattern(ctx, n.SubPattern.Pattern)
	if err != nil {
		return nil, err
	}
	ctx.ExistsPlans[n] = &plan.Plan{Root: root}
	return n, nil
}
