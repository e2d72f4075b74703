package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypherplan/cyq/src/token"
)

func TestPrintExprLiteralsUseCanonicalText(t *testing.T) {
	require.Equal(t, "1", PrintExpr(NewLiteral(token.Span{}, int64(1))))
	require.Equal(t, "'hi'", PrintExpr(NewLiteral(token.Span{}, "hi")))
	require.Equal(t, "true", PrintExpr(NewLiteral(token.Span{}, true)))
	require.Equal(t, "NULL", PrintExpr(NewNullLiteral(token.Span{})))
}

func TestPrintExprChainCmpUsesOperators(t *testing.T) {
	c := NewChainCmp(token.Span{}, NewVariable(token.Span{}, "a"))
	c.Extend(CmpLt, NewVariable(token.Span{}, "b"))
	c.Extend(CmpLt, NewVariable(token.Span{}, "c"))
	require.Equal(t, "(a < b < c)", PrintExpr(c))
}

func TestPrintExprPropertyAccessAndFuncCall(t *testing.T) {
	pa := NewPropertyAccess(token.Span{}, NewVariable(token.Span{}, "n"), "name")
	require.Equal(t, "n.name", PrintExpr(pa))

	fc := NewFuncCall(token.Span{}, nil, "count", nil)
	fc.Star = true
	require.Equal(t, "count(*)", PrintExpr(fc))
}

func TestPrintRendersMatchReturn(t *testing.T) {
	np := &NodePattern{Name: "n", Labels: []string{"Person"}}
	path := &Path{Nodes: []*NodePattern{np}}
	pat := &Pattern{Paths: []*Path{path}}
	match := &Clause{Match: &Match{Pattern: pat}}
	ret := &Clause{Return: &Return{Items: []*ReturnItem{{Expr: NewVariable(token.Span{}, "n")}}}}
	sq := &SingleQuery{Clauses: []*Clause{match, ret}}
	rq := &RegularQuery{Single: sq}

	require.Equal(t, "MATCH (n:Person)\nRETURN n", Print(rq))
}
