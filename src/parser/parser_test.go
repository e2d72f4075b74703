package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypherplan/cyq/src/ast"
)

func mustParse(t *testing.T, q string) *ast.RegularQuery {
	t.Helper()
	p, err := New()
	require.NoError(t, err)
	rq, err := p.Parse(q)
	require.NoError(t, err)
	require.NotNil(t, rq)
	return rq
}

func TestParseSimpleMatchReturn(t *testing.T) {
	rq := mustParse(t, `MATCH (n:Person) WHERE n.age > 30 RETURN n.name`)
	require.Len(t, rq.Single.Clauses, 2)
	require.Equal(t, ast.KindMatch, rq.Single.Clauses[0].Kind())
	m := rq.Single.Clauses[0].Match
	require.Len(t, m.Pattern.Paths, 1)
	node := m.Pattern.Paths[0].Nodes[0]
	require.Equal(t, "n", node.Name)
	require.Equal(t, []string{"Person"}, node.Labels)
	require.NotNil(t, m.Where)
	require.Equal(t, ast.KindReturn, rq.Single.Clauses[1].Kind())
}

func TestParseVariableLengthRelationship(t *testing.T) {
	rq := mustParse(t, `MATCH (a)-[:KNOWS*2..5]->(b) RETURN a, b`)
	path := rq.Single.Clauses[0].Match.Pattern.Paths[0]
	require.Len(t, path.Rels, 1)
	rel := path.Rels[0]
	require.Equal(t, ast.DirRight, rel.Direction)
	require.Equal(t, []string{"KNOWS"}, rel.Labels)
	require.NotNil(t, rel.VarLen)
	require.Equal(t, 2, rel.VarLen.Lo)
	require.Equal(t, 5, rel.VarLen.Hi)
	require.False(t, rel.VarLen.HiInfinite)
}

func TestParseUnboundedVariableLength(t *testing.T) {
	rq := mustParse(t, `MATCH (a)-[:KNOWS*]->(b) RETURN a`)
	rel := rq.Single.Clauses[0].Match.Pattern.Paths[0].Rels[0]
	require.NotNil(t, rel.VarLen)
	require.Equal(t, 1, rel.VarLen.Lo)
	require.True(t, rel.VarLen.HiInfinite)
}

func TestParseUndirectedRelationship(t *testing.T) {
	rq := mustParse(t, `MATCH (a)-[r]-(b) RETURN r`)
	rel := rq.Single.Clauses[0].Match.Pattern.Paths[0].Rels[0]
	require.Equal(t, ast.DirEither, rel.Direction)
	require.Equal(t, "r", rel.Name)
}

func TestParseCreateMergeDeleteSetRemove(t *testing.T) {
	rq := mustParse(t, `
		MATCH (n:Person {name: "Ada"})
		MERGE (n)-[:WORKS_AT]->(c:Company {name: "Acme"})
			ON CREATE SET c.founded = 2020
			ON MATCH SET c.lastSeen = 1
		SET n.age = 41, n += {active: true}, n:Employee
		REMOVE n.tmp, n:Temp
		DETACH DELETE n
	`)
	require.Len(t, rq.Single.Clauses, 5)

	merge := rq.Single.Clauses[1].Merge
	require.Len(t, merge.OnCreate, 1)
	require.Equal(t, ast.SetProperty, merge.OnCreate[0].Kind)
	require.Len(t, merge.OnMatch, 1)

	set := rq.Single.Clauses[2].Set
	require.False(t, set.IsRemove)
	require.Len(t, set.Items, 3)
	require.Equal(t, ast.SetProperty, set.Items[0].Kind)
	require.Equal(t, ast.SetPropertyMerge, set.Items[1].Kind)
	require.Equal(t, ast.SetLabel, set.Items[2].Kind)

	remove := rq.Single.Clauses[3].Set
	require.True(t, remove.IsRemove)
	require.Equal(t, ast.RemoveProperty, remove.Items[0].Kind)
	require.Equal(t, ast.RemoveLabel, remove.Items[1].Kind)

	del := rq.Single.Clauses[4].Delete
	require.True(t, del.Detach)
	require.Len(t, del.Exprs, 1)
}

func TestParseWithUnwindAndOrderBy(t *testing.T) {
	rq := mustParse(t, `
		UNWIND [1, 2, 3] AS x
		WITH x WHERE x > 1 ORDER BY x DESC SKIP 1 LIMIT 10
		RETURN x AS y
	`)
	require.Len(t, rq.Single.Clauses, 3)
	unwind := rq.Single.Clauses[0].Unwind
	require.Equal(t, "x", unwind.As)
	list, ok := unwind.Expr.(*ast.ListLiteral)
	require.True(t, ok)
	require.Len(t, list.Items, 3)

	with := rq.Single.Clauses[1].With
	require.Len(t, with.OrderBy, 1)
	require.True(t, with.OrderBy[0].Descending)
	require.NotNil(t, with.Skip)
	require.NotNil(t, with.Limit)

	ret := rq.Single.Clauses[2].Return
	require.True(t, ret.Items[0].HasAlias)
	require.Equal(t, "y", ret.Items[0].Alias)
}

func TestParseUnion(t *testing.T) {
	rq := mustParse(t, `MATCH (n:A) RETURN n.name UNION ALL MATCH (n:B) RETURN n.name`)
	require.Equal(t, ast.OpUnionAll, rq.Op)
	require.NotNil(t, rq.Left)
	require.NotNil(t, rq.Right)
}

func TestParseExpressionPrecedence(t *testing.T) {
	rq := mustParse(t, `RETURN 1 + 2 * 3 = 7 AND NOT false`)
	item := rq.Single.Clauses[0].Return.Items[0]
	be, ok := item.Expr.(*ast.BoolExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpAnd, be.Op)
}

func TestParseComparisonChain(t *testing.T) {
	rq := mustParse(t, `MATCH (n) WHERE 1 < n.age < 100 RETURN n`)
	chain, ok := rq.Single.Clauses[0].Match.Where.(*ast.ChainCmp)
	require.True(t, ok)
	require.Len(t, chain.Operands, 3)
	require.Equal(t, []ast.CmpOp{ast.CmpLt, ast.CmpLt}, chain.Ops)
}

func TestParseUnaryMinusFoldsIntoLiteral(t *testing.T) {
	rq := mustParse(t, `RETURN -5, -3.5`)
	items := rq.Single.Clauses[0].Return.Items
	lit0 := items[0].Expr.(*ast.Literal)
	require.Equal(t, int64(-5), lit0.Value)
	lit1 := items[1].Expr.(*ast.Literal)
	require.Equal(t, -3.5, lit1.Value)
}

func TestParseXorDesugars(t *testing.T) {
	rq := mustParse(t, `RETURN true XOR false`)
	be, ok := rq.Single.Clauses[0].Return.Items[0].Expr.(*ast.BoolExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpAnd, be.Op)
	left, leftIsOr := be.Operands[0].(*ast.BoolExpr)
	require.True(t, leftIsOr && left.Op == ast.OpOr)
	_, rightIsNot := be.Operands[1].(*ast.NotExpr)
	require.True(t, rightIsNot)
}

func TestParseStringMatchOperators(t *testing.T) {
	rq := mustParse(t, `MATCH (n) WHERE n.name STARTS WITH "A" AND n.name =~ "^A.*" RETURN n`)
	and, ok := rq.Single.Clauses[0].Match.Where.(*ast.BoolExpr)
	require.True(t, ok)
	_, ok = and.Operands[0].(*ast.StringMatchExpr)
	require.True(t, ok)
	_, ok = and.Operands[1].(*ast.RegexMatchExpr)
	require.True(t, ok)
}

func TestParseCaseExpression(t *testing.T) {
	rq := mustParse(t, `RETURN CASE n.kind WHEN "a" THEN 1 WHEN "b" THEN 2 ELSE 0 END`)
	ce, ok := rq.Single.Clauses[0].Return.Items[0].Expr.(*ast.CaseExpr)
	require.True(t, ok)
	require.NotNil(t, ce.Operand)
	require.Len(t, ce.Whens, 2)
	require.NotNil(t, ce.Else)
}

func TestParseExistsSubpattern(t *testing.T) {
	rq := mustParse(t, `MATCH (n) WHERE EXISTS { (n)-[:KNOWS]->(:Person) } RETURN n`)
	ee, ok := rq.Single.Clauses[0].Match.Where.(*ast.ExistsExpr)
	require.True(t, ok)
	require.Len(t, ee.SubPattern.Pattern.Paths, 1)
}

func TestParseSubscriptSliceAndCast(t *testing.T) {
	rq := mustParse(t, `RETURN n.list[0], n.list[1..3], n.age::integer`)
	items := rq.Single.Clauses[0].Return.Items
	_, ok := items[0].Expr.(*ast.Indirection)
	require.True(t, ok)
	sl, ok := items[1].Expr.(*ast.Indirection)
	require.True(t, ok)
	require.True(t, sl.IsSlice)
	cast, ok := items[2].Expr.(*ast.TypecastExpr)
	require.True(t, ok)
	require.Equal(t, "integer", cast.Target)
}

func TestParseCallYield(t *testing.T) {
	rq := mustParse(t, `CALL db.labels() YIELD label RETURN label`)
	call := rq.Single.Clauses[0].Call
	require.Equal(t, []string{"db"}, call.Namespace)
	require.Equal(t, "labels", call.Procedure)
	require.Equal(t, []string{"label"}, call.Yields)
}

func TestParseSyntaxErrorIsReported(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	_, err = p.Parse(`MATCH (n RETURN n`)
	require.Error(t, err)
}
