package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypherplan/cyq/src/ast"
	"github.com/cypherplan/cyq/src/catalog"
	"github.com/cypherplan/cyq/src/cyqerr"
	"github.com/cypherplan/cyq/src/parser"
	"github.com/cypherplan/cyq/src/plan"
)

func testCatalog(t *testing.T) *catalog.MemCatalog {
	t.Helper()
	c := catalog.NewMemCatalog()
	g := c.AddGraph("social")
	g.AddLabel(catalog.NodeLabel, "Person", "")
	g.AddLabel(catalog.NodeLabel, "City", "")
	g.AddLabel(catalog.EdgeLabel, "KNOWS", "")
	g.AddLabel(catalog.EdgeLabel, "LIVES_IN", "")
	return c
}

func mustCompile(t *testing.T, query string) *plan.Plan {
	t.Helper()
	p, err := parser.New()
	require.NoError(t, err)
	q, err := p.Parse(query)
	require.NoError(t, err)
	ctx, err := NewContext(testCatalog(t), "social")
	require.NoError(t, err)
	pl, err := TransformQuery(ctx, q)
	require.NoError(t, err)
	return pl
}

func TestTransformSimpleMatchReturn(t *testing.T) {
	pl := mustCompile(t, "MATCH (a:Person)-[:KNOWS]->(b:Person) WHERE a.age > 20 RETURN a.name, b.name")
	require.Equal(t, []string{"a.name", "b.name"}, pl.Columns)

	proj, ok := pl.Root.(*plan.ProjectNode)
	require.True(t, ok)
	_, ok = proj.Input.(*plan.FilterNode)
	require.True(t, ok, "WHERE should wrap the pattern in a FilterNode")
}

func TestTransformJoinQualsOrientedByDirection(t *testing.T) {
	pl := mustCompile(t, "MATCH (a:Person)-[r:KNOWS]->(b:Person) RETURN r")
	proj := pl.Root.(*plan.ProjectNode)
	outer := proj.Input.(*plan.JoinNode)
	require.Len(t, outer.Quals, 1, "the single qual spanning left vertex, edge, and right vertex lives on the final join")
	inner := outer.Left.(*plan.JoinNode)
	require.Empty(t, inner.Quals, "the edge is cross-joined to its left vertex unqualified")
}

func TestTransformUndirectedEdgeOrsBothOrientations(t *testing.T) {
	pl := mustCompile(t, "MATCH (a:Person)-[r:KNOWS]-(b:Person) RETURN r")
	proj := pl.Root.(*plan.ProjectNode)
	outer := proj.Input.(*plan.JoinNode)
	require.Len(t, outer.Quals, 1)
	orExpr, ok := outer.Quals[0].(*ast.BoolExpr)
	require.True(t, ok, "an undirected edge's join qual must be the OR of both orientations")
	require.Equal(t, ast.OpOr, orExpr.Op)
	require.Len(t, orExpr.Operands, 2)
}

func TestTransformAnonymousNodeGetsDeterministicAlias(t *testing.T) {
	pl := mustCompile(t, "MATCH (:Person)-[:KNOWS]->(b:Person) RETURN b")
	proj := pl.Root.(*plan.ProjectNode)
	outer := proj.Input.(*plan.JoinNode)
	inner := outer.Left.(*plan.JoinNode)
	scan := inner.Left.(*plan.ScanNode)
	require.Equal(t, "_default_0", scan.Alias)
}

func TestTransformLabellessNodeScansAllLabels(t *testing.T) {
	pl := mustCompile(t, "MATCH (n) RETURN n")
	proj := pl.Root.(*plan.ProjectNode)
	scan, ok := proj.Input.(*plan.AllLabelsScan)
	require.True(t, ok)
	require.Len(t, scan.Labels, 2)
}

func TestTransformOptionalMatchProducesLeftJoin(t *testing.T) {
	pl := mustCompile(t, "MATCH (a:Person) OPTIONAL MATCH (a)-[:KNOWS]->(b:Person) RETURN a, b")
	proj := pl.Root.(*plan.ProjectNode)
	join := proj.Input.(*plan.JoinNode)
	require.Equal(t, plan.LeftJoin, join.Type)
}

func TestTransformCreateEmitsWriteNode(t *testing.T) {
	pl := mustCompile(t, "CREATE (a:Person {name: 'Ann'})-[:KNOWS]->(b:Person {name: 'Bo'})")
	require.Len(t, pl.Writes, 1)
	require.Equal(t, plan.WriteCreate, pl.Writes[0].Op)
	require.NotNil(t, pl.Writes[0].Pattern)
}

func TestTransformCreateRejectsUndirectedEdge(t *testing.T) {
	p, err := parser.New()
	require.NoError(t, err)
	q, err := p.Parse("CREATE (a)-[:KNOWS]-(b)")
	require.NoError(t, err)
	ctx, err := NewContext(testCatalog(t), "social")
	require.NoError(t, err)
	_, err = TransformQuery(ctx, q)
	require.Error(t, err)
}

func TestTransformSetAndRemove(t *testing.T) {
	pl := mustCompile(t, "MATCH (a:Person) SET a.age = 30 REMOVE a:City RETURN a")
	require.Len(t, pl.Writes, 2)
	require.Equal(t, plan.WriteSetProperty, pl.Writes[0].Op)
	require.Equal(t, plan.WriteRemoveLabel, pl.Writes[1].Op)
}

func TestTransformDetachDelete(t *testing.T) {
	pl := mustCompile(t, "MATCH (a:Person) DETACH DELETE a")
	require.Len(t, pl.Writes, 1)
	require.True(t, pl.Writes[0].Detach)
}

func TestTransformMergeOnCreateOnMatch(t *testing.T) {
	pl := mustCompile(t, "MERGE (a:Person {name: 'Ann'}) ON CREATE SET a.seen = 1 ON MATCH SET a.seen = 2 RETURN a")
	require.Len(t, pl.Writes, 3)
	require.Equal(t, plan.WriteMergeCreate, pl.Writes[0].Op)
}

func TestTransformUnwind(t *testing.T) {
	pl := mustCompile(t, "UNWIND [1, 2, 3] AS x RETURN x")
	proj := pl.Root.(*plan.ProjectNode)
	_, ok := proj.Input.(*plan.UnwindNode)
	require.True(t, ok)
}

func TestTransformWithNarrowsScope(t *testing.T) {
	p, err := parser.New()
	require.NoError(t, err)
	q, err := p.Parse("MATCH (a:Person)-[:KNOWS]->(b:Person) WITH a RETURN b")
	require.NoError(t, err)
	ctx, err := NewContext(testCatalog(t), "social")
	require.NoError(t, err)
	_, err = TransformQuery(ctx, q)
	require.Error(t, err, "b should no longer be visible after WITH a")
}

func TestTransformUnionRequiresMatchingColumnCounts(t *testing.T) {
	p, err := parser.New()
	require.NoError(t, err)
	q, err := p.Parse("MATCH (a:Person) RETURN a.name UNION MATCH (b:Person) RETURN b.name, b.age")
	require.NoError(t, err)
	ctx, err := NewContext(testCatalog(t), "social")
	require.NoError(t, err)
	_, err = TransformQuery(ctx, q)
	require.Error(t, err)
}

func TestTransformUnionAllCombinesBranches(t *testing.T) {
	pl := mustCompile(t, "MATCH (a:Person) RETURN a.name UNION ALL MATCH (b:Person) RETURN b.name")
	union, ok := pl.Root.(*plan.UnionNode)
	require.True(t, ok)
	require.True(t, union.All)
}

func TestTransformOuterOrderBySkipLimit(t *testing.T) {
	pl := mustCompile(t, "MATCH (a:Person) RETURN a.name AS n ORDER BY n SKIP 1 LIMIT 10")
	limit, ok := pl.Root.(*plan.LimitNode)
	require.True(t, ok)
	_, ok = limit.Input.(*plan.SortNode)
	require.True(t, ok)
}

func TestTransformExistsPlansSubpattern(t *testing.T) {
	p, err := parser.New()
	require.NoError(t, err)
	q, err := p.Parse("MATCH (a:Person) WHERE EXISTS { (a)-[:KNOWS]->(:Person) } RETURN a")
	require.NoError(t, err)
	ctx, err := NewContext(testCatalog(t), "social")
	require.NoError(t, err)
	_, err = TransformQuery(ctx, q)
	require.NoError(t, err)
	require.Len(t, ctx.ExistsPlans, 1)
}

func TestTransformVariableLengthRelationshipProducesVLENode(t *testing.T) {
	pl := mustCompile(t, "MATCH (a:Person)-[:KNOWS*1..3]->(b:Person) RETURN b")
	proj := pl.Root.(*plan.ProjectNode)
	vle, ok := proj.Input.(*plan.VLENode)
	require.True(t, ok)
	require.Equal(t, 1, vle.Range.Lo)
	require.Equal(t, 3, vle.Range.Hi)
}

func TestTransformMultiEdgePatternEnforcesEdgeUniqueness(t *testing.T) {
	pl := mustCompile(t, "MATCH (a:Person)-[r1:KNOWS]->(b:Person)-[r2:KNOWS]->(c:Person) RETURN r1, r2")
	filter, ok := pl.Root.(*plan.ProjectNode).Input.(*plan.FilterNode)
	require.True(t, ok, "more than one relationship alias must add an edge-uniqueness filter")
	call, ok := filter.Cond.(*ast.FuncCall)
	require.True(t, ok)
	require.Equal(t, "enforce_edge_uniqueness", call.Name)
	require.Len(t, call.Args, 2)
}

func TestTransformSingleEdgePatternSkipsEdgeUniqueness(t *testing.T) {
	pl := mustCompile(t, "MATCH (a:Person)-[r:KNOWS]->(b:Person) RETURN r")
	_, ok := pl.Root.(*plan.ProjectNode).Input.(*plan.FilterNode)
	require.False(t, ok, "a single relationship alias needs no edge-uniqueness filter")
}

func TestTransformLimitRejectsVariableReference(t *testing.T) {
	p, err := parser.New()
	require.NoError(t, err)
	q, err := p.Parse("MATCH (a:Person) RETURN a.name AS n LIMIT n")
	require.NoError(t, err)
	ctx, err := NewContext(testCatalog(t), "social")
	require.NoError(t, err)
	_, err = TransformQuery(ctx, q)
	require.Error(t, err)
	require.Equal(t, "IllegalLimit", err.(*cyqerr.Error).Code)
}

func TestTransformWithRequiresAliasOnNonVariableItem(t *testing.T) {
	p, err := parser.New()
	require.NoError(t, err)
	q, err := p.Parse("MATCH (a:Person) WITH a.name RETURN a")
	require.NoError(t, err)
	ctx, err := NewContext(testCatalog(t), "social")
	require.NoError(t, err)
	_, err = TransformQuery(ctx, q)
	require.Error(t, err)
	require.Equal(t, "MissingAlias", err.(*cyqerr.Error).Code)
}

func TestTransformUnionOrderByRejectsNonColumnExpression(t *testing.T) {
	p, err := parser.New()
	require.NoError(t, err)
	q, err := p.Parse("MATCH (a:Person) RETURN a.name AS n UNION MATCH (b:Person) RETURN b.name AS n ORDER BY n + 1")
	require.NoError(t, err)
	ctx, err := NewContext(testCatalog(t), "social")
	require.NoError(t, err)
	_, err = TransformQuery(ctx, q)
	require.Error(t, err)
	require.Equal(t, "InvalidUnionOrderBy", err.(*cyqerr.Error).Code)
}

func TestTransformNamedPathBuildsTraversalExpr(t *testing.T) {
	pl := mustCompile(t, "MATCH p = (a:Person)-[r:KNOWS]->(b:Person) RETURN p")
	proj := pl.Root.(*plan.ProjectNode)
	call, ok := proj.Targets[0].Expr.(*ast.FuncCall)
	require.True(t, ok, "a named path variable must read back as a build_traversal call")
	require.Equal(t, "build_traversal", call.Name)
	require.Len(t, call.Args, 3)
}

func TestTransformPatternPropertiesLowerToContainment(t *testing.T) {
	pl := mustCompile(t, "MATCH (a:Person {name: 'Ann'}) RETURN a")
	scan := pl.Root.(*plan.ProjectNode).Input.(*plan.FilterNode)
	bin, ok := scan.Cond.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpContains, bin.Op)
}

func TestTransformCallYieldIsNotSupported(t *testing.T) {
	p, err := parser.New()
	require.NoError(t, err)
	q, err := p.Parse("CALL db.labels() YIELD label RETURN label")
	require.NoError(t, err)
	ctx, err := NewContext(testCatalog(t), "social")
	require.NoError(t, err)
	_, err = TransformQuery(ctx, q)
	require.Error(t, err)
}
