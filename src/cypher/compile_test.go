package cypher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypherplan/cyq/src/catalog"
)

func testCatalog() catalog.Catalog {
	c := catalog.NewMemCatalog()
	g := c.AddGraph("social")
	g.AddLabel(catalog.NodeLabel, "Person", "")
	g.AddLabel(catalog.EdgeLabel, "KNOWS", "")
	return c
}

func TestCompileReturnsPlanColumns(t *testing.T) {
	c, err := New(nil, nil)
	require.NoError(t, err)

	p, err := c.Compile(context.Background(), testCatalog(), "social", "MATCH (n:Person) RETURN n.name")
	require.NoError(t, err)
	require.Equal(t, []string{"n.name"}, p.Columns)
}

func TestCompileCachesIdenticalQueries(t *testing.T) {
	c, err := New(nil, nil)
	require.NoError(t, err)

	cat := testCatalog()
	p1, err := c.Compile(context.Background(), cat, "social", "MATCH (n:Person) RETURN n")
	require.NoError(t, err)
	p2, err := c.Compile(context.Background(), cat, "social", "MATCH (n:Person) RETURN n")
	require.NoError(t, err)
	require.Same(t, p1, p2)
}

func TestCompileSurfacesSyntaxErrors(t *testing.T) {
	c, err := New(nil, nil)
	require.NoError(t, err)

	_, err = c.Compile(context.Background(), testCatalog(), "social", "MATCH (n RETURN n")
	require.Error(t, err)
}

func TestCompileFallsBackToDefaultGraphNamespace(t *testing.T) {
	c, err := New(nil, nil)
	require.NoError(t, err)

	cat := catalog.NewMemCatalog()
	g := cat.AddGraph("default")
	g.AddLabel(catalog.NodeLabel, "Person", "")

	p, err := c.Compile(context.Background(), cat, "", "MATCH (n:Person) RETURN n")
	require.NoError(t, err)
	require.Equal(t, []string{"n"}, p.Columns)
}
