package fixture

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypherplan/cyq/src/catalog"
	"github.com/cypherplan/cyq/src/vle"
)

const sample = `
graph: social
vertices:
  - id: 1
    labels: [Person]
    props: {name: Alice}
  - id: 2
    labels: [Person]
    props: {name: Bob}
  - id: 3
    labels: [City]
    props: {name: Springfield}
edges:
  - id: 1
    label: KNOWS
    start: 1
    end: 2
  - id: 2
    label: LIVES_IN
    start: 1
    end: 3
`

func TestParseBuildsCatalogAndAdjacency(t *testing.T) {
	g, err := Parse([]byte(sample))
	require.NoError(t, err)

	graph, err := g.Catalog.ResolveGraph("social")
	require.NoError(t, err)

	_, ok := graph.Label(catalog.NodeLabel, "Person")
	require.True(t, ok)
	_, ok = graph.Label(catalog.NodeLabel, "City")
	require.True(t, ok)
	_, ok = graph.Label(catalog.EdgeLabel, "KNOWS")
	require.True(t, ok)

	out := g.Adjacency.EdgesOut(vle.VertexID(1))
	require.Len(t, out, 2)
}

func TestParseRejectsMissingGraphName(t *testing.T) {
	_, err := Parse([]byte("vertices: []"))
	require.Error(t, err)
}

func TestParseRejectsEdgeWithoutLabel(t *testing.T) {
	_, err := Parse([]byte(`
graph: g
edges:
  - id: 1
    start: 1
    end: 2
`))
	require.Error(t, err)
}

func TestParseCapturesVertexProperties(t *testing.T) {
	g, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Equal(t, "Alice", g.VertexProps[vle.VertexID(1)]["name"])
}
