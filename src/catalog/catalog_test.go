package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemCatalogResolvesRegisteredGraph(t *testing.T) {
	c := NewMemCatalog()
	g := c.AddGraph("social")
	g.AddLabel(NodeLabel, "Person", "")
	g.AddLabel(EdgeLabel, "KNOWS", "")

	resolved, err := c.ResolveGraph("social")
	require.NoError(t, err)
	require.Equal(t, "social", resolved.Name())

	info, ok := resolved.Label(NodeLabel, "Person")
	require.True(t, ok)
	require.Equal(t, "social.Person", info.Relation)

	_, ok = resolved.Label(EdgeLabel, "Person")
	require.False(t, ok, "vertex and edge label namespaces must not collide")
}

func TestMemCatalogUnknownGraph(t *testing.T) {
	c := NewMemCatalog()
	_, err := c.ResolveGraph("nope")
	require.Error(t, err)
	require.IsType(t, &ErrUnknownGraph{}, err)
}

func TestLabelsReturnsStableOrder(t *testing.T) {
	c := NewMemCatalog()
	g := c.AddGraph("g")
	g.AddLabel(NodeLabel, "A", "")
	g.AddLabel(NodeLabel, "B", "")
	g.AddLabel(NodeLabel, "C", "")

	resolved, _ := c.ResolveGraph("g")
	labels := resolved.Labels(NodeLabel)
	require.Len(t, labels, 3)
	require.Equal(t, "A", labels[0].Name)
	require.Equal(t, "B", labels[1].Name)
	require.Equal(t, "C", labels[2].Name)
}
