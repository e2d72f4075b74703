package vle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// chain: 1 -KNOWS-> 2 -KNOWS-> 3 -KNOWS-> 4
func chainGraph() *MemGraph {
	g := NewMemGraph()
	g.AddEdge(1, 1, 2, "KNOWS")
	g.AddEdge(2, 2, 3, "KNOWS")
	g.AddEdge(3, 3, 4, "KNOWS")
	return g
}

func TestEngineFindsDirectPathWithinBounds(t *testing.T) {
	g := chainGraph()
	e := NewEngine(g, 1, 3, Bounds{Lo: 1, Hi: 5}, DirRight, Constraint{})

	path, ok := e.Next()
	require.True(t, ok)
	require.Equal(t, []EdgeID{1, 2}, path)
}

func TestEngineRespectsLowerBound(t *testing.T) {
	g := NewMemGraph()
	g.AddEdge(1, 1, 2, "KNOWS")

	e := NewEngine(g, 1, 2, Bounds{Lo: 2, Hi: 5}, DirRight, Constraint{})
	_, ok := e.Next()
	require.False(t, ok, "single hop is shorter than the required minimum")
}

func TestEngineRespectsUpperBound(t *testing.T) {
	g := chainGraph()
	// 1 -> 4 requires 3 hops, but the quantifier only allows up to 2.
	e := NewEngine(g, 1, 4, Bounds{Lo: 1, Hi: 2}, DirRight, Constraint{})
	_, ok := e.Next()
	require.False(t, ok)
}

func TestEngineEnumeratesMultiplePathsAcrossCalls(t *testing.T) {
	g := NewMemGraph()
	// two parallel routes from 1 to 3
	g.AddEdge(1, 1, 2, "KNOWS")
	g.AddEdge(2, 2, 3, "KNOWS")
	g.AddEdge(3, 1, 3, "KNOWS")

	e := NewEngine(g, 1, 3, Bounds{Lo: 1, Hi: 5}, DirRight, Constraint{})

	var found [][]EdgeID
	for {
		p, ok := e.Next()
		if !ok {
			break
		}
		found = append(found, p)
	}
	require.Len(t, found, 2)
}

func TestEngineLeftDirectionWalksReverseEdges(t *testing.T) {
	g := chainGraph()
	// with DirLeft, stepping from 4 should walk 3 -KNOWS-> 4's reverse: 4 to 3 to 2.
	e := NewEngine(g, 4, 2, Bounds{Lo: 1, Hi: 5}, DirLeft, Constraint{})

	path, ok := e.Next()
	require.True(t, ok)
	require.Equal(t, []EdgeID{3, 2}, path)
}

func TestEngineEitherDirectionIgnoresEdgeOrientation(t *testing.T) {
	g := NewMemGraph()
	g.AddEdge(1, 2, 1, "KNOWS") // edge points 2 -> 1, but DirEither should still let 1 reach 2

	e := NewEngine(g, 1, 2, Bounds{Lo: 1, Hi: 1}, DirEither, Constraint{})
	path, ok := e.Next()
	require.True(t, ok)
	require.Equal(t, []EdgeID{1}, path)
}

func TestEngineConstraintFiltersByLabel(t *testing.T) {
	g := NewMemGraph()
	g.AddEdge(1, 1, 2, "BLOCKS")
	g.AddEdge(2, 1, 2, "KNOWS")

	e := NewEngine(g, 1, 2, Bounds{Lo: 1, Hi: 1}, DirRight, Constraint{Labels: []string{"KNOWS"}})
	path, ok := e.Next()
	require.True(t, ok)
	require.Equal(t, []EdgeID{2}, path)

	_, ok = e.Next()
	require.False(t, ok, "only one KNOWS edge exists")
}

func TestEngineDoesNotRevisitAnEdgeWithinOnePath(t *testing.T) {
	g := NewMemGraph()
	g.AddEdge(1, 1, 2, "KNOWS")

	// the only edge out of 1 leads to 2, which has no further out-edges, so
	// there is no way back to 1 without reusing the single edge.
	e := NewEngine(g, 1, 1, Bounds{Lo: 1, Hi: 4}, DirRight, Constraint{})
	_, ok := e.Next()
	require.False(t, ok)
}

func TestEngineStepsCountsVisitedEdges(t *testing.T) {
	g := chainGraph()
	e := NewEngine(g, 1, 4, Bounds{Lo: 1, Hi: 5}, DirRight, Constraint{})
	_, ok := e.Next()
	require.True(t, ok)
	require.Positive(t, e.Steps())
}
