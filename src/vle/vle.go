// Package vle implements the variable-length-path engine a `*lo..hi`
// relationship quantifier lowers to at runtime (spec.md §9's design note:
// the engine is a suspendable iterator, not a one-shot function, so a
// caller can pull one path at a time out of a potentially unbounded
// search). It is grounded directly on Apache AGE's
// original_source/src/backend/utils/path_finding/age_vle.c:
// dfs_find_a_path_between's single explicit edge/path stack, visited-edge
// map, and the "peek, don't pop, until we're backing up" DFS shape carry
// over unchanged; only the surrounding PostgreSQL SRF/memory-context
// plumbing is replaced by an ordinary Go iterator type.
package vle

// VertexID and EdgeID play the role of AGE's graphid: an opaque identifier
// a host storage engine assigns to each vertex/edge.
type VertexID int64
type EdgeID int64

// Edge is the minimal shape the engine needs to know about one relationship:
// its endpoints and the label used for constraint matching.
type Edge struct {
	ID    EdgeID
	Start VertexID
	End   VertexID
	Label string
}

// AdjacencyIndex is the graph view the engine traverses: given a vertex, the
// edges leaving it, entering it, and looping back on it.
type AdjacencyIndex interface {
	EdgesOut(v VertexID) []Edge
	EdgesIn(v VertexID) []Edge
	EdgesSelf(v VertexID) []Edge
}

// Direction mirrors ast.Direction without importing the ast package: the
// VLE engine is a standalone traversal primitive with no AST dependency.
type Direction int

const (
	DirRight Direction = iota // -[*]->
	DirLeft                   // <-[*]-
	DirEither                 // -[*]-
)

// Bounds is the hop-count quantifier, `*lo..hi`. HiInfinite mirrors
// ast.Range.HiInfinite for an omitted upper bound.
type Bounds struct {
	Lo         int
	Hi         int
	HiInfinite bool
}

// Constraint filters which edges the engine is willing to step across,
// grounded on check_edge_constraints: a label restriction (an edge passes
// when its label is any one of Labels) plus a host-supplied predicate for
// anything richer (such as property equality) that the engine itself has no
// storage model for.
type Constraint struct {
	Labels []string // empty means any label is acceptable
	Match  func(Edge) bool
}

func (c Constraint) accepts(e Edge) bool {
	if len(c.Labels) > 0 {
		ok := false
		for _, l := range c.Labels {
			if l == e.Label {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if c.Match != nil {
		return c.Match(e)
	}
	return true
}
