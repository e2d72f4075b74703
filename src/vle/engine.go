package vle

// Engine is the suspendable DFS path-finder, grounded on
// dfs_find_a_path_between. A single Engine instance is built once per
// VLE traversal (one per bound start vertex) and Next is called
// repeatedly; each call resumes exactly where the previous one left off by
// mutating the same edgeStack/pathStack/vertexStack/visited state rather
// than starting over, so a caller that only wants the first K paths never
// pays for exploring the rest of the search space.
type Engine struct {
	graph      AdjacencyIndex
	start, end VertexID
	bounds     Bounds
	direction  Direction
	constraint Constraint

	edgeByID map[EdgeID]Edge
	visited  map[EdgeID]bool

	edgeStack   []EdgeID
	pathStack   []EdgeID
	vertexStack []VertexID // only populated/consulted when direction == DirEither

	steps int64
}

// NewEngine builds an engine that will search for paths from start to end
// of length within bounds, stepping only across edges constraint accepts.
func NewEngine(graph AdjacencyIndex, start, end VertexID, bounds Bounds, dir Direction, constraint Constraint) *Engine {
	e := &Engine{
		graph:      graph,
		start:      start,
		end:        end,
		bounds:     bounds,
		direction:  dir,
		constraint: constraint,
		edgeByID:   make(map[EdgeID]Edge),
		visited:    make(map[EdgeID]bool),
	}
	e.addEdges(start)
	return e
}

// Steps reports how many DFS steps (edge visits) this engine has taken so
// far, for RecordVLESteps-style instrumentation.
func (e *Engine) Steps() int64 { return e.steps }

// Next advances the search and returns the next path found as a sequence
// of edge ids, or ok=false once the search space is exhausted.
func (e *Engine) Next() (path []EdgeID, ok bool) {
	for len(e.edgeStack) > 0 {
		top := e.edgeStack[len(e.edgeStack)-1]

		if e.visited[top] {
			e.backtrack(top)
			continue
		}

		e.steps++
		e.visited[top] = true
		e.pathStack = append(e.pathStack, top)

		edge := e.edgeByID[top]
		next := e.nextVertex(edge)

		depth := len(e.pathStack)
		found := next == e.end && depth >= e.bounds.Lo && (e.bounds.HiInfinite || depth <= e.bounds.Hi)
		withinUpper := e.bounds.HiInfinite || depth < e.bounds.Hi
		if withinUpper {
			e.addEdges(next)
		}

		if found {
			out := make([]EdgeID, len(e.pathStack))
			copy(out, e.pathStack)
			return out, true
		}
	}
	return nil, false
}

// backtrack pops a fully-explored edge off edgeStack, and if it was also
// the tip of the current path, pops it there too and clears its visited
// flag so a sibling branch can revisit it.
func (e *Engine) backtrack(top EdgeID) {
	if n := len(e.pathStack); n > 0 && e.pathStack[n-1] == top {
		e.pathStack = e.pathStack[:n-1]
		delete(e.visited, top)
	}
	e.edgeStack = e.edgeStack[:len(e.edgeStack)-1]
	if e.direction == DirEither {
		e.vertexStack = e.vertexStack[:len(e.vertexStack)-1]
	}
}

// addEdges pushes v's unvisited, constraint-matching candidate edges onto
// edgeStack: out-edges unless direction is DirLeft, in-edges unless
// direction is DirRight, and self-loops always — mirroring add_edges.
func (e *Engine) addEdges(v VertexID) {
	if e.direction != DirLeft {
		e.pushCandidates(v, e.graph.EdgesOut(v))
	}
	if e.direction != DirRight {
		e.pushCandidates(v, e.graph.EdgesIn(v))
	}
	e.pushCandidates(v, e.graph.EdgesSelf(v))
}

func (e *Engine) pushCandidates(v VertexID, edges []Edge) {
	for _, edge := range edges {
		if e.visited[edge.ID] || !e.constraint.accepts(edge) {
			continue
		}
		e.edgeByID[edge.ID] = edge
		e.edgeStack = append(e.edgeStack, edge.ID)
		if e.direction == DirEither {
			e.vertexStack = append(e.vertexStack, v)
		}
	}
}

// nextVertex resolves which endpoint of edge is "forward" relative to the
// vertex we stepped from. For a directed traversal that's fixed by
// direction; for an undirected one it's whichever endpoint isn't the
// parent vertex recorded on vertexStack when the edge was added.
func (e *Engine) nextVertex(edge Edge) VertexID {
	switch e.direction {
	case DirRight:
		return edge.End
	case DirLeft:
		return edge.Start
	default:
		parent := e.vertexStack[len(e.vertexStack)-1]
		if edge.Start == parent {
			return edge.End
		}
		return edge.Start
	}
}
