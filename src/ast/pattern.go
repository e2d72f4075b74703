package ast

import "github.com/cypherplan/cyq/src/token"

// Direction is the arrow direction of a relationship pattern.
type Direction int

const (
	DirRight Direction = iota // -[e]->
	DirLeft                   // <-[e]-
	DirEither                 // -[e]-
)

// Range is a VLE quantifier `*lo..hi`. HiInfinite is set when the upper
// bound was omitted (`*` or `*lo..`); Lo defaults to 1 and Hi to 1 when both
// bounds are omitted and no Range is present at all (a plain, non-VLE edge —
// callers distinguish that case by RelPattern.VarLen being nil, not by Range
// field values).
type Range struct {
	Lo         int
	Hi         int
	HiInfinite bool
}

// NodePattern is `(name? :Label* {props}?)`.
type NodePattern struct {
	Name      string
	Anonymous bool
	Labels    []string
	Props     *MapLiteral
	Span      token.Span
}

// RelPattern is `-[name? :Label(|Label)* (*range)? {props}?]-` together with
// its direction, which is captured separately because it is encoded by
// which side carries the arrowhead, not by tokens inside the brackets.
type RelPattern struct {
	Name      string
	Anonymous bool
	Labels    []string
	Direction Direction
	Props     *MapLiteral
	VarLen    *Range // non-nil iff this is a variable-length edge
	Span      token.Span
}

// Path is an alternating sequence of node and relationship patterns:
// Nodes[0] Rels[0] Nodes[1] Rels[1] ... Nodes[n]. len(Nodes) == len(Rels)+1.
// VarName is the alias for the whole path (`p = (a)-[r]->(b)`), empty when
// the path carries no such alias.
type Path struct {
	VarName string
	Nodes   []*NodePattern
	Rels    []*RelPattern
}

// Pattern is a comma-separated list of paths, as accepted by MATCH, CREATE,
// and the left-hand side (before the first comma) of MERGE.
type Pattern struct {
	Paths []*Path
}
