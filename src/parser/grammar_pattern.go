package parser

import "github.com/alecthomas/participle/v2/lexer"

// Pattern grammar: nodes, relationships (including variable-length
// quantifiers), and paths, grounded on Apache AGE's cypher pattern grammar
// (original_source/src/backend/parser/cypher_clause.c builds exactly these
// shapes out of its own grammar.y) and on the teacher's existing Pattern
// type in grammar.go, generalized here to labels, properties, direction,
// and VLE ranges the teacher's version does not need.

type MapPropsG struct {
	Entries []*MapEntryG `parser:"\"{\" ( @@ ( \",\" @@ )* )? \"}\""`
}

type NodePatternG struct {
	Pos    lexer.Position
	Name   *string    `parser:"\"(\" @Ident?"`
	Labels []string   `parser:"( \":\" @Ident )*"`
	Props  *MapPropsG `parser:"@@? \")\""`
}

// RangeG is a VLE quantifier `*`, `*n`, `*n..`, `*..m`, or `*n..m`. HasRange
// records whether `..` was present at all, distinguishing an exact hop
// count (`*3`, no `..`) from an open- or closed-ended span.
type RangeG struct {
	Lo       *string `parser:"\"*\" @Int?"`
	HasRange bool    `parser:"( @\"..\""`
	Hi       *string `parser:"  @Int? )?"`
}

type RelTypesG struct {
	Types []string `parser:"\":\" @Ident ( \"|\" @Ident )*"`
}

type RelBodyG struct {
	Pos   lexer.Position
	Name  *string    `parser:"@Ident?"`
	Types *RelTypesG `parser:"@@?"`
	Range *RangeG    `parser:"@@?"`
	Props *MapPropsG `parser:"@@?"`
}

// The three directed shapes a relationship pattern can take are modeled as
// three distinct grammar types, tried in order by RelPatternG, rather than
// one struct trying to share a single Body field across differently shaped
// alternatives: RelRight and RelEither both start on `-`, so RelRight (which
// requires the more specific trailing `->`) is tried before the bare-dash
// RelEither form.
type RelLeft struct {
	Body *RelBodyG `parser:"\"<-\" ( \"[\" @@ \"]\" )? \"-\""`
}

type RelRight struct {
	Body *RelBodyG `parser:"\"-\" ( \"[\" @@ \"]\" )? \"->\""`
}

type RelEither struct {
	Body *RelBodyG `parser:"\"-\" ( \"[\" @@ \"]\" )? \"-\""`
}

type RelPatternG struct {
	Left   *RelLeft   `parser:"  @@"`
	Right  *RelRight  `parser:"| @@"`
	Either *RelEither `parser:"| @@"`
}

type PathStepG struct {
	Rel  *RelPatternG  `parser:"@@"`
	Node *NodePatternG `parser:"@@"`
}

type PathG struct {
	VarName *string       `parser:"( @Ident \"=\" )?"`
	First   *NodePatternG `parser:"@@"`
	Chain   []*PathStepG  `parser:"@@*"`
}

type PatternG struct {
	Paths []*PathG `parser:"@@ ( \",\" @@ )*"`
}
