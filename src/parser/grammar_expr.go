package parser

import "github.com/alecthomas/participle/v2/lexer"

// The types below mirror the participle idiom the teacher's own
// grammar.go used for MathExpression/Condition/Value: a struct holding a
// "Left" operand plus a repeated "Rest" of (operator, operand) pairs,
// nested one level per precedence tier. This file implements the full
// ladder spec.md §4.1 specifies, loosest to tightest:
//
//	Or > And > Xor > Not > comparison-chain > Add > Mul > Pow > InIs >
//	UnaryMinus > StringMatch > Cast > Postfix > Atom
//
// build.go walks these grammar trees into src/ast nodes, folding unary
// minus into numeric literals, desugaring XOR, and flattening OR/AND runs
// as it goes.

type OrExpr struct {
	Left *AndExpr   `parser:"@@"`
	Rest []*AndExpr `parser:"(\"OR\" @@)*"`
}

type AndExpr struct {
	Left *XorExpr   `parser:"@@"`
	Rest []*XorExpr `parser:"(\"AND\" @@)*"`
}

type XorExpr struct {
	Left *NotExpr   `parser:"@@"`
	Rest []*NotExpr `parser:"(\"XOR\" @@)*"`
}

// NotExpr is right-recursive so repeated NOT NOT collapses correctly in
// build.go rather than needing the grammar to count occurrences.
type NotExpr struct {
	Negated *NotExpr        `parser:"  \"NOT\" @@"`
	Cmp     *ComparisonExpr `parser:"| @@"`
}

type CmpTerm struct {
	Op    string   `parser:"@(\"<>\" | \"!=\" | \"<=\" | \">=\" | \"=\" | \"<\" | \">\")"`
	Right *AddExpr `parser:"@@"`
}

type ComparisonExpr struct {
	Left *AddExpr   `parser:"@@"`
	Rest []*CmpTerm `parser:"@@*"`
}

type AddTerm struct {
	Op    string   `parser:"@(\"+\" | \"-\")"`
	Right *MulExpr `parser:"@@"`
}

type AddExpr struct {
	Left *MulExpr   `parser:"@@"`
	Rest []*AddTerm `parser:"@@*"`
}

type MulTerm struct {
	Op    string   `parser:"@(\"*\" | \"/\" | \"%\")"`
	Right *PowExpr `parser:"@@"`
}

type MulExpr struct {
	Left *PowExpr   `parser:"@@"`
	Rest []*MulTerm `parser:"@@*"`
}

type PowTerm struct {
	Right *InIsExpr `parser:"\"^\" @@"`
}

type PowExpr struct {
	Left *InIsExpr  `parser:"@@"`
	Rest []*PowTerm `parser:"@@*"`
}

// InIsTerm covers `IN expr` and `IS [NOT] NULL`, the two membership/null
// tests spec.md §4.3 places at this tier.
type InIsTerm struct {
	In     *UnaryExpr `parser:"  \"IN\" @@"`
	IsNull bool       `parser:"| @\"IS\""`
	IsNot  bool       `parser:"  @\"NOT\"? \"NULL\""`
}

type InIsExpr struct {
	Left *UnaryExpr  `parser:"@@"`
	Rest []*InIsTerm `parser:"@@*"`
}

// UnaryExpr folds `-literal` directly in build.go; `-` applied to anything
// else stays an ast.UnaryMinus node.
type UnaryExpr struct {
	Neg   *UnaryExpr       `parser:"  \"-\" @@"`
	Match *StringMatchExpr `parser:"| @@"`
}

type StringMatchTerm struct {
	StartsWith bool      `parser:"( @\"STARTS\" \"WITH\""`
	EndsWith   bool      `parser:"| @\"ENDS\" \"WITH\""`
	Contains   bool      `parser:"| @\"CONTAINS\""`
	Regex      bool      `parser:"| @\"=~\" )"`
	Right      *CastExpr `parser:"@@"`
}

type StringMatchExpr struct {
	Left *CastExpr          `parser:"@@"`
	Rest []*StringMatchTerm `parser:"@@*"`
}

// CastExpr applies an optional trailing `:: Type`, the tightest-binding
// operator in the ladder: it wraps the whole postfix chain that precedes it.
type CastExpr struct {
	Base *PostfixExpr `parser:"@@"`
	Type *string      `parser:"(\"::\" @Ident)?"`
}

type DotSuffix struct {
	Property string `parser:"\".\" @Ident"`
}

// SliceSuffix is tried before IndexSuffix: both open with `[`, and its own
// mandatory `..` makes it fail and roll back cleanly when none is present,
// falling through to the plain-index alternative.
type SliceSuffix struct {
	Lo *OrExpr `parser:"\"[\" @@?"`
	Hi *OrExpr `parser:"\"..\" @@? \"]\""`
}

type IndexSuffix struct {
	Index *OrExpr `parser:"\"[\" @@ \"]\""`
}

type Suffix struct {
	Dot   *DotSuffix   `parser:"  @@"`
	Slice *SliceSuffix `parser:"| @@"`
	Index *IndexSuffix `parser:"| @@"`
}

type PostfixExpr struct {
	Atom     *Atom     `parser:"@@"`
	Suffixes []*Suffix `parser:"@@*"`
}

// CaseAlternative is one WHEN/THEN arm.
type CaseAlternative struct {
	When *OrExpr `parser:"\"WHEN\" @@"`
	Then *OrExpr `parser:"\"THEN\" @@"`
}

type CaseExprG struct {
	Operand *OrExpr            `parser:"\"CASE\" @@?"`
	Whens   []*CaseAlternative `parser:"@@+"`
	Else    *OrExpr            `parser:"(\"ELSE\" @@)? \"END\""`
}

type ListLiteralG struct {
	Items []*OrExpr `parser:"\"[\" ( @@ ( \",\" @@ )* )? \"]\""`
}

type MapEntryG struct {
	Key   string  `parser:"@Ident \":\""`
	Value *OrExpr `parser:"@@"`
}

type MapLiteralG struct {
	Entries []*MapEntryG `parser:"\"{\" ( @@ ( \",\" @@ )* )? \"}\""`
}

type FuncArgs struct {
	Distinct bool      `parser:"@\"DISTINCT\"?"`
	Star     bool      `parser:"(  @\"*\""`
	Args     []*OrExpr `parser:"| ( @@ ( \",\" @@ )* )? )"`
}

type FuncCallG struct {
	Namespace []string  `parser:"( @Ident \".\" )*"`
	Name      string    `parser:"@Ident"`
	Args      *FuncArgs `parser:"\"(\" @@ \")\""`
}

// ExistsG is `EXISTS { pattern }`.
type ExistsG struct {
	Pattern *PatternG `parser:"\"EXISTS\" \"{\" @@ \"}\""`
}

// Atom is the grammar's leaf alternation: every field is tried in turn,
// most-distinctive-keyword first so participle never has to backtrack far.
// Func is tried before Variable so a bare identifier followed by `(` is
// always read as a call rather than two adjacent atoms.
type Atom struct {
	Pos      lexer.Position
	Null     bool          `parser:"  @\"NULL\""`
	True     bool          `parser:"| @\"TRUE\""`
	False    bool          `parser:"| @\"FALSE\""`
	Case     *CaseExprG    `parser:"| @@"`
	Exists   *ExistsG      `parser:"| @@"`
	Func     *FuncCallG    `parser:"| @@"`
	Param    *string       `parser:"| @Param"`
	Float    *string       `parser:"| @Float"`
	Int      *string       `parser:"| @Int"`
	String   *string       `parser:"| @String"`
	List     *ListLiteralG `parser:"| @@"`
	Map      *MapLiteralG  `parser:"| @@"`
	Variable *string       `parser:"| @Ident"`
	SubExpr  *OrExpr       `parser:"| \"(\" @@ \")\""`
}
