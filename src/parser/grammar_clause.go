package parser

import "github.com/alecthomas/participle/v2/lexer"

// Clause grammar: every clause spec.md §4 lists, plus the UNION combinator
// at the top. Grounded on the teacher's own Clause alternation in
// grammar.go (MatchClause/ReturnClause/... tried as pointer fields in
// declaration order) and extended to the full clause set Apache AGE's
// cypher_clause.c recognizes.

type MatchClauseG struct {
	Optional bool      `parser:"@\"OPTIONAL\"?"`
	Pattern  *PatternG `parser:"\"MATCH\" @@"`
	Where    *OrExpr   `parser:"(\"WHERE\" @@)?"`
}

type CreateClauseG struct {
	Pattern *PatternG `parser:"\"CREATE\" @@"`
}

type SetPropG struct {
	Var   string  `parser:"@Ident \".\""`
	Prop  string  `parser:"@Ident"`
	Value *OrExpr `parser:"\"=\" @@"`
}

type SetMergeG struct {
	Var   string  `parser:"@Ident"`
	Value *OrExpr `parser:"\"+=\" @@"`
}

type SetLabelG struct {
	Var    string   `parser:"@Ident"`
	Labels []string `parser:"( \":\" @Ident )+"`
}

type SetVarG struct {
	Var   string  `parser:"@Ident"`
	Value *OrExpr `parser:"\"=\" @@"`
}

// SetItemG tries the dotted-property, +=, and labeled forms before the
// bare `var = expr` form, since all four start on an identifier and only
// diverge at the second token.
type SetItemG struct {
	Prop  *SetPropG  `parser:"  @@"`
	Merge *SetMergeG `parser:"| @@"`
	Label *SetLabelG `parser:"| @@"`
	Var   *SetVarG   `parser:"| @@"`
}

type SetClauseG struct {
	Items []*SetItemG `parser:"\"SET\" @@ ( \",\" @@ )*"`
}

type RemovePropG struct {
	Var  string `parser:"@Ident \".\""`
	Prop string `parser:"@Ident"`
}

type RemoveLabelG struct {
	Var    string   `parser:"@Ident"`
	Labels []string `parser:"( \":\" @Ident )+"`
}

type RemoveItemG struct {
	Prop  *RemovePropG  `parser:"  @@"`
	Label *RemoveLabelG `parser:"| @@"`
}

type RemoveClauseG struct {
	Items []*RemoveItemG `parser:"\"REMOVE\" @@ ( \",\" @@ )*"`
}

type MergeClauseG struct {
	Path     *PathG      `parser:"\"MERGE\" @@"`
	OnCreate []*SetItemG `parser:"( \"ON\" \"CREATE\" \"SET\" @@ ( \",\" @@ )* )?"`
	OnMatch  []*SetItemG `parser:"( \"ON\" \"MATCH\" \"SET\" @@ ( \",\" @@ )* )?"`
}

type DeleteClauseG struct {
	Detach bool      `parser:"@\"DETACH\"?"`
	Exprs  []*OrExpr `parser:"\"DELETE\" @@ ( \",\" @@ )*"`
}

type UnwindClauseG struct {
	Expr *OrExpr `parser:"\"UNWIND\" @@"`
	As   string  `parser:"\"AS\" @Ident"`
}

type ReturnItemG struct {
	Expr  *OrExpr `parser:"@@"`
	Alias *string `parser:"(\"AS\" @Ident)?"`
}

// OrderItemG defaults to ascending: Desc is set only when DESC/DESCENDING
// is matched, and consumed silently (uncaptured) when ASC/ASCENDING is.
type OrderItemG struct {
	Expr *OrExpr `parser:"@@"`
	Desc bool    `parser:"( @(\"DESC\" | \"DESCENDING\") | \"ASC\" | \"ASCENDING\" )?"`
}

type WithClauseG struct {
	Distinct bool           `parser:"\"WITH\" @\"DISTINCT\"?"`
	Star     bool           `parser:"@\"*\"?"`
	Items    []*ReturnItemG `parser:"( @@ ( \",\" @@ )* )?"`
	Where    *OrExpr        `parser:"(\"WHERE\" @@)?"`
	OrderBy  []*OrderItemG  `parser:"( \"ORDER\" \"BY\" @@ ( \",\" @@ )* )?"`
	Skip     *OrExpr        `parser:"(\"SKIP\" @@)?"`
	Limit    *OrExpr        `parser:"(\"LIMIT\" @@)?"`
}

type ReturnClauseG struct {
	Distinct bool           `parser:"\"RETURN\" @\"DISTINCT\"?"`
	Items    []*ReturnItemG `parser:"@@ ( \",\" @@ )*"`
	OrderBy  []*OrderItemG  `parser:"( \"ORDER\" \"BY\" @@ ( \",\" @@ )* )?"`
	Skip     *OrExpr        `parser:"(\"SKIP\" @@)?"`
	Limit    *OrExpr        `parser:"(\"LIMIT\" @@)?"`
}

type CallClauseG struct {
	Namespace []string  `parser:"\"CALL\" ( @Ident \".\" )*"`
	Proc      string    `parser:"@Ident"`
	Args      []*OrExpr `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
	Yields    []string  `parser:"( \"YIELD\" @Ident ( \",\" @Ident )* )?"`
}

type ClauseG struct {
	Pos    lexer.Position
	Match  *MatchClauseG  `parser:"  @@"`
	Create *CreateClauseG `parser:"| @@"`
	Merge  *MergeClauseG  `parser:"| @@"`
	Set    *SetClauseG    `parser:"| @@"`
	Remove *RemoveClauseG `parser:"| @@"`
	Delete *DeleteClauseG `parser:"| @@"`
	Unwind *UnwindClauseG `parser:"| @@"`
	With   *WithClauseG   `parser:"| @@"`
	Return *ReturnClauseG `parser:"| @@"`
	Call   *CallClauseG   `parser:"| @@"`
}

type SingleQueryG struct {
	Clauses []*ClauseG `parser:"@@+"`
}

type UnionPartG struct {
	All   bool          `parser:"\"UNION\" @\"ALL\"?"`
	Query *SingleQueryG `parser:"@@"`
}

// RegularQueryG is the parser's entry production. Unions is a flat list of
// `UNION [ALL] singleQuery` parts rather than a tree; build.go folds it
// left-associatively into nested ast.RegularQuery nodes.
type RegularQueryG struct {
	First   *SingleQueryG `parser:"@@"`
	Unions  []*UnionPartG `parser:"@@*"`
	OrderBy []*OrderItemG `parser:"( \"ORDER\" \"BY\" @@ ( \",\" @@ )* )?"`
	Skip    *OrExpr       `parser:"(\"SKIP\" @@)?"`
	Limit   *OrExpr       `parser:"(\"LIMIT\" @@)?"`
}
