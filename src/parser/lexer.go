package parser

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// cypherLexer tokenizes Cypher source text. It generalizes the teacher's
// single-rule-set lexer (src/parser/token.go in the original) to the full
// token vocabulary the grammar in grammar_expr.go/grammar_pattern.go/
// grammar_clause.go needs: `//` line comments, single- and double-quoted
// strings with backslash escaping, parameter markers, floats, and every
// multi-character operator Cypher uses.
//
// Keywords are not a separate lexer rule: like the teacher, they are
// recognized as ordinary Ident tokens and matched by literal string tags in
// the grammar under participle.CaseInsensitive. The grammar does not consult
// token.IsSafeKeyword/IsConflictedKeyword: wherever it captures an identifier
// it accepts any Ident token, the conflicted keywords (END, FALSE, NULL,
// TRUE) included.
var cypherLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"|'(\\.|[^'\\])*'`},
	{Name: "Param", Pattern: `\$[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Float", Pattern: `\d+\.\d+([eE][+-]?\d+)?|\d+[eE][+-]?\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: "`[^`]+`|[a-zA-Z_][a-zA-Z0-9_]*"},
	{Name: "Op", Pattern: `<=|>=|<>|!=|=~|::|\.\.|->|<-|\+=`},
	{Name: "Punct", Pattern: `[(){}\[\],.:|+\-*/%^=<>]`},
	{Name: "whitespace", Pattern: `\s+`},
})
