// Package token defines the lexical vocabulary of the Cypher front-end: the
// kinds a byte span of source text can be classified into, and the keyword
// tables that partition keywords into the safe and reserved-conflicted sets
// described in spec.md §4.1.
package token

// Kind identifies the lexical class of a token.
type Kind int

const (
	EOF Kind = iota
	Error

	Ident
	Parameter // $name
	String
	Int
	Float

	// Punctuation and operators. Multi-char operators are their own kind so
	// the parser never has to re-glue single-char tokens.
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Dot
	DotDot // ".." in range quantifiers
	Colon
	Pipe // relationship type alternation r:A|B
	Semicolon

	Plus
	Minus
	Star
	Slash
	Percent
	Caret

	Eq
	Neq
	Lt
	Lte
	Gt
	Gte
	RegexMatch // =~

	ArrowLeft  // <-
	ArrowRight // ->
	Dash       // -

	DoubleColon // ::  typecast

	Keyword // lexeme is one of the keyword tables below
)

// Span is a byte-offset range into the source text.
type Span struct {
	Offset int
	Length int
}

// Token is the output of the lexer: a classified lexeme with its source span.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   Span
}

// safeKeywords may be used as identifiers, schema names, or label names —
// they occupy a keyword slot only when the grammar expects one.
var safeKeywords = map[string]bool{
	"MATCH": true, "OPTIONAL": true, "CREATE": true, "MERGE": true,
	"SET": true, "REMOVE": true, "DELETE": true, "DETACH": true,
	"WITH": true, "RETURN": true, "UNWIND": true, "AS": true,
	"WHERE": true, "ORDER": true, "BY": true, "ASC": true, "ASCENDING": true,
	"DESC": true, "DESCENDING": true, "SKIP": true, "LIMIT": true,
	"DISTINCT": true, "UNION": true, "ALL": true, "CALL": true, "YIELD": true,
	"AND": true, "OR": true, "XOR": true, "NOT": true, "IN": true, "IS": true,
	"STARTS": true, "ENDS": true, "CONTAINS": true, "CASE": true, "WHEN": true,
	"THEN": true, "ELSE": true, "ON": true, "EXISTS": true,
}

// conflictedKeywords cannot act as an identifier in any context: they are
// reserved the way spec.md's glossary describes.
var conflictedKeywords = map[string]bool{
	"END": true, "FALSE": true, "NULL": true, "TRUE": true,
}

// IsSafeKeyword reports whether the upper-cased lexeme is a safe keyword.
func IsSafeKeyword(upper string) bool { return safeKeywords[upper] }

// IsConflictedKeyword reports whether the upper-cased lexeme is
// reserved-conflicted and therefore cannot be used as an identifier.
func IsConflictedKeyword(upper string) bool { return conflictedKeywords[upper] }

// IsKeyword reports whether the upper-cased lexeme is any keyword at all.
func IsKeyword(upper string) bool {
	return safeKeywords[upper] || conflictedKeywords[upper]
}

// AllKeywords returns every keyword lexeme (safe and conflicted), used to
// seed the participle lexer's case-insensitive keyword table.
func AllKeywords() []string {
	out := make([]string, 0, len(safeKeywords)+len(conflictedKeywords))
	for k := range safeKeywords {
		out = append(out, k)
	}
	for k := range conflictedKeywords {
		out = append(out, k)
	}
	return out
}
