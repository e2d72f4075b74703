// Package parser turns Cypher source text into a src/ast.RegularQuery using
// a participle/v2 grammar, the same library and struct-tag style the
// teacher's own parser package used for its much smaller statement set.
package parser

import (
	"errors"

	"github.com/alecthomas/participle/v2"

	"github.com/cypherplan/cyq/src/ast"
	"github.com/cypherplan/cyq/src/cyqerr"
	"github.com/cypherplan/cyq/src/token"
)

// Parser compiles Cypher source into an AST. It is safe for concurrent use
// once built, mirroring the teacher's own participle.Parser wrapping.
type Parser struct {
	impl *participle.Parser[RegularQueryG]
}

// New builds a Parser. Construction is the only place participle.Build's
// grammar-validation cost is paid; callers are expected to build one Parser
// and reuse it.
func New() (*Parser, error) {
	impl, err := participle.Build[RegularQueryG](
		participle.Lexer(cypherLexer),
		participle.CaseInsensitive(token.AllKeywords()...),
		participle.Elide("whitespace", "Comment"),
		participle.UseLookahead(8),
	)
	if err != nil {
		return nil, err
	}
	return &Parser{impl: impl}, nil
}

// Parse compiles one Cypher statement into its AST.
func (p *Parser) Parse(query string) (*ast.RegularQuery, error) {
	g, err := p.impl.ParseString("", query)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return buildRegularQuery(g), nil
}

// wrapParseError turns a participle parse failure into a cyqerr.Error
// carrying the offending byte offset, per spec.md §7.
func wrapParseError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return cyqerr.Syntaxf(cyqerr.Span{Offset: pos.Offset}, "UnexpectedToken", "%s", perr.Message()).Wrap(err)
	}
	return cyqerr.Syntaxf(cyqerr.Span{}, "UnexpectedToken", "%s", err.Error()).Wrap(err)
}
