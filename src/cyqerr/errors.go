// Package cyqerr implements the error taxonomy of the Cypher front-end.
//
// Every error produced by the lexer, parser, name resolver, expression and
// pattern transformers, union planner, or VLE engine is a *Error carrying a
// Category and a Span so that callers can surface a byte-offset location the
// way the host's SQL error reporting expects.
package cyqerr

import "fmt"

// Category partitions errors the way §7 of the specification does.
type Category int

const (
	// Syntax covers unexpected tokens, malformed ranges, and misplaced UNION.
	Syntax Category = iota
	// Binding covers duplicate aliases, unknown variables, and kind conflicts.
	Binding
	// Semantic covers clause-level rule violations (e.g. undirected CREATE edge).
	Semantic
	// Type covers UNION column mismatches and non-boolean WHERE expressions.
	Type
	// NotSupported covers CALL/YIELD, grouping sets, and recursive CTEs.
	NotSupported
	// Runtime covers VLE range/cancellation errors raised during traversal.
	Runtime
)

func (c Category) String() string {
	switch c {
	case Syntax:
		return "SyntaxError"
	case Binding:
		return "BindingError"
	case Semantic:
		return "SemanticError"
	case Type:
		return "TypeError"
	case NotSupported:
		return "NotSupportedError"
	case Runtime:
		return "RuntimeError"
	default:
		return "Error"
	}
}

// Span is a byte-offset range into the original query text. Length may be
// zero when the offending construct has no natural extent (e.g. EOF).
type Span struct {
	Offset int
	Length int
}

// Error is the single error type surfaced by every component in this
// repository. Code is a short machine-matchable tag (e.g. "DirectedEdgeRequired",
// "UnknownVariable") used by callers and tests that need to match on a
// specific condition rather than a free-form message.
type Error struct {
	Category Category
	Code     string
	Span     Span
	Message  string
	Wrapped  error
}

func (e *Error) Error() string {
	if e.Span.Length > 0 || e.Span.Offset > 0 {
		return fmt.Sprintf("%s: %s (at byte %d): %s", e.Category, e.Code, e.Span.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Category, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

func new_(cat Category, code string, span Span, format string, args ...interface{}) *Error {
	return &Error{Category: cat, Code: code, Span: span, Message: fmt.Sprintf(format, args...)}
}

// Syntaxf builds a Syntax error at the given span.
func Syntaxf(span Span, code, format string, args ...interface{}) *Error {
	return new_(Syntax, code, span, format, args...)
}

// Bindingf builds a Binding error at the given span.
func Bindingf(span Span, code, format string, args ...interface{}) *Error {
	return new_(Binding, code, span, format, args...)
}

// Semanticf builds a Semantic error at the given span.
func Semanticf(span Span, code, format string, args ...interface{}) *Error {
	return new_(Semantic, code, span, format, args...)
}

// Typef builds a Type error at the given span.
func Typef(span Span, code, format string, args ...interface{}) *Error {
	return new_(Type, code, span, format, args...)
}

// NotSupportedf builds a NotSupported error at the given span.
func NotSupportedf(span Span, code, format string, args ...interface{}) *Error {
	return new_(NotSupported, code, span, format, args...)
}

// Runtimef builds a Runtime error, typically with a zero span since VLE
// errors occur after parsing has completed.
func Runtimef(code, format string, args ...interface{}) *Error {
	return new_(Runtime, code, Span{}, format, args...)
}

// Wrap attaches a causal error for errors.Unwrap/errors.Is chains.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}
