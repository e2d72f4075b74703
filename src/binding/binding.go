// Package binding implements the name resolver: the component that tracks
// which variables are in scope as a SingleQuery's clauses are walked in
// order, and assigns the deterministic anonymous names spec.md §5 requires
// for unnamed nodes, relationships, and EXISTS subpatterns.
//
// There is no direct teacher analog for this package — the teacher's own
// Clause chain (src/cypher/query.go) never needed a symbol table, since it
// only ever builds Cypher text rather than consuming it. The scope-as-
// stack-of-ordered-maps design here follows the same ordered, append-only
// bookkeeping idiom the teacher's Clause chain already uses for clause
// sequencing, applied to variable tracking instead.
package binding

import (
	"github.com/cypherplan/cyq/src/cyqerr"
	"github.com/cypherplan/cyq/src/token"
)

// Kind discriminates what a bound name refers to.
type Kind int

const (
	KindNode Kind = iota
	KindRel
	KindPath
	KindValue // bound by WITH/UNWIND/RETURN ... AS, or a CALL YIELD column
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindRel:
		return "relationship"
	case KindPath:
		return "path"
	default:
		return "value"
	}
}

// Binding is one named, typed entry in scope.
type Binding struct {
	Name       string
	Kind       Kind
	DeclaredAt token.Span
}

// scope is one ordered set of bindings. Bindings is kept in declaration
// order (not map iteration order) because clause boundaries need the
// deterministic, ordered projection list spec.md §5 calls the "visible
// binding list" — WITH/RETURN read it to decide what survives.
type scope struct {
	order []string
	byName map[string]*Binding
}

func newScope() *scope {
	return &scope{byName: make(map[string]*Binding)}
}

func (s *scope) declare(b *Binding) {
	if _, ok := s.byName[b.Name]; !ok {
		s.order = append(s.order, b.Name)
	}
	s.byName[b.Name] = b
}

// Resolver is a stack of scopes. EXISTS{...} and other nested subpatterns
// push a child scope that can read bindings from every enclosing scope
// (correlation) but whose own declarations are discarded when popped.
type Resolver struct {
	scopes    []*scope
	anonCount int
}

// New returns a Resolver with one empty root scope.
func New() *Resolver {
	return &Resolver{scopes: []*scope{newScope()}}
}

// PushScope opens a correlated child scope, as used when entering an
// EXISTS{} subpattern.
func (r *Resolver) PushScope() {
	r.scopes = append(r.scopes, newScope())
}

// PopScope discards the innermost scope and everything declared in it.
func (r *Resolver) PopScope() {
	if len(r.scopes) > 1 {
		r.scopes = r.scopes[:len(r.scopes)-1]
	}
}

func (r *Resolver) top() *scope { return r.scopes[len(r.scopes)-1] }

// NextAnonymous returns the next `_default_<n>` name. The counter is
// per-Resolver, not per-scope, so a query's EXISTS{} subpatterns share the
// same sequence as its outer pattern — two anonymous nodes never collide
// regardless of which scope introduced them.
func (r *Resolver) NextAnonymous() string {
	name := anonymousName(r.anonCount)
	r.anonCount++
	return name
}

func anonymousName(n int) string {
	const digits = "0123456789"
	if n == 0 {
		return "_default_0"
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{digits[n%10]}, buf...)
		n /= 10
	}
	return "_default_" + string(buf)
}

// Declare binds name to kind in the current (innermost) scope. Re-declaring
// the same name with the same kind is not an error — Cypher patterns
// legitimately reuse a variable across clauses and across paths within one
// MATCH — but re-declaring it with a different kind is a BindingError, since
// the same name can never denote both e.g. a node and a relationship.
func (r *Resolver) Declare(name string, kind Kind, span token.Span) (*Binding, error) {
	if existing, ok := r.Lookup(name); ok {
		if existing.Kind != kind {
			return nil, cyqerr.Bindingf(cyqerr.Span{Offset: span.Offset, Length: span.Length}, "KindConflict",
				"%q is already bound as a %s and cannot also be used as a %s", name, existing.Kind, kind)
		}
		return existing, nil
	}
	b := &Binding{Name: name, Kind: kind, DeclaredAt: span}
	r.top().declare(b)
	return b, nil
}

// Lookup searches the scope stack from innermost to outermost.
func (r *Resolver) Lookup(name string) (*Binding, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i].byName[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// MustLookup is Lookup, but raises an UnknownVariable BindingError when the
// name has never been declared.
func (r *Resolver) MustLookup(name string, span token.Span) (*Binding, error) {
	if b, ok := r.Lookup(name); ok {
		return b, nil
	}
	return nil, cyqerr.Bindingf(cyqerr.Span{Offset: span.Offset, Length: span.Length}, "UnknownVariable",
		"variable %q is not bound by any preceding clause", name)
}

// Visible returns the innermost scope's bindings in declaration order. WITH
// and RETURN use this to build the projection's input binding list before
// narrowing it to the items actually projected.
func (r *Resolver) Visible() []*Binding {
	s := r.top()
	out := make([]*Binding, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// Narrow replaces the current scope's visible bindings with exactly the
// given set, in the given order. WITH projects a new, smaller binding list
// forward (§4.5: anything not re-mentioned goes out of scope); this is how
// the transformer enacts that boundary between one scope and the next.
func (r *Resolver) Narrow(bindings []*Binding) {
	s := newScope()
	for _, b := range bindings {
		s.declare(b)
	}
	r.scopes[len(r.scopes)-1] = s
}
