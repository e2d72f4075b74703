package binding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypherplan/cyq/src/token"
)

func TestDeclareAndLookup(t *testing.T) {
	r := New()
	_, err := r.Declare("n", KindNode, token.Span{})
	require.NoError(t, err)

	b, ok := r.Lookup("n")
	require.True(t, ok)
	require.Equal(t, KindNode, b.Kind)
}

func TestRedeclareSameKindIsNotAnError(t *testing.T) {
	r := New()
	_, err := r.Declare("n", KindNode, token.Span{})
	require.NoError(t, err)
	_, err = r.Declare("n", KindNode, token.Span{Offset: 10})
	require.NoError(t, err)
}

func TestRedeclareConflictingKindIsBindingError(t *testing.T) {
	r := New()
	_, err := r.Declare("n", KindNode, token.Span{})
	require.NoError(t, err)
	_, err = r.Declare("n", KindRel, token.Span{Offset: 10})
	require.Error(t, err)
}

func TestUnknownVariable(t *testing.T) {
	r := New()
	_, err := r.MustLookup("ghost", token.Span{Offset: 3})
	require.Error(t, err)
}

func TestAnonymousNamesAreUniqueAndDeterministic(t *testing.T) {
	r := New()
	require.Equal(t, "_default_0", r.NextAnonymous())
	require.Equal(t, "_default_1", r.NextAnonymous())
}

func TestExistsSubpatternSharesAnonymousCounter(t *testing.T) {
	r := New()
	outer := r.NextAnonymous()
	r.PushScope()
	inner := r.NextAnonymous()
	r.PopScope()
	require.NotEqual(t, outer, inner)
	require.Equal(t, "_default_2", r.NextAnonymous())
}

func TestPushScopeSeesOuterBindings(t *testing.T) {
	r := New()
	_, err := r.Declare("n", KindNode, token.Span{})
	require.NoError(t, err)

	r.PushScope()
	b, ok := r.Lookup("n")
	require.True(t, ok)
	require.Equal(t, KindNode, b.Kind)
	r.PopScope()
}

func TestPopScopeDiscardsInnerDeclarations(t *testing.T) {
	r := New()
	r.PushScope()
	_, err := r.Declare("m", KindNode, token.Span{})
	require.NoError(t, err)
	r.PopScope()

	_, ok := r.Lookup("m")
	require.False(t, ok)
}

func TestNarrowRestrictsVisibleBindings(t *testing.T) {
	r := New()
	nb, _ := r.Declare("n", KindNode, token.Span{})
	_, _ = r.Declare("m", KindNode, token.Span{})

	r.Narrow([]*Binding{nb})

	vis := r.Visible()
	require.Len(t, vis, 1)
	require.Equal(t, "n", vis[0].Name)

	_, ok := r.Lookup("m")
	require.False(t, ok)
}
