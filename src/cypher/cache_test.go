package cypher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cypherplan/cyq/src/plan"
)

var errBoom = errors.New("boom")

func TestPlanCacheFetchCallsBuilderOnlyOnce(t *testing.T) {
	c := newPlanCache(10)
	calls := 0
	build := func() (*plan.Plan, error) {
		calls++
		return &plan.Plan{}, nil
	}

	p1, err := c.fetch("k", build)
	require.NoError(t, err)
	p2, err := c.fetch("k", build)
	require.NoError(t, err)

	require.Same(t, p1, p2)
	require.Equal(t, 1, calls)
}

func TestPlanCacheEvictsOldestWhenFull(t *testing.T) {
	c := newPlanCache(2)
	build := func() (*plan.Plan, error) { return &plan.Plan{}, nil }

	_, _ = c.fetch("a", build)
	_, _ = c.fetch("b", build)
	_, _ = c.fetch("c", build) // evicts "a"

	require.NotContains(t, c.cache, "a")
	require.Contains(t, c.cache, "b")
	require.Contains(t, c.cache, "c")
}

func TestPlanCacheDoesNotCacheErrors(t *testing.T) {
	c := newPlanCache(10)
	calls := 0
	build := func() (*plan.Plan, error) {
		calls++
		return nil, errBoom
	}

	_, err := c.fetch("k", build)
	require.Error(t, err)
	_, err = c.fetch("k", build)
	require.Error(t, err)
	require.Equal(t, 2, calls)
}
