package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartFinishCompileRecordsNoPanic(t *testing.T) {
	in := New()
	cfg := DefaultConfig()

	ctx, sp := in.StartCompile(context.Background(), "MATCH (n) RETURN n", cfg)
	require.NotNil(t, ctx)
	in.FinishCompile(sp, "", nil, cfg)
}

func TestFinishCompileWithErrorRecordsCategory(t *testing.T) {
	in := New()
	cfg := DefaultConfig()

	_, sp := in.StartCompile(context.Background(), "MATCH (n RETURN n", cfg)
	in.FinishCompile(sp, "SyntaxError", errors.New("unexpected token"), cfg)
}

func TestDisabledConfigSkipsSpanCreation(t *testing.T) {
	in := New()
	cfg := &Config{EnableTracing: false, EnableMetrics: false}

	_, sp := in.StartCompile(context.Background(), "RETURN 1", cfg)
	require.Nil(t, sp.span)
	in.FinishCompile(sp, "", nil, cfg)
}
