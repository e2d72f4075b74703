package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsoleLoggerGatesByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewConsoleLoggerWithOutput(LevelWarn, &out, &errOut)

	l.Debug("should not appear")
	l.Info("should not appear either")
	require.Empty(t, out.String())

	l.Warn("heads up")
	require.Contains(t, errOut.String(), "heads up")
}

func TestWithPhaseTagsMessages(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewConsoleLoggerWithOutput(LevelDebug, &out, &errOut)
	tagged := l.WithPhase(PhaseTransform)
	tagged.Info("lowered pattern")
	require.Contains(t, out.String(), string(PhaseTransform))
}

func TestNoOpLoggerIsSilent(t *testing.T) {
	var l Logger = NoOpLogger{}
	require.False(t, l.IsDebugEnabled())
	l.Info("ignored")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("debug"))
	require.Equal(t, LevelWarn, ParseLevel("WARNING"))
	require.Equal(t, LevelInfo, ParseLevel("nonsense"))
}
