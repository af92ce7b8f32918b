package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		log, err := Setup(level)
		require.NoError(t, err)
		require.NotNil(t, log)
	}
}

func TestContextPropagation(t *testing.T) {
	t.Parallel() // Enable parallel execution
	base := slog.Default().With(slog.String("component", "test"))

	ctx := WithLogger(context.Background(), base)
	require.Same(t, base, FromContext(ctx))
	require.Same(t, base, FromContextOrDefault(ctx, nil))

	// A bare context falls back to the defaults.
	empty := context.Background()
	require.Same(t, slog.Default(), FromContext(empty))

	fallback := slog.Default().With(slog.String("component", "fallback"))
	require.Same(t, fallback, FromContextOrDefault(empty, fallback))
}

func TestWithLoggerNilPanics(t *testing.T) {
	t.Parallel() // Enable parallel execution
	require.Panics(t, func() {
		WithLogger(context.Background(), nil)
	})
}
