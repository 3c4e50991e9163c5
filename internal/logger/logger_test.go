package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLevel(t *testing.T) {
	var b bytes.Buffer
	lg := New(&b, "warn", false)
	lg.Info().Msg("hidden")
	lg.Warn().Str("chart", "a").Msg("shown")
	require.NotContains(t, b.String(), "hidden")
	require.Contains(t, b.String(), `"chart":"a"`)
	require.Contains(t, b.String(), `"message":"shown"`)

	require.Equal(t, zerolog.InfoLevel, New(&b, "loud", false).GetLevel())
	require.Equal(t, zerolog.InfoLevel, New(&b, "", false).GetLevel())
	require.Equal(t, zerolog.DebugLevel, New(&b, " DEBUG ", false).GetLevel())
}

func TestPretty(t *testing.T) {
	var b bytes.Buffer
	lg := New(&b, "info", true)
	lg.Info().Msg("rendered")
	require.Contains(t, b.String(), "rendered")
	require.NotContains(t, b.String(), `"message"`)
}

func TestContext(t *testing.T) {
	var b bytes.Buffer
	ctx := Set(context.Background(), New(&b, "info", false))
	Get(ctx).Info().Msg("from ctx")
	require.Contains(t, b.String(), "from ctx")

	// a bare context yields a disabled logger, never nil
	require.NotNil(t, Get(context.Background()))
	Get(context.Background()).Info().Msg("dropped")
}
