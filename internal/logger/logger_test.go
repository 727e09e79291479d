package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	require.NoError(t, Init(Options{Level: "debug", Env: "production", File: path}))

	Get().With("component", "test").Infow("hello", "symbol", "2330.TW")
	_ = Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"symbol":"2330.TW"`)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestInit_BadLevelFallsBackToInfo(t *testing.T) {
	require.NoError(t, Init(Options{Level: "loud"}))
	assert.False(t, Get().Desugar().Core().Enabled(-1)) // debug
	assert.True(t, Get().Desugar().Core().Enabled(0))   // info
}

func TestNop(t *testing.T) {
	l := Nop().With("k", "v")
	assert.NotPanics(t, func() { l.Infow("ignored") })
}
