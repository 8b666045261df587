package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, DisabledLevel, ParseLevel("disabled"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
}

func TestConfigureWritesJSONWithComponent(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	lgr := Configure(Config{Level: DebugLevel, Output: &buf})
	storageLgr := Component(lgr, "storage")
	storageLgr.Debug().Str("key", "students").Msg("write")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "storage", line["component"])
	assert.Equal(t, "students", line["key"])
	assert.Equal(t, "debug", line["level"])
	assert.Contains(t, line, "time")
}

func TestConfigureFiltersBelowLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	Configure(Config{Level: ErrorLevel, Output: &buf})
	Info().Msg("hidden")
	Warn().Msg("hidden")
	assert.Zero(t, buf.Len())

	Error().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
