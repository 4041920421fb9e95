package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWriter(&buf, "warn", "json"))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Info().Msg("hidden")
	log.Warn().Str("symbol", "TCS.NS").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "TCS.NS", entry["symbol"])
	assert.Equal(t, "shown", entry["message"])
}

func TestInitWriter_Invalid(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, InitWriter(&buf, "loud", "json"))
	assert.Error(t, InitWriter(&buf, "info", "xml"))
}
