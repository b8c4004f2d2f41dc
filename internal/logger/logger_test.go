package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Service: "shop", Env: "prod", Level: "info", Output: &buf})

	log.Info("started", "port", 8080)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "started", line["msg"])
	assert.Equal(t, "shop", line["service"])
	assert.Equal(t, "prod", line["env"])
}

func TestNew_DevWritesText(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Service: "shop", Env: "dev", Output: &buf})

	log.Info("started")

	assert.Contains(t, buf.String(), "msg=started")
	assert.Contains(t, buf.String(), "service=shop")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Env: "dev", Level: "warn", Output: &buf})

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}
