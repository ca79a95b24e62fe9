package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel(" warning "))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("verbose"))
	assert.Equal(t, "error", Error.String())
}

func TestJSONLogger_MergesFieldsAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "medication-tracker", Out: &buf})

	l.Debug("hidden", nil)
	l.With(map[string]any{"dose_id": "d-1", "": "dropped"}).Warn("dose skipped", map[string]any{"state": "skipped"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "dose skipped", entry["message"])
	assert.Equal(t, "medication-tracker", entry["app"])
	assert.Equal(t, "d-1", entry["dose_id"])
	assert.Equal(t, "skipped", entry["state"])
	assert.NotContains(t, entry, "")
}

func TestTextLogger_WritesConsoleLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatText, Out: &buf})

	l.Info("store opened", map[string]any{"driver": "sqlite"})

	out := buf.String()
	assert.Contains(t, out, "store opened")
	assert.Contains(t, out, "driver=sqlite")
}
