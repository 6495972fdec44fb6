package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Config{Format: FormatJSON})

	l.Info("fee calculated", "term", 12, "fee", 50.0)
	l.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "fee calculated", rec["msg"])
	assert.Equal(t, float64(12), rec["term"])

	ts, err := time.Parse(time.RFC3339Nano, rec["time"].(string))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ts.Location())
}

func TestNew_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Config{Format: FormatText, Debug: true})

	l.Debug("quote cache hit", "key", "quote:12:1000")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "key=quote:12:1000")
	assert.Contains(t, out, "source=")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("dropped") })
}
