package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel(" DEBUG "))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel("nope"))
	assert.Equal(t, "error", Error.String())

	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "petclinic", Output: &buf})

	log.With(map[string]any{"request_id": "abc"}).Info("request", map[string]any{
		"status": 200,
		"err":    errors.New("boom"),
		" ":      "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "request", entry["message"])
	assert.Equal(t, "petclinic", entry["app"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "boom", entry["err"])
	assert.EqualValues(t, 200, entry["status"])
	assert.NotContains(t, entry, " ")
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Format: FormatJSON, Output: &buf})

	log.Info("hidden", nil)
	log.Debug("hidden", nil)
	assert.Zero(t, buf.Len())

	log.Error("shown", nil)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Debug, Format: FormatText, Output: &buf})

	log.Debug("hello", map[string]any{"k": "v"})
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "k=v")
}
