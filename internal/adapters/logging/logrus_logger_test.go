package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogrusLogger_MapsLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusLoggerWithWriter(&buf).With(map[string]interface{}{"session_id": "abc"})

	logger.Log("WARNING", "inventory written down", map[string]interface{}{"units": 4})
	logger.Log("DEBUG", "segment cleared", nil)

	out := buf.String()
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, `msg="inventory written down"`)
	assert.Contains(t, out, "units=4")
	assert.Contains(t, out, "session_id=abc")
	assert.Contains(t, out, "level=debug")
}
