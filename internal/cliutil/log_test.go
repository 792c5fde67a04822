package cliutil

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestLoggerRespectsVerbose(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	l := NewLogger(false)
	l.out = &buf

	l.Infof("hidden %d", 1)
	l.Donef("also hidden")
	assert.Empty(t, buf.String())

	l.Warnf("shown %s", "warning")
	assert.Contains(t, buf.String(), "warning: shown warning")
}

func TestLoggerVerboseEmitsInfo(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	l := NewLogger(true)
	l.out = &buf

	l.Infof("reading %s", "schema.json")
	assert.Contains(t, buf.String(), "reading schema.json")
}
