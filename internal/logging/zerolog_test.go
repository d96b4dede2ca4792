package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdapterLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Debugf("hidden %s", "detail")
	logger.Infof("projection ran %d trials", 100)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "projection ran 100 trials")
}

func TestAdapterVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debugf("debug %s", "detail")
	logger.Warnf("watch out")
	logger.Errorf("failed: %v", assert.AnError)

	out := buf.String()
	assert.Contains(t, out, "debug detail")
	assert.Contains(t, out, "watch out")
	assert.Contains(t, out, "failed")
}
