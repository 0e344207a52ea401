package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerIsTagged(t *testing.T) {
	logger := NewLogger("test_module")
	assert.NotNil(t, logger.Logger)
	assert.Equal(t, "test_module", logger.name)
}

func TestDefaultLevel(t *testing.T) {
	logger := Default()
	assert.Equal(t, "info", logger.Level())
}

func TestIsDebugEnabled(t *testing.T) {
	logger := NewLogger("another_module")
	if logger.Level() == "debug" {
		assert.True(t, logger.IsDebugEnabled())
	} else {
		assert.False(t, logger.IsDebugEnabled())
	}
}
