package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	assert.Equal(t, uint(3), cfg.Attempts)
	assert.Equal(t, 100*time.Millisecond, cfg.Delay)
	assert.Equal(t, 2*time.Second, cfg.MaxDelay)
	// Backoff must be able to grow, not be clamped below the base delay.
	assert.Less(t, cfg.Delay, cfg.MaxDelay)
}

func TestToRetryOptions(t *testing.T) {
	assert.Len(t, DefaultRetryConfig().ToRetryOptions(), 3)
}
