package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConnectBudget(t *testing.T) {
	cfg := &DBConfig{MaxRetries: 5, RetryDelay: time.Second, ConnectTimeout: 10 * time.Second}

	assert.Equal(t, 4*time.Second, cfg.RetryBackoff(3))
	// 5 attempts x 10s plus 1s+2s+4s+8s of backoff.
	assert.Equal(t, 65*time.Second, cfg.ConnectBudget())

	single := &DBConfig{}
	assert.Equal(t, 1, single.Attempts())
	assert.Equal(t, 10*time.Second, single.ConnectBudget())
}
