package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNow_IsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Now().Location())
}

func TestIsExpired(t *testing.T) {
	assert.True(t, IsExpired(Now().Add(-time.Minute)))
	assert.False(t, IsExpired(Now().Add(time.Minute)))
}
