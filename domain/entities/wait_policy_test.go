package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitPolicyResolve(t *testing.T) {
	t.Parallel()
	assert.Equal(t, time.Second, WaitPolicy{Timeout: time.Second}.Resolve(8*time.Second))
	assert.Equal(t, 8*time.Second, WaitPolicy{}.Resolve(8*time.Second))
	assert.Equal(t, 8*time.Second, WaitPolicy{Timeout: -time.Second}.Resolve(8*time.Second))
	assert.Equal(t, DefaultActionTimeout, WaitPolicy{}.Resolve(0))
	assert.Equal(t, 4*time.Second, DefaultActionTimeout)
}
