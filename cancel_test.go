package tspd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCancelExplicitFiresImmediately(t *testing.T) {
	c := NewCancel(0)
	assert.False(t, c.Check())
	c.Cancel()
	assert.True(t, c.Check())
}

func TestCancelWithoutDeadlineOrCancelNeverFires(t *testing.T) {
	c := NewCancel(0)
	for i := 0; i < deadlineCheckMask*2; i++ {
		assert.False(t, c.Check())
	}
}

func TestCancelDeadlineEventuallyFires(t *testing.T) {
	c := NewCancel(time.Nanosecond)
	time.Sleep(time.Millisecond)
	var fired bool
	for i := 0; i <= deadlineCheckMask+1; i++ {
		if c.Check() {
			fired = true
			break
		}
	}
	assert.True(t, fired)
}
