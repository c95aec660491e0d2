package tspd

import (
	"sync/atomic"
	"time"
)

// deadlineCheckMask gates wall-clock checks to every 4096th call, mirroring
// tsp/bb.go's bbEngine.deadlineCheck sparse-counter discipline — time.Now()
// is not free, and the long-running loops of this module (operation-table
// layers, MIP node enumeration, greedy heap pops, the Murray–Chu and
// improvement scans) call Check() in their hottest loop. The fixed-order
// DP takes no token and does not check for cancellation.
const deadlineCheckMask = 4095

// Cancel is a cooperative cancellation token shared by every long-running
// solver in this module. Check is cheap enough to call on every iteration
// of a hot loop: it only consults the wall clock every 4096th call, and an
// explicit Cancel() call is visible immediately via the atomic flag.
type Cancel struct {
	cancelled atomic.Bool

	useDeadline bool
	deadline    time.Time
	steps       uint32
}

// NewCancel returns a token that also expires after timeLimit, if positive.
// A zero timeLimit means the token only ever fires via an explicit Cancel().
func NewCancel(timeLimit time.Duration) *Cancel {
	c := &Cancel{}
	if timeLimit > 0 {
		c.useDeadline = true
		c.deadline = time.Now().Add(timeLimit)
	}
	return c
}

// Cancel requests cancellation. Safe to call from any goroutine, though
// this module's solvers are themselves single-threaded.
func (c *Cancel) Cancel() {
	c.cancelled.Store(true)
}

// Check reports whether the caller should stop now. It is safe and cheap to
// call on every loop iteration.
func (c *Cancel) Check() bool {
	if c.cancelled.Load() {
		return true
	}
	c.steps++
	if !c.useDeadline || (c.steps&deadlineCheckMask) != 0 {
		return false
	}
	if time.Now().After(c.deadline) {
		c.cancelled.Store(true)
		return true
	}
	return false
}
