package service

import (
	"sync/atomic"
	"time"
)

const sweepInterval = 5 * time.Minute

// sweepGuard throttles the opportunistic status sweep so that at most one
// request per interval pays the cost. tryAcquire is safe for concurrent use.
type sweepGuard struct {
	last atomic.Int64
}

func (g *sweepGuard) tryAcquire(now time.Time) bool {
	for {
		prev := g.last.Load()
		if prev != 0 && now.UnixNano()-prev < int64(sweepInterval) {
			return false
		}
		if g.last.CompareAndSwap(prev, now.UnixNano()) {
			return true
		}
	}
}
