package engine

import (
	"sync/atomic"
	"time"
)

// ticker runs fn every interval on its own goroutine until stopped
type ticker struct {
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// startTicker launches the periodic callback and counts it in active
func startTicker(interval time.Duration, active *atomic.Int32, fn func()) *ticker {
	t := &ticker{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	active.Add(1)

	go func() {
		defer close(t.done)
		defer active.Add(-1)

		tk := time.NewTicker(interval)
		defer tk.Stop()

		for {
			select {
			case <-t.stop:
				return
			case <-tk.C:
				// stop wins over a tick that raced with it
				select {
				case <-t.stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	return t
}

// Stop cancels the ticker and waits for its goroutine to exit.
// No callback runs after Stop returns.
func (t *ticker) Stop() {
	close(t.stop)
	<-t.done
}
