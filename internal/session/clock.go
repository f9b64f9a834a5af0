package session

import (
	"sync"
	"time"
)

// Clock counts whole seconds of play. It satisfies [mines.Clock]: the game
// starts it on the first click and stops it when the game ends.
//
// onTick runs on the clock's goroutine and must not block or call Stop.
// Once Stop has returned, onTick is never called again.
type Clock struct {
	interval time.Duration
	onTick   func(seconds int)

	mu      sync.Mutex
	seconds int
	started bool
	stopped bool
	stop    chan struct{}
	done    chan struct{}
}

func NewClock(interval time.Duration, onTick func(seconds int)) *Clock {
	return &Clock{
		interval: interval,
		onTick:   onTick,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins ticking. A clock can only run once; later calls do nothing.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started || c.stopped {
		return
	}
	c.started = true
	go c.run()
}

func (c *Clock) run() {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		}

		c.mu.Lock()
		if c.stopped {
			c.mu.Unlock()
			return
		}
		c.seconds++
		seconds := c.seconds
		c.mu.Unlock()

		if c.onTick != nil {
			c.onTick(seconds)
		}
	}
}

// Stop halts the clock and waits for a tick in flight to finish.
func (c *Clock) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	started := c.started
	close(c.stop)
	c.mu.Unlock()

	if started {
		<-c.done
	}
}

func (c *Clock) Elapsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seconds
}

func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started && !c.stopped
}
