// Package command ingests JSON commands from the network channels and
// translates them into simulator messages returned to the host tick.
package command

import (
	"sync"

	"github.com/eapache/queue"
)

// Queue is a FIFO of raw command payloads. Network goroutines push,
// the host tick drains. The mutex guards short critical sections only;
// no I/O happens under it.
type Queue struct {
	mu sync.Mutex
	q  *queue.Queue
}

// NewQueue creates an empty command queue.
func NewQueue() *Queue {
	return &Queue{q: queue.New()}
}

// Push enqueues one raw command payload.
func (c *Queue) Push(payload []byte) {
	c.mu.Lock()
	c.q.Add(payload)
	c.mu.Unlock()
}

// Drain removes and returns all queued payloads in arrival order.
func (c *Queue) Drain() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.q.Length() == 0 {
		return nil
	}
	out := make([][]byte, 0, c.q.Length())
	for c.q.Length() > 0 {
		out = append(out, c.q.Remove().([]byte))
	}
	return out
}

// Len returns the number of queued payloads.
func (c *Queue) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Length()
}
