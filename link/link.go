// Package link carries single bytes between two boards. Every implementation
// is non-blocking on receive: bytes are queued as they arrive and drained by
// TryReceive from the tick loop.
package link

import (
	"errors"
	"sync"

	"github.com/gammazero/deque"
)

// ErrClosed is returned by Send once the link is gone.
var ErrClosed = errors.New("link closed")

// inbox is a byte queue shared between a producer goroutine and the tick loop.
type inbox struct {
	mu sync.Mutex
	q  deque.Deque[byte]
}

func (in *inbox) push(b ...byte) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for _, x := range b {
		in.q.PushBack(x)
	}
}

func (in *inbox) pop() (byte, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.q.Len() == 0 {
		return 0, false
	}
	return in.q.PopFront(), true
}

func (in *inbox) len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.q.Len()
}
