package link

import "sync/atomic"

// Loopback is one end of an in-process link.
type Loopback struct {
	rx     *inbox
	peer   *inbox
	echo   bool
	closed atomic.Bool
}

// Pair returns two connected ends. With echo set, every byte sent is also
// delivered to the sender, the way an IR receiver picks up its own
// transmitter.
func Pair(echo bool) (*Loopback, *Loopback) {
	a, b := &inbox{}, &inbox{}
	return &Loopback{rx: a, peer: b, echo: echo}, &Loopback{rx: b, peer: a, echo: echo}
}

func (l *Loopback) Send(b byte) error {
	if l.closed.Load() {
		return ErrClosed
	}
	l.peer.push(b)
	if l.echo {
		l.rx.push(b)
	}
	return nil
}

func (l *Loopback) TryReceive() (byte, bool) {
	return l.rx.pop()
}

// Reflects reports whether sent bytes come back to this end.
func (l *Loopback) Reflects() bool {
	return l.echo
}

// Pending returns the number of bytes waiting to be received.
func (l *Loopback) Pending() int {
	return l.rx.len()
}

// Close makes further sends fail. Bytes already queued can still be received.
func (l *Loopback) Close() error {
	l.closed.Store(true)
	return nil
}
