package link

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait        = 2 * time.Second
	handshakeTimeout = 10 * time.Second
)

type options struct {
	echo bool
	log  logrus.FieldLogger
}

type Option func(*options)

// WithEcho delivers every sent byte to the local receive queue as well.
func WithEcho(echo bool) Option {
	return func(o *options) {
		o.echo = echo
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = l
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.log = l
	}
	return o
}

// Conn is a link over a websocket. Each byte travels as a one-byte binary
// message.
type Conn struct {
	ws   *websocket.Conn
	rx   inbox
	echo bool
	log  logrus.FieldLogger

	writeMu sync.Mutex
	done    chan struct{}
	once    sync.Once
}

func newConn(ws *websocket.Conn, o options) *Conn {
	c := &Conn{
		ws:   ws,
		echo: o.echo,
		log:  o.log.WithField("peer", ws.RemoteAddr().String()),
		done: make(chan struct{}),
	}
	go c.readLoop()
	return c
}

func (c *Conn) readLoop() {
	defer c.once.Do(func() { close(c.done) })

	for {
		kind, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.WithError(err).Warn("link read failed")
			} else {
				c.log.Info("peer disconnected")
			}
			return
		}
		if kind != websocket.BinaryMessage {
			c.log.WithField("type", kind).Debug("ignoring non-binary message")
			continue
		}
		c.rx.push(payload...)
	}
}

func (c *Conn) Send(b byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("link: send %#02x: %w", b, err)
	}
	if err := c.ws.WriteMessage(websocket.BinaryMessage, []byte{b}); err != nil {
		return fmt.Errorf("link: send %#02x: %w", b, err)
	}
	if c.echo {
		c.rx.push(b)
	}
	return nil
}

func (c *Conn) TryReceive() (byte, bool) {
	return c.rx.pop()
}

// Reflects reports whether sent bytes are also queued locally.
func (c *Conn) Reflects() bool {
	return c.echo
}

// Done is closed when the peer goes away.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Close says goodbye to the peer and closes the socket.
func (c *Conn) Close() error {
	c.writeMu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	c.writeMu.Unlock()
	return c.ws.Close()
}

// Dial connects to a host's link endpoint, e.g. ws://host:9191/link.
func Dial(ctx context.Context, url string, opts ...Option) (*Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	ws, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("link: dial %s: %w", url, err)
	}
	return newConn(ws, newOptions(opts)), nil
}

// Listener is an http.Handler that upgrades exactly one peer into a Conn.
// Every later request is refused, including after that peer has left.
type Listener struct {
	upgrader websocket.Upgrader
	opts     options
	conns    chan *Conn

	mu   sync.Mutex
	busy bool
}

func NewListener(opts ...Option) *Listener {
	return &Listener{
		upgrader: websocket.Upgrader{
			HandshakeTimeout: handshakeTimeout,
			ReadBufferSize:   64,
			WriteBufferSize:  64,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
		opts:  newOptions(opts),
		conns: make(chan *Conn, 1),
	}
}

func (l *Listener) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l.mu.Lock()
	if l.busy {
		l.mu.Unlock()
		http.Error(w, "this board already has its peer", http.StatusConflict)
		return
	}
	l.busy = true
	l.mu.Unlock()

	ws, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.opts.log.WithError(err).Warn("link upgrade failed")
		l.release()
		return
	}
	c := newConn(ws, l.opts)
	select {
	case l.conns <- c:
	default:
		l.opts.log.Warn("no one is accepting, dropping peer")
		_ = c.Close()
	}
}

func (l *Listener) release() {
	l.mu.Lock()
	l.busy = false
	l.mu.Unlock()
}

// Accept waits for the peer to connect.
func (l *Listener) Accept(ctx context.Context) (*Conn, error) {
	select {
	case c := <-l.conns:
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
