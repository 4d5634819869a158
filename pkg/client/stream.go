package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/naveenspark/parley/pkg/domain"
)

// ErrStreamClosed is returned by Stream.Next after Close.
var ErrStreamClosed = errors.New("stream closed")

// streamRedialInterval is the minimum spacing between reconnect attempts.
const streamRedialInterval = 2 * time.Second

// Stream is a live event feed over a websocket. It dials lazily and
// reconnects transparently on read errors.
type Stream struct {
	url     string
	header  http.Header
	dialer  *websocket.Dialer
	limiter *rate.Limiter

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

// Stream returns a live event stream for the caller. Nothing is dialed until the first Next.
func (c *Client) Stream() *Stream {
	h := http.Header{}
	c.authorize(h)
	return &Stream{
		url:     websocketURL(c.baseURL) + "/api/stream",
		header:  h,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Every(streamRedialInterval), 1),
	}
}

// Next blocks until the next event arrives, ctx is done, or the stream is closed.
// Authentication failures during the handshake are returned as *HTTPError and are not retried.
func (s *Stream) Next(ctx context.Context) (domain.StreamEvent, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.StreamEvent{}, err
		}
		conn, err := s.connect(ctx)
		if err != nil {
			var httpErr *HTTPError
			if errors.As(err, &httpErr) || errors.Is(err, ErrStreamClosed) || ctx.Err() != nil {
				return domain.StreamEvent{}, fmt.Errorf("client.Stream: %w", err)
			}
			continue
		}

		stop := context.AfterFunc(ctx, func() { s.drop(conn) })
		var ev domain.StreamEvent
		err = conn.ReadJSON(&ev)
		stop()
		if err != nil {
			s.drop(conn)
			continue
		}
		return ev, nil
	}
}

// Close terminates the stream; pending and future Next calls return ErrStreamClosed.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *Stream) connect(ctx context.Context) (*websocket.Conn, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrStreamClosed
	}
	if s.conn != nil {
		conn := s.conn
		s.mu.Unlock()
		return conn, nil
	}
	s.mu.Unlock()

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	conn, resp, err := s.dialer.DialContext(ctx, s.url, s.header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, &HTTPError{StatusCode: resp.StatusCode, Message: "stream handshake rejected"}
		}
		return nil, fmt.Errorf("dial stream: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		conn.Close() //nolint:errcheck
		return nil, ErrStreamClosed
	}
	s.conn = conn
	return conn, nil
}

// drop closes conn if it is still the current connection.
func (s *Stream) drop(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == conn {
		s.conn = nil
	}
	conn.Close() //nolint:errcheck // best-effort close
}

// websocketURL maps an http(s) base URL onto its ws(s) equivalent.
func websocketURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}
