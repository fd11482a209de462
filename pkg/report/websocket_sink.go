package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"digital.vasic.unittest/pkg/logging"
)

// WebSocketSink streams report lines as text frames to a remote
// listener, one frame per line. Both channels share the
// connection. Write failures are logged and otherwise ignored: a
// lost listener never changes an assertion's result.
type WebSocketSink struct {
	mu           sync.Mutex
	conn         *websocket.Conn
	logger       logging.Logger
	writeTimeout time.Duration
}

// WebSocketOption configures a WebSocketSink.
type WebSocketOption func(*WebSocketSink)

// WithSinkLogger sets the logger used for write errors.
func WithSinkLogger(logger logging.Logger) WebSocketOption {
	return func(s *WebSocketSink) {
		s.logger = logger
	}
}

// WithWriteTimeout sets the per-frame write deadline.
func WithWriteTimeout(d time.Duration) WebSocketOption {
	return func(s *WebSocketSink) {
		s.writeTimeout = d
	}
}

// NewWebSocketSink wraps an established connection.
func NewWebSocketSink(
	conn *websocket.Conn,
	opts ...WebSocketOption,
) *WebSocketSink {
	s := &WebSocketSink{
		conn:         conn,
		logger:       logging.NullLogger{},
		writeTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DialWebSocketSink connects to url and returns a sink over the
// new connection.
func DialWebSocketSink(
	ctx context.Context,
	url string,
	opts ...WebSocketOption,
) (*WebSocketSink, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(
		ctx, url, nil,
	)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial report listener: %w", err)
	}
	return NewWebSocketSink(conn, opts...), nil
}

// Success sends a passing line.
func (s *WebSocketSink) Success(line string) {
	s.send(line)
}

// Failure sends a failing line.
func (s *WebSocketSink) Failure(line string) {
	s.send(line)
}

func (s *WebSocketSink) send(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeTimeout > 0 {
		_ = s.conn.SetWriteDeadline(
			time.Now().Add(s.writeTimeout),
		)
	}
	err := s.conn.WriteMessage(
		websocket.TextMessage, []byte(line),
	)
	if err != nil {
		s.logger.Warn("report line not delivered",
			logging.StringField("line", line),
			logging.ErrorField(err),
		)
	}
}

// Close sends a normal closure frame and closes the connection.
func (s *WebSocketSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := websocket.FormatCloseMessage(
		websocket.CloseNormalClosure, "",
	)
	_ = s.conn.WriteControl(
		websocket.CloseMessage, msg,
		time.Now().Add(time.Second),
	)
	return s.conn.Close()
}
