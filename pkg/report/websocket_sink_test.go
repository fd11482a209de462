package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listen starts a websocket server that forwards every received
// text frame to the returned channel.
func listen(t *testing.T) (string, <-chan string) {
	t.Helper()

	lines := make(chan string, 16)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			defer conn.Close()
			for {
				_, data, err := conn.ReadMessage()
				if err != nil {
					close(lines)
					return
				}
				lines <- string(data)
			}
		},
	))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http"), lines
}

func receive(t *testing.T, lines <-chan string) string {
	t.Helper()
	select {
	case l := <-lines:
		return l
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for report line")
		return ""
	}
}

func TestWebSocketSink_StreamsLines(t *testing.T) {
	url, lines := listen(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sink, err := DialWebSocketSink(ctx, url)
	require.NoError(t, err)

	sink.Success("[PASSED] remote")
	sink.Failure("[FAILED] remote | expected: 3 | Got: 2")

	assert.Equal(t, "[PASSED] remote", receive(t, lines))
	assert.Equal(t, "[FAILED] remote | expected: 3 | Got: 2", receive(t, lines))

	require.NoError(t, sink.Close())

	select {
	case _, ok := <-lines:
		assert.False(t, ok, "listener should observe the close")
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not observe close")
	}
}

func TestWebSocketSink_WriteAfterCloseIsLogged(t *testing.T) {
	url, _ := listen(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	logger := &mockLogger{}
	logger.On("Warn", "report line not delivered").Once()

	sink, err := DialWebSocketSink(ctx, url, WithSinkLogger(logger))
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	assert.NotPanics(t, func() { sink.Success("[PASSED] late") })
	logger.AssertExpectations(t)
}

func TestDialWebSocketSink_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := DialWebSocketSink(ctx, "ws://127.0.0.1:1/none")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial report listener")
}
