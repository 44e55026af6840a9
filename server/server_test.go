package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.creack.net/gocalc/config"
)

func startServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(cfg, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + srv.URL[4:] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "dial %q", wsURL)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, line string) string {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(line)))
	msgType, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.TextMessage, msgType)
	return string(data)
}

func TestWebSocketSession(t *testing.T) {
	srv := startServer(t, config.Default())
	conn := dial(t, srv)

	assert.Equal(t, "> 13", roundTrip(t, conn, "2+3*4-1"))
	assert.Equal(t, "> -20", roundTrip(t, conn, "-10+5*-2"))
	assert.Equal(t, "> Error: division by zero in (5 / 0)", roundTrip(t, conn, "5/0"))
	assert.Equal(t, "> 4", roundTrip(t, conn, "48/6/2"), "a diagnostic must not end the session")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("q")))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
}

func TestWebSocketReadLimit(t *testing.T) {
	srv := startServer(t, config.Default())
	conn := dial(t, srv)

	// 32768 ones joined by '+' is one byte under the limit.
	line := strings.Repeat("1+", maxLineSize/2-1) + "1"
	require.Len(t, line, maxLineSize-1)
	assert.Equal(t, "> 32768", roundTrip(t, conn, line))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(strings.Repeat("1", maxLineSize+1))))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseMessageTooBig), "unexpected error: %v", err)
}

func TestWebSocketSessionsAreIndependent(t *testing.T) {
	srv := startServer(t, config.Default())
	a := dial(t, srv)
	b := dial(t, srv)

	require.NoError(t, a.WriteMessage(websocket.TextMessage, []byte("q")))
	_, _, err := a.ReadMessage()
	require.Error(t, err)

	assert.Equal(t, "> 125000", roundTrip(t, b, "1000000/8"))
}

func TestWebSocketSkipBlankLines(t *testing.T) {
	cfg := config.Default()
	cfg.SkipBlankLines = true
	srv := startServer(t, cfg)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("   ")))
	// The blank line gets no reply, so the next reply belongs to the next line.
	assert.Equal(t, "> 6", roundTrip(t, conn, "2*3"))
}

func TestHealth(t *testing.T) {
	srv := startServer(t, config.Default())
	conn := dial(t, srv)
	// Make sure the session is registered before asking.
	assert.Equal(t, "> 2", roundTrip(t, conn, "1+1"))

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 1, body.Sessions)
}

func TestUpgradeRequired(t *testing.T) {
	srv := startServer(t, config.Default())
	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
