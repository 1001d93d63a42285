package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	hub := NewHub(logger)

	server := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(server.Close)
	return hub, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForMembers(t *testing.T, hub *Hub, room string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.RoomSize(room) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("room %s never reached %d members", room, want)
}

func TestHub_JoinAndPublish(t *testing.T) {
	hub, server := newTestHub(t)

	conn := dial(t, server)
	require.NoError(t, conn.WriteJSON(controlMessage{Action: "join", Room: "chat:1"}))
	waitForMembers(t, hub, "chat:1", 1)

	hub.Publish("chat:1", "message", map[string]string{"text": "hello"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var received envelope
	require.NoError(t, json.Unmarshal(data, &received))
	assert.Equal(t, "message", received.Event)
}

func TestHub_RoomsAreIsolated(t *testing.T) {
	hub, server := newTestHub(t)

	conn := dial(t, server)
	require.NoError(t, conn.WriteJSON(controlMessage{Action: "join", Room: "chat:1"}))
	waitForMembers(t, hub, "chat:1", 1)

	// Published to another room; nothing should arrive.
	hub.Publish("chat:2", "message", "data")

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestHub_LeaveStopsDelivery(t *testing.T) {
	hub, server := newTestHub(t)

	conn := dial(t, server)
	require.NoError(t, conn.WriteJSON(controlMessage{Action: "join", Room: "chat:1"}))
	waitForMembers(t, hub, "chat:1", 1)

	require.NoError(t, conn.WriteJSON(controlMessage{Action: "leave", Room: "chat:1"}))
	waitForMembers(t, hub, "chat:1", 0)
}

func TestHub_PublishToEmptyRoom(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	hub := NewHub(logger)

	// No members, no panic.
	hub.Publish("nowhere", "message", "data")
	assert.Equal(t, 0, hub.RoomSize("nowhere"))
}

func TestHub_DisconnectCleansUp(t *testing.T) {
	hub, server := newTestHub(t)

	conn := dial(t, server)
	require.NoError(t, conn.WriteJSON(controlMessage{Action: "join", Room: "chat:1"}))
	waitForMembers(t, hub, "chat:1", 1)

	conn.Close()
	waitForMembers(t, hub, "chat:1", 0)
}
