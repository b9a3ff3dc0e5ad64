package notify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/notify"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// dialPair upgrades one server-side connection into the hub and returns the
// client side for reading.
func dialPair(t *testing.T, hub *notify.Hub, userID string) *websocket.Conn {
	t.Helper()

	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Register(userID, conn)
		close(registered)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	<-registered
	return conn
}

func TestHubDeliversToRegisteredConnection(t *testing.T) {
	hub := notify.NewHub()
	conn := dialPair(t, hub, "finder")

	hub.Emit(context.Background(), "finder", notify.Event{Type: notify.EventChatApproved})

	var got notify.Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON err: %v", err)
	}
	if got.Type != notify.EventChatApproved {
		t.Fatalf("event type = %s, want %s", got.Type, notify.EventChatApproved)
	}
}

func TestHubEmitToUnknownUserIsNoop(t *testing.T) {
	hub := notify.NewHub()
	// nothing registered; must not panic or block
	hub.Emit(context.Background(), "nobody", notify.Event{Type: notify.EventChatMessage})
}

// Emits race in from concurrent handlers and the redis bridge; the hub must
// serialize writes on each connection so none of them corrupt a frame.
func TestHubConcurrentEmitsSingleConnection(t *testing.T) {
	hub := notify.NewHub()
	conn := dialPair(t, hub, "finder")

	const emits = 50
	var wg sync.WaitGroup
	for i := 0; i < emits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Emit(context.Background(), "finder", notify.Event{Type: notify.EventChatMessage})
		}()
	}

	for i := 0; i < emits; i++ {
		var got notify.Event
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("ReadJSON after %d events: %v", i, err)
		}
		if got.Type != notify.EventChatMessage {
			t.Fatalf("event type = %s, want %s", got.Type, notify.EventChatMessage)
		}
	}
	wg.Wait()
}
