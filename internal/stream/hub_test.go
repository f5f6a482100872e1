package stream

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount = %d, want %d", h.ClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastJSON(t *testing.T) {
	t.Parallel()

	h := New("test")
	srv := httptest.NewServer(h)
	defer srv.Close()
	defer h.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	waitClients(t, h, 2)

	if err := h.BroadcastJSON(map[string]int{"frame": 7}); err != nil {
		t.Fatal(err)
	}

	for _, conn := range []*websocket.Conn{a, b} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		typ, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var got map[string]int
		if typ != websocket.TextMessage || json.Unmarshal(data, &got) != nil || got["frame"] != 7 {
			t.Fatalf("message = %d %s", typ, data)
		}
	}

	if st := h.Stats(); st.Sent != 2 || st.Dropped != 0 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestClientDisconnect(t *testing.T) {
	t.Parallel()

	h := New("test")
	srv := httptest.NewServer(h)
	defer srv.Close()
	defer h.Close()

	conn := dial(t, srv)
	waitClients(t, h, 1)

	_ = conn.Close()
	waitClients(t, h, 0)
}

func TestCloseDisconnectsClients(t *testing.T) {
	t.Parallel()

	h := New("test")
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dial(t, srv)
	waitClients(t, h, 1)

	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNoStatusReceived, websocket.CloseNormalClosure) {
		t.Fatalf("read after Close = %v", err)
	}

	if err := h.Broadcast([]byte("x")); !errors.Is(err, ErrClosed) {
		t.Fatalf("Broadcast after Close = %v", err)
	}

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status after Close = %d", resp.StatusCode)
	}
}

func TestDropSlowClient(t *testing.T) {
	t.Parallel()

	h := New("test", WithBuffer(1))
	slow := &client{hub: h, send: make(chan []byte, 1)}
	if !h.register(slow) {
		t.Fatal("register failed")
	}

	if err := h.Broadcast([]byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := h.Broadcast([]byte("2")); err != nil {
		t.Fatal(err)
	}

	if h.ClientCount() != 0 {
		t.Fatal("slow client kept")
	}
	if st := h.Stats(); st.Sent != 1 || st.Dropped != 1 {
		t.Fatalf("stats = %+v", st)
	}

	// The queued message is still readable, then the queue is closed.
	if msg, ok := <-slow.send; !ok || string(msg) != "1" {
		t.Fatalf("queued = %q %v", msg, ok)
	}
	if _, ok := <-slow.send; ok {
		t.Fatal("send queue not closed")
	}

	// A later unregister from the read pump is a no-op.
	h.unregister(slow)
}
