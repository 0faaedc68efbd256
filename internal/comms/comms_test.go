package comms

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"viewer-backend/internal/protocol"
)

// startViewer runs a fake viewer websocket server and returns its port
func startViewer(t *testing.T, serve func(conn *websocket.Conn)) int {
	t.Helper()
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		serve(conn)
	}))
	t.Cleanup(server.Close)

	parts := strings.Split(server.Listener.Addr().String(), ":")
	port, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		t.Fatalf("failed to parse server port: %v", err)
	}
	return port
}

func TestListenRegistersAndDispatches(t *testing.T) {
	received := make(chan protocol.Message, 2)

	port := startViewer(t, func(conn *websocket.Conn) {
		// Expect the backend registration first
		var reg protocol.Message
		if err := conn.ReadJSON(&reg); err != nil {
			t.Errorf("read registration: %v", err)
			return
		}
		if reg.Type != protocol.MessageListen {
			t.Errorf("expected listen registration, got %q", reg.Type)
		}

		tool := protocol.ToolDistance
		msg := protocol.Message{
			Type:    protocol.MessageUpdates,
			Changes: &protocol.Changes{ActiveTool: &tool},
		}
		if err := conn.WriteJSON(msg); err != nil {
			t.Errorf("write failed: %v", err)
		}

		// Close cleanly so Listen returns nil
		deadline := time.Now().Add(time.Second)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	})

	err := Listen(port, func(msg *protocol.Message) {
		received <- *msg
	})
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	select {
	case msg := <-received:
		if msg.Type != protocol.MessageUpdates {
			t.Errorf("expected updates message, got %q", msg.Type)
		}
		if msg.Changes == nil || msg.Changes.ActiveTool == nil || *msg.Changes.ActiveTool != protocol.ToolDistance {
			t.Errorf("changes not delivered: %+v", msg.Changes)
		}
	default:
		t.Fatal("handler was not invoked")
	}
}

func TestSendResponse(t *testing.T) {
	got := make(chan map[string]any, 1)

	port := startViewer(t, func(conn *websocket.Conn) {
		var v map[string]any
		if err := conn.ReadJSON(&v); err != nil {
			t.Errorf("read failed: %v", err)
			return
		}
		got <- v
	})

	r := protocol.NewDistanceResponse()
	r.Distance = protocol.Float(5)
	if err := SendResponse(r, port); err != nil {
		t.Fatalf("SendResponse failed: %v", err)
	}

	select {
	case v := <-got:
		if v["type"] != protocol.ResponseType {
			t.Errorf("type: expected %q, got %v", protocol.ResponseType, v["type"])
		}
		if v["tool_type"] != protocol.ToolDistance {
			t.Errorf("tool_type: expected %q, got %v", protocol.ToolDistance, v["tool_type"])
		}
		if v["distance"] != 5.0 {
			t.Errorf("distance: expected 5, got %v", v["distance"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("viewer did not receive the response")
	}
}

func TestSendResponseNoViewer(t *testing.T) {
	// Port 1 is never listening; the transport failure must surface as
	// an error for the caller's boundary to log
	if err := SendResponse(protocol.NewDistanceResponse(), 1); err == nil {
		t.Error("expected error when no viewer is listening")
	}
}
