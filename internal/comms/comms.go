package comms

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"viewer-backend/internal/logger"
	"viewer-backend/internal/protocol"
)

const (
	dialTimeout = 10 * time.Second
	writeWait   = 10 * time.Second
)

var log = logger.Named("comms")

// Handler processes one inbound viewer message. Handlers are invoked
// sequentially from the read loop; a message is fully handled before
// the next one is read.
type Handler func(msg *protocol.Message)

func viewerURL(port int) string {
	u := url.URL{Scheme: "ws", Host: fmt.Sprintf("127.0.0.1:%d", port)}
	return u.String()
}

// Listen connects to the viewer's websocket port, registers this
// process as the measurement backend and dispatches inbound messages to
// the handler until the connection closes. A clean close returns nil.
func Listen(port int, handler Handler) error {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(viewerURL(port), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to viewer on port %d: %w", port, err)
	}
	defer conn.Close()

	connLog := log.WithField("conn", uuid.NewString()[:8])
	connLog.WithField("port", port).Info("connected to viewer")

	if err := writeJSON(conn, protocol.Message{Type: protocol.MessageListen}); err != nil {
		return fmt.Errorf("failed to register listener: %w", err)
	}

	for {
		var msg protocol.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				connLog.Info("viewer closed the connection")
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}
		handler(&msg)
	}
}

// SendResponse transmits a response record to the viewer listening on
// the given port. Each send uses its own short-lived connection; there
// are no retries.
func SendResponse(v any, port int) error {
	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.Dial(viewerURL(port), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to viewer on port %d: %w", port, err)
	}
	defer conn.Close()

	if err := writeJSON(conn, v); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	return nil
}

func writeJSON(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}
