// ABOUTME: Transport abstraction for the relay session
// ABOUTME: Wraps a websocket connection behind a testable interface
package gateway

import (
	"context"

	"github.com/gorilla/websocket"
)

// Conn is one transport session to the relay endpoint.
type Conn interface {
	// ReadMessage blocks until a frame arrives or the session fails.
	ReadMessage() ([]byte, error)
	// WriteMessage sends one frame.
	WriteMessage(data []byte) error
	Close() error
}

// DialFunc opens a transport session. Injected so tests can drive the state
// machine without a network.
type DialFunc func(ctx context.Context, url string) (Conn, error)

type wsConn struct {
	ws *websocket.Conn
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	_, data, err := c.ws.ReadMessage()
	return data, err
}

func (c *wsConn) WriteMessage(data []byte) error {
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) Close() error {
	return c.ws.Close()
}

// DialRelay opens a websocket session to the relay endpoint.
func DialRelay(ctx context.Context, url string) (Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &wsConn{ws: ws}, nil
}
