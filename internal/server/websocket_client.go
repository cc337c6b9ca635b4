package server

import (
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// closeGrace bounds how long a close frame may take to send.
const closeGrace = time.Second

// WebSocketClient reads typed commands from, and writes narration to, a
// browser player.
type WebSocketClient struct {
	conn    *websocket.Conn
	readBuf []string // lines left over from a multi-line message
	mu      sync.Mutex

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// NewWebSocketClient creates a new WebSocketClient from a WebSocket connection.
func NewWebSocketClient(conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{
		conn:    conn,
		readBuf: make([]string, 0),
	}
}

// ReadLine returns the next non-empty line. A message holding several lines
// is buffered and handed out one line at a time.
func (c *WebSocketClient) ReadLine() (string, error) {
	for {
		c.mu.Lock()
		if len(c.readBuf) > 0 {
			line := c.readBuf[0]
			c.readBuf = c.readBuf[1:]
			c.mu.Unlock()
			return line, nil
		}
		c.mu.Unlock()

		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}

		lines := splitLines(string(message))
		if len(lines) == 0 {
			continue
		}

		c.mu.Lock()
		c.readBuf = append(c.readBuf, lines[1:]...)
		c.mu.Unlock()
		return lines[0], nil
	}
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// WriteLine sends a message as one text frame.
func (c *WebSocketClient) WriteLine(message string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, []byte(message))
}

// Close sends a normal close frame and closes the connection. It is safe to
// call more than once.
func (c *WebSocketClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeGrace))
		c.writeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}

// RemoteAddr returns the remote address as a string.
func (c *WebSocketClient) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
