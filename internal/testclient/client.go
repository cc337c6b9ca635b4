// Package testclient drives a running server's WebSocket play endpoint for
// integration runs.
package testclient

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TestClient is one player connected to /play.
type TestClient struct {
	Name     string
	conn     *websocket.Conn
	messages []string
	mu       sync.Mutex
	writeMu  sync.Mutex
	closed   chan struct{}
}

// Options select the player identity and locale for a connection.
type Options struct {
	// User is sent as ?user=; empty lets the server pick an anonymous id.
	User   string
	Locale string
	Path   string
}

// NewTestClient connects to the play endpoint at address (host:port) and
// waits for the launch narration.
func NewTestClient(name, address string, opts Options) (*TestClient, error) {
	client, err := NewTestClientRaw(name, address, opts)
	if err != nil {
		return nil, err
	}

	if !client.WaitForAnyOutput(2 * time.Second) {
		client.Close()
		return nil, fmt.Errorf("no launch narration from %s", address)
	}
	return client, nil
}

// NewTestClientRaw connects without waiting for any narration.
func NewTestClientRaw(name, address string, opts Options) (*TestClient, error) {
	path := opts.Path
	if path == "" {
		path = "/play"
	}
	q := url.Values{}
	if opts.User != "" {
		q.Set("user", opts.User)
	}
	if opts.Locale != "" {
		q.Set("locale", opts.Locale)
	}
	u := url.URL{Scheme: "ws", Host: address, Path: path, RawQuery: q.Encode()}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	client := &TestClient{
		Name:   name,
		conn:   conn,
		closed: make(chan struct{}),
	}
	go client.readMessages()
	return client, nil
}

// readMessages collects server lines until the connection closes.
func (c *TestClient) readMessages() {
	defer close(c.closed)
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		line := strings.TrimSpace(string(msg))
		if line != "" {
			c.mu.Lock()
			c.messages = append(c.messages, line)
			c.mu.Unlock()
		}
	}
}

// SendCommand sends one typed line.
func (c *TestClient) SendCommand(cmd string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, []byte(cmd))
}

// GetMessages returns all messages received so far
func (c *TestClient) GetMessages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]string, len(c.messages))
	copy(result, c.messages)
	return result
}

// ClearMessages clears the message buffer
func (c *TestClient) ClearMessages() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

// WaitForMessage waits for a message containing text.
func (c *TestClient) WaitForMessage(text string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if c.HasMessage(text) {
			return true
		}
		time.Sleep(50 * time.Millisecond)
	}
	return false
}

// WaitForAnyOutput waits until at least one message has arrived.
func (c *TestClient) WaitForAnyOutput(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if len(c.GetMessages()) > 0 {
			return true
		}
		time.Sleep(50 * time.Millisecond)
	}
	return false
}

// WaitForClose waits for the server to end the connection.
func (c *TestClient) WaitForClose(timeout time.Duration) bool {
	select {
	case <-c.closed:
		return true
	case <-time.After(timeout):
		return false
	}
}

// HasMessage checks if any message contains the specified text
func (c *TestClient) HasMessage(text string) bool {
	for _, msg := range c.GetMessages() {
		if strings.Contains(msg, text) {
			return true
		}
	}
	return false
}

// GetLastMessage returns the most recent message
func (c *TestClient) GetLastMessage() string {
	messages := c.GetMessages()
	if len(messages) == 0 {
		return ""
	}
	return messages[len(messages)-1]
}

// PrintMessages prints all messages (for debugging)
func (c *TestClient) PrintMessages() {
	fmt.Printf("\n=== Messages for %s ===\n", c.Name)
	for i, msg := range c.GetMessages() {
		fmt.Printf("[%d] %s\n", i, msg)
	}
	fmt.Println("======================")
}

// Close closes the client connection
func (c *TestClient) Close() error {
	return c.conn.Close()
}
