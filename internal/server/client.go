package server

// Client is a line-oriented connection to a text player.
type Client interface {
	// ReadLine blocks until a non-empty line is received.
	ReadLine() (string, error)

	// WriteLine sends one line to the player.
	WriteLine(message string) error

	Close() error

	// RemoteAddr returns the client's address for logging.
	RemoteAddr() string
}
