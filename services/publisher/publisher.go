package publisher

// Publisher represents a service for delivering unified routes downstream.
// Persistence itself stays outside this codebase; the stream is the handoff.
type Publisher interface {
	// Publish publishes a message under a source key
	Publish(key string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
