// Package transport abstracts the unreliable frame transport underneath the
// protocol layer. A transport delivers or drops whole text frames with no
// ordering guarantee; reliability lives above it, in the server's
// retransmission pass.
package transport

// Frame is one inbound text frame attributed to a client address.
type Frame struct {
	Addr    string
	Payload []byte
}

// Transport is the boundary the match server polls. Recv never blocks: the
// poll loop does a non-blocking receive check each iteration and otherwise
// moves on.
type Transport interface {
	// Recv returns the next pending inbound frame, if any.
	Recv() (Frame, bool)
	// Send writes one frame to the client at addr. A failed send is the
	// caller's cue to queue the frame for retransmission.
	Send(addr string, payload []byte) error
	// Close releases the underlying listener.
	Close() error
}
