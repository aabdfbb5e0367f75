package notification

import "context"

// FilePart is a named attachment carried by an outgoing message
type FilePart struct {
	Filename    string
	ContentType string
	Content     []byte
}

// OutgoingMessage is a fully composed email ready for transport
type OutgoingMessage struct {
	To          []string
	Subject     string
	HTMLBody    string
	Attachments []FilePart
}

// Mailer delivers composed messages. Implementations own the transport
// details; callers treat any returned error as a delivery failure.
type Mailer interface {
	Send(ctx context.Context, msg OutgoingMessage) error
}
