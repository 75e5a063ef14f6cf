package interviewhub

import "prepgogo/backend/internal/models"

// Client is the interface for one live connection to the session layer. It
// abstracts the underlying transport so the coordinator can manage every
// connection uniformly.
type Client interface {
	// GetConnID returns the unique identifier of this connection.
	GetConnID() string
	// GetUserID returns the authenticated user id behind the connection.
	GetUserID() string
	// GetUsername returns the authenticated display name ("Guest" when the
	// token carried none).
	GetUsername() string

	// GetRoomID returns the room the connection is currently joined to, or ""
	// while it has not joined one.
	GetRoomID() string
	// SetRoomID records the room this connection belongs to. Called by the
	// coordinator on join and leave.
	SetRoomID(string)

	// GetSendChannel returns the channel the coordinator writes outbound
	// events to. It is a send-only channel.
	GetSendChannel() chan<- models.Event

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's outbound channel.
	Close()
}
