package models

// EventType names a protocol event exchanged over a session connection.
type EventType string

const (
	// Client -> server.
	EventJoinInterview    EventType = "join-interview"
	EventInterviewMessage EventType = "interview-message"
	EventCodeChange       EventType = "code-change"

	// Server -> room members.
	EventUserJoined         EventType = "user-joined"
	EventParticipantsUpdate EventType = "participants-update"
)

// Event is the wire envelope for every session event. One flat struct covers all
// event kinds; which fields are set depends on Type.
type Event struct {
	Type        EventType `json:"type"`
	InterviewID string    `json:"interviewId,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	Username    string    `json:"username,omitempty"`
	User        string    `json:"user,omitempty"`
	Message     string    `json:"message,omitempty"`
	Code        string    `json:"code,omitempty"`
	Timestamp   string    `json:"timestamp,omitempty"`
	// Count is always serialized so a participants-update for an emptied
	// room still carries an explicit zero.
	Count int `json:"count"`

	// SenderConn is the connection id the event originated from. The relay path
	// skips this connection so senders are not echoed their own events.
	SenderConn string `json:"senderConn,omitempty"`
}
