package interviewhub

import "prepgogo/backend/internal/models"

// PresenceNotifier derives participants-update events from the registry's
// member sets. The count is never stored; it is recomputed from the member set
// on every membership change.
type PresenceNotifier struct {
	registry *RoomRegistry
}

func NewPresenceNotifier(registry *RoomRegistry) *PresenceNotifier {
	return &PresenceNotifier{registry: registry}
}

// CountEvent builds the participants-update event for a room. SenderConn is
// left empty so the event is fanned out to every member, joiner included.
func (n *PresenceNotifier) CountEvent(roomID string) models.Event {
	return models.Event{
		Type:        models.EventParticipantsUpdate,
		InterviewID: roomID,
		Count:       n.registry.Count(roomID),
	}
}
