package interviewhub

import (
	"log"
	"time"

	"prepgogo/backend/internal/models"
	"prepgogo/backend/internal/storage"
)

// CoordinatorService is the per-process hub for interview sessions. A single
// Run goroutine owns the client map and applies every inbound event to
// completion before the next one, so room and membership mutations need no
// further locking on this path.
type CoordinatorService struct {
	// Clients maps connection id to the live connection.
	Clients map[string]Client

	Registry *RoomRegistry
	Presence *PresenceNotifier

	// Channels feeding the Run loop.
	IncomingCh   chan models.Event
	RegisterCh   chan Client
	UnregisterCh chan Client

	// RelayCh carries events ready for local fan-out. In production it is fed
	// by the Redis relay listener; tests feed it directly.
	RelayCh chan models.Event

	Storage storage.Storage
}

func NewCoordinatorService(registry *RoomRegistry, s storage.Storage) *CoordinatorService {
	return &CoordinatorService{
		Clients:      make(map[string]Client),
		Registry:     registry,
		Presence:     NewPresenceNotifier(registry),
		IncomingCh:   make(chan models.Event),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		RelayCh:      make(chan models.Event),
		Storage:      s,
	}
}

// RecoverActiveRooms pre-creates registry entries for rooms the active-room
// set still lists after a restart. Documents are ephemeral and start empty;
// unused entries age out through the reaper.
func (c *CoordinatorService) RecoverActiveRooms() {
	if c.Storage == nil {
		return
	}

	activeRoomIDs, err := c.Storage.GetActiveRoomIDs()
	if err != nil {
		log.Printf("ERROR: Failed to retrieve active rooms from storage: %v", err)
		return
	}

	for _, roomID := range activeRoomIDs {
		c.Registry.GetOrCreate(roomID)
	}
	log.Printf("Recovery complete. Restored %d previously active rooms.", len(activeRoomIDs))
}

// Run is the coordinator's main loop. It must be started in its own goroutine
// and runs until the process exits.
func (c *CoordinatorService) Run() {
	for {
		select {
		case client := <-c.RegisterCh:
			c.Clients[client.GetConnID()] = client
			log.Printf("Connection %s registered (user %s).", client.GetConnID(), client.GetUserID())

		case client := <-c.UnregisterCh:
			if _, ok := c.Clients[client.GetConnID()]; ok {
				delete(c.Clients, client.GetConnID())
				c.leaveRoom(client)
				client.Close()
				log.Printf("Connection %s unregistered.", client.GetConnID())
			}

		case ev := <-c.IncomingCh:
			c.handleIncoming(ev)

		case ev := <-c.RelayCh:
			c.fanOut(ev)
		}
	}
}

// handleIncoming dispatches one client event. Events from connections that
// have already gone away are dropped.
func (c *CoordinatorService) handleIncoming(ev models.Event) {
	sender, ok := c.Clients[ev.SenderConn]
	if !ok {
		return
	}

	switch ev.Type {
	case models.EventJoinInterview:
		c.handleJoin(sender, ev)
	case models.EventInterviewMessage:
		c.handleMessage(sender, ev)
	case models.EventCodeChange:
		c.handleCodeChange(sender, ev)
	default:
		log.Printf("WARNING: Dropping unknown event type %q from connection %s", ev.Type, ev.SenderConn)
	}
}

func (c *CoordinatorService) handleJoin(sender Client, ev models.Event) {
	roomID := ev.InterviewID
	if roomID == "" {
		return
	}

	// A join while already joined elsewhere is a room switch.
	if current := sender.GetRoomID(); current != "" && current != roomID {
		c.leaveRoom(sender)
	}

	username := ev.Username
	if username == "" {
		username = sender.GetUsername()
	}
	if username == "" {
		username = "Guest"
	}

	c.Registry.AddMember(roomID, sender.GetConnID())
	sender.SetRoomID(roomID)

	if c.Storage != nil {
		if err := c.Storage.AddActiveRoom(roomID); err != nil {
			log.Printf("ERROR: Failed to mark room %s active: %v", roomID, err)
		}
	}

	c.publish(models.Event{
		Type:        models.EventUserJoined,
		InterviewID: roomID,
		UserID:      sender.GetUserID(),
		Username:    username,
		SenderConn:  sender.GetConnID(),
	})
	c.publish(c.Presence.CountEvent(roomID))
}

func (c *CoordinatorService) handleMessage(sender Client, ev models.Event) {
	roomID := sender.GetRoomID()
	if roomID == "" {
		return
	}

	// The connection's room is authoritative over whatever the payload claims.
	ev.InterviewID = roomID
	if ev.User == "" {
		ev.User = sender.GetUsername()
	}
	if ev.Timestamp == "" {
		ev.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	ev.SenderConn = sender.GetConnID()

	c.publish(ev)
}

func (c *CoordinatorService) handleCodeChange(sender Client, ev models.Event) {
	roomID := sender.GetRoomID()
	if roomID == "" {
		return
	}

	c.Registry.SetDocument(roomID, ev.Code)

	c.publish(models.Event{
		Type:        models.EventCodeChange,
		InterviewID: roomID,
		Code:        ev.Code,
		SenderConn:  sender.GetConnID(),
	})
}

// leaveRoom removes the connection from its room and rebroadcasts presence to
// whoever remains. Safe to call for connections that never joined.
func (c *CoordinatorService) leaveRoom(client Client) {
	roomID := client.GetRoomID()
	if roomID == "" {
		return
	}

	remaining := c.Registry.RemoveMember(roomID, client.GetConnID())
	client.SetRoomID("")

	if remaining == 0 {
		if c.Storage != nil {
			if err := c.Storage.RemoveActiveRoom(roomID); err != nil {
				log.Printf("ERROR: Failed to unmark active room %s: %v", roomID, err)
			}
		}
		return
	}

	c.publish(c.Presence.CountEvent(roomID))
}

// publish hands an event to the relay path. With storage wired, that means the
// Redis channel for the room; every instance (this one included) picks it up
// through its relay listener. Without storage, or when the publish fails, the
// event is delivered to local members directly so the room keeps operating.
func (c *CoordinatorService) publish(ev models.Event) {
	if c.Storage == nil {
		c.fanOut(ev)
		return
	}
	if err := c.Storage.PublishEvent(ev.InterviewID, ev); err != nil {
		log.Printf("ERROR: Failed to publish event for room %s: %v", ev.InterviewID, err)
		c.fanOut(ev)
	}
}

// fanOut pushes an event to every local member of its room except the sender
// connection. A member whose send buffer is full is dropped rather than
// allowed to stall the others.
func (c *CoordinatorService) fanOut(ev models.Event) {
	for connID, client := range c.Clients {
		if client.GetRoomID() != ev.InterviewID {
			continue
		}
		if ev.SenderConn != "" && connID == ev.SenderConn {
			continue
		}

		select {
		case client.GetSendChannel() <- ev:
		default:
			log.Printf("WARNING: Connection %s is not keeping up; dropping it from room %s", connID, ev.InterviewID)
			delete(c.Clients, connID)
			c.leaveRoom(client)
			client.Close()
		}
	}
}
