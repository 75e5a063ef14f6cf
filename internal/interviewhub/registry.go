package interviewhub

import (
	"sync"
	"time"
)

// Room is an ephemeral collaboration context. It lives only in memory and is
// owned by its RoomRegistry; the coordinator goroutine is the only production
// mutator.
type Room struct {
	ID        string
	CreatedAt time.Time

	members  map[string]struct{}
	document string

	// emptySince is set while the room has no members and cleared on join.
	// The reaper deletes rooms that stay empty past the grace period.
	emptySince time.Time
}

// RoomRegistry maps room ids to room state. The mutex makes the registry safe
// to use directly from tests and auxiliary goroutines (reaper, recovery).
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room for roomID, creating it with an empty member
// set and empty document when it does not exist yet.
func (r *RoomRegistry) GetOrCreate(roomID string) *Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getOrCreateLocked(roomID)
}

func (r *RoomRegistry) getOrCreateLocked(roomID string) *Room {
	if room, ok := r.rooms[roomID]; ok {
		return room
	}
	room := &Room{
		ID:         roomID,
		CreatedAt:  time.Now(),
		members:    make(map[string]struct{}),
		emptySince: time.Now(),
	}
	r.rooms[roomID] = room
	return room
}

// AddMember inserts a connection into the room's member set, creating the room
// if needed. Inserting an existing member is a no-op. Returns the new count.
func (r *RoomRegistry) AddMember(roomID, connID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.getOrCreateLocked(roomID)
	room.members[connID] = struct{}{}
	room.emptySince = time.Time{}
	return len(room.members)
}

// RemoveMember removes a connection from the room's member set and returns the
// remaining count. Unknown rooms and unknown members are no-ops: membership
// changes must never break the relay path.
func (r *RoomRegistry) RemoveMember(roomID, connID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return 0
	}
	delete(room.members, connID)
	if len(room.members) == 0 {
		room.emptySince = time.Now()
	}
	return len(room.members)
}

// SetDocument overwrites the shared editor text. Last write wins; writes to an
// unknown room are dropped.
func (r *RoomRegistry) SetDocument(roomID, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room, ok := r.rooms[roomID]; ok {
		room.document = text
	}
}

// Document returns the current shared editor text, or "" for unknown rooms.
func (r *RoomRegistry) Document(roomID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if room, ok := r.rooms[roomID]; ok {
		return room.document
	}
	return ""
}

// Count returns the number of members currently in the room.
func (r *RoomRegistry) Count(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if room, ok := r.rooms[roomID]; ok {
		return len(room.members)
	}
	return 0
}

// Members returns a snapshot of the member connection ids.
func (r *RoomRegistry) Members(roomID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(room.members))
	for id := range room.members {
		ids = append(ids, id)
	}
	return ids
}

// Has reports whether the room currently exists in the registry.
func (r *RoomRegistry) Has(roomID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[roomID]
	return ok
}

// Rooms returns the number of rooms currently held.
func (r *RoomRegistry) Rooms() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// ReapEmpty deletes every room that has been empty for longer than grace and
// returns the ids that were deleted.
func (r *RoomRegistry) ReapEmpty(grace time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reaped []string
	now := time.Now()
	for id, room := range r.rooms {
		if len(room.members) > 0 || room.emptySince.IsZero() {
			continue
		}
		if now.Sub(room.emptySince) >= grace {
			delete(r.rooms, id)
			reaped = append(reaped, id)
		}
	}
	return reaped
}
