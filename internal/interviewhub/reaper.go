package interviewhub

import (
	"log"
	"time"

	"prepgogo/backend/internal/storage"
)

// Reaper garbage-collects rooms whose members all disconnected without an
// explicit leave. A room must stay empty for the full grace period before it
// is deleted, so a brief reconnect keeps the room and its document.
type Reaper struct {
	registry *RoomRegistry
	storage  storage.Storage
	grace    time.Duration
	interval time.Duration
	quit     chan struct{}
}

func NewReaper(registry *RoomRegistry, s storage.Storage, grace, interval time.Duration) *Reaper {
	return &Reaper{
		registry: registry,
		storage:  s,
		grace:    grace,
		interval: interval,
		quit:     make(chan struct{}),
	}
}

// Run sweeps on a fixed interval until Stop is called.
func (r *Reaper) Run() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.quit:
			return
		}
	}
}

func (r *Reaper) Stop() {
	close(r.quit)
}

func (r *Reaper) sweep() {
	reaped := r.registry.ReapEmpty(r.grace)
	for _, roomID := range reaped {
		log.Printf("Reaped empty room %s", roomID)
		if r.storage != nil {
			if err := r.storage.RemoveActiveRoom(roomID); err != nil {
				log.Printf("ERROR: Failed to unmark reaped room %s: %v", roomID, err)
			}
		}
	}
}
