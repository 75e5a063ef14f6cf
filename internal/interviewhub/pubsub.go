package interviewhub

import (
	"encoding/json"
	"log"

	"prepgogo/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// RunRelayListener consumes the Redis subscription carrying session events
// and feeds them into the coordinator's relay channel. Every backend instance
// runs one listener; this is how relayed events reach connections held by
// other instances.
func (c *CoordinatorService) RunRelayListener(sub *redis.PubSub) {
	defer sub.Close()

	for msg := range sub.Channel() {
		var ev models.Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("Error unmarshalling relayed event: %v", err)
			continue
		}

		c.RelayCh <- ev
	}
}
