package server

import (
	"log"

	"github.com/AbdullahShariq/Chat-App/internal/stats"
)

// Broadcaster fans a message out to a delivery set computed from the
// registry. Every delivery is an independent non-blocking enqueue on
// the recipient's send channel: a slow or already-closed connection
// drops its copy and never holds up the rest of the set.
type Broadcaster struct {
	registry *Registry
	log      *log.Logger
	stats    stats.StatsProvider
}

func NewBroadcaster(registry *Registry, logger *log.Logger, sp stats.StatsProvider) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		log:      logger,
		stats:    sp,
	}
}

// toRoom delivers msg to every current member of the room except skip.
// skip may be nil, in which case all members receive it.
func (b *Broadcaster) toRoom(roomName string, msg *ServerMessage, skip *Client) {
	b.deliver(b.registry.membersOf(roomName), msg, skip)
}

// toAll delivers msg to every registered connection except skip.
func (b *Broadcaster) toAll(msg *ServerMessage, skip *Client) {
	b.deliver(b.registry.connections(), msg, skip)
}

func (b *Broadcaster) deliver(targets []*Client, msg *ServerMessage, skip *Client) {
	for _, c := range targets {
		if c == skip {
			continue
		}

		if !c.queueMessage(msg) {
			b.log.Printf("dropped message for connection %s", c.id)
			b.stats.Incr("MessagesDropped")
		}
	}
}
