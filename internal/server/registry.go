package server

import (
	"sync"
)

// Registry is the authoritative in-memory index of live connections
// and their room memberships. It is bidirectional so broadcast and
// disconnect cleanup are both a single map walk. One mutex guards
// both directions, keeping join and deregister atomic across them.
type Registry struct {
	mu        sync.RWMutex
	conns     map[string]*Client
	rooms     map[string]map[string]*Client
	connRooms map[string]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		conns:     make(map[string]*Client),
		rooms:     make(map[string]map[string]*Client),
		connRooms: make(map[string]map[string]struct{}),
	}
}

func (reg *Registry) register(c *Client) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.conns[c.id] = c
	reg.connRooms[c.id] = make(map[string]struct{})
}

// join adds the connection to the room, creating the room on first
// join. Joining a room twice is a no-op. It reports whether the room
// was created by this call.
func (reg *Registry) join(connId, roomName string) (created bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	c, ok := reg.conns[connId]
	if !ok {
		return false
	}

	if _, ok := reg.connRooms[connId][roomName]; ok {
		return false
	}

	members, ok := reg.rooms[roomName]
	if !ok {
		members = make(map[string]*Client)
		reg.rooms[roomName] = members
		created = true
	}

	members[connId] = c
	reg.connRooms[connId][roomName] = struct{}{}
	return created
}

// membersOf returns a snapshot of the room's members. Unknown rooms
// yield an empty slice, never an error.
func (reg *Registry) membersOf(roomName string) []*Client {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	members := make([]*Client, 0, len(reg.rooms[roomName]))
	for _, c := range reg.rooms[roomName] {
		members = append(members, c)
	}

	return members
}

// connections returns a snapshot of every registered connection.
func (reg *Registry) connections() []*Client {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	conns := make([]*Client, 0, len(reg.conns))
	for _, c := range reg.conns {
		conns = append(conns, c)
	}

	return conns
}

// deregister removes the connection from every room it belonged to,
// pruning rooms whose member set becomes empty. It reports how many
// rooms were pruned.
func (reg *Registry) deregister(connId string) (pruned int) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for roomName := range reg.connRooms[connId] {
		delete(reg.rooms[roomName], connId)
		if len(reg.rooms[roomName]) == 0 {
			delete(reg.rooms, roomName)
			pruned++
		}
	}

	delete(reg.connRooms, connId)
	delete(reg.conns, connId)
	return pruned
}

func (reg *Registry) numConnections() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return len(reg.conns)
}

func (reg *Registry) numRooms() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return len(reg.rooms)
}
