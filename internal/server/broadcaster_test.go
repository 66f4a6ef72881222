package server

import (
	"testing"

	"github.com/AbdullahShariq/Chat-App/internal/stats"
	"github.com/AbdullahShariq/Chat-App/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestBroadcaster(t *testing.T, reg *Registry, su *stats.MockStatsUpdater) *Broadcaster {
	return NewBroadcaster(reg, testutil.TestLogger(t), su)
}

func TestBroadcastToRoom(t *testing.T) {
	t.Run("excludes the skipped connection", func(t *testing.T) {
		reg := NewRegistry()
		a := newTestClient(t, "conn-a")
		b := newTestClient(t, "conn-b")
		c := newTestClient(t, "conn-c")
		for _, cl := range []*Client{a, b, c} {
			reg.register(cl)
			reg.join(cl.id, "lobby")
		}

		bc := newTestBroadcaster(t, reg, &stats.MockStatsUpdater{})
		bc.toRoom("lobby", joinNotice("lobby"), a)

		assert.Empty(t, drain(a), "expected the skipped connection to receive nothing")
		assert.Len(t, drain(b), 1, "expected other members to receive the payload")
		assert.Len(t, drain(c), 1, "expected other members to receive the payload")
	})

	t.Run("includes the sender without a skip", func(t *testing.T) {
		reg := NewRegistry()
		a := newTestClient(t, "conn-a")
		b := newTestClient(t, "conn-b")
		for _, cl := range []*Client{a, b} {
			reg.register(cl)
			reg.join(cl.id, "lobby")
		}

		bc := newTestBroadcaster(t, reg, &stats.MockStatsUpdater{})
		bc.toRoom("lobby", roomMessage("lobby", "A", "hi"), nil)

		assert.Len(t, drain(a), 1, "expected the sender to receive its own room message")
		assert.Len(t, drain(b), 1, "expected the other member to receive the room message")
	})

	t.Run("skips non-members", func(t *testing.T) {
		reg := NewRegistry()
		member := newTestClient(t, "conn-a")
		outsider := newTestClient(t, "conn-b")
		reg.register(member)
		reg.register(outsider)
		reg.join(member.id, "lobby")

		bc := newTestBroadcaster(t, reg, &stats.MockStatsUpdater{})
		bc.toRoom("lobby", joinNotice("lobby"), nil)

		assert.Len(t, drain(member), 1, "expected the member to receive the payload")
		assert.Empty(t, drain(outsider), "expected a connection outside the room to receive nothing")
	})
}

func TestBroadcastToAll(t *testing.T) {
	reg := NewRegistry()
	a := newTestClient(t, "conn-a")
	b := newTestClient(t, "conn-b")
	c := newTestClient(t, "conn-c")
	for _, cl := range []*Client{a, b, c} {
		reg.register(cl)
	}

	bc := newTestBroadcaster(t, reg, &stats.MockStatsUpdater{})
	bc.toAll(activityNotification(), a)

	assert.Empty(t, drain(a), "expected the skipped connection to receive nothing")
	assert.Len(t, drain(b), 1, "expected every other connection to receive the payload")
	assert.Len(t, drain(c), 1, "expected every other connection to receive the payload")
}

func TestBroadcastDropsWhenChannelFull(t *testing.T) {
	reg := NewRegistry()
	slow := newTestClient(t, "conn-slow")
	slow.send = make(chan *ServerMessage) // no buffer, no reader
	ok := newTestClient(t, "conn-ok")
	reg.register(slow)
	reg.register(ok)
	reg.join(slow.id, "lobby")
	reg.join(ok.id, "lobby")

	su := &stats.MockStatsUpdater{}
	su.On("Incr", "MessagesDropped").Once()
	defer su.AssertExpectations(t)

	bc := newTestBroadcaster(t, reg, su)
	bc.toRoom("lobby", joinNotice("lobby"), nil)

	assert.Len(t, drain(ok), 1, "expected a dropped delivery not to affect the other recipients")
}

func TestBroadcastSurvivesDisconnectMidFanout(t *testing.T) {
	t.Run("recipient stopped but not yet deregistered", func(t *testing.T) {
		reg := NewRegistry()
		a := newTestClient(t, "conn-a")
		b := newTestClient(t, "conn-b")
		for _, cl := range []*Client{a, b} {
			reg.register(cl)
			reg.join(cl.id, "lobby")
		}

		b.stopClient()

		bc := newTestBroadcaster(t, reg, &stats.MockStatsUpdater{})
		assert.NotPanics(t, func() {
			bc.toRoom("lobby", joinNotice("lobby"), nil)
		}, "expected delivery to a stopped connection not to raise")

		assert.Len(t, drain(a), 1, "expected the live recipient to still receive the payload")
	})

	t.Run("recipient deregistered between registry read and delivery", func(t *testing.T) {
		reg := NewRegistry()
		a := newTestClient(t, "conn-a")
		b := newTestClient(t, "conn-b")
		for _, cl := range []*Client{a, b} {
			reg.register(cl)
			reg.join(cl.id, "lobby")
		}

		members := reg.membersOf("lobby")
		reg.deregister(b.id)
		b.stopClient()

		bc := newTestBroadcaster(t, reg, &stats.MockStatsUpdater{})
		assert.NotPanics(t, func() {
			bc.deliver(members, joinNotice("lobby"), nil)
		}, "expected delivery over a stale snapshot not to raise")

		assert.Len(t, drain(a), 1, "expected the remaining recipient to receive the payload")
	})
}
