package server

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sync"

	"github.com/AbdullahShariq/Chat-App/internal/config"
	"github.com/AbdullahShariq/Chat-App/internal/database"
	"github.com/AbdullahShariq/Chat-App/internal/stats"
	"github.com/AbdullahShariq/Chat-App/internal/types"
)

// ChatServer coordinates the per-connection session handlers: it owns
// the registry and broadcaster, validates direct messages against the
// user store and persists them before fan-out.
type ChatServer struct {
	log         *log.Logger
	db          database.ChatRepository
	registry    *Registry
	broadcaster *Broadcaster
	stats       stats.StatsProvider
	lookup      config.LookupStrategy
}

func NewChatServer(logger *log.Logger, db database.ChatRepository, registry *Registry, sp stats.StatsProvider, lookup config.LookupStrategy) (*ChatServer, error) {
	for _, metric := range []string{"NumConnections", "NumRooms", "MessagesSent", "MessagesDropped"} {
		sp.RegisterMetric(metric)
	}

	return &ChatServer{
		log:         logger,
		db:          db,
		registry:    registry,
		broadcaster: NewBroadcaster(registry, logger, sp),
		stats:       sp,
		lookup:      lookup,
	}, nil
}

func (cs *ChatServer) RegisterClient(c *Client) {
	cs.registry.register(c)
	cs.stats.Incr("NumConnections")
	cs.log.Printf("connection %s registered", c.id)
}

// DeregisterClient removes the connection from every room it joined.
// Called exactly once per connection, from the read pump's cleanup.
func (cs *ChatServer) DeregisterClient(c *Client) {
	pruned := cs.registry.deregister(c.id)
	cs.stats.Decr("NumConnections")
	for i := 0; i < pruned; i++ {
		cs.stats.Decr("NumRooms")
	}
	cs.log.Printf("connection %s deregistered", c.id)
}

func (cs *ChatServer) handleJoin(c *Client, join *JoinRoom) {
	if join.RoomName == "" {
		c.queueMessage(errInvalidMessage())
		return
	}

	created := cs.registry.join(c.id, join.RoomName)
	if created {
		cs.stats.Incr("NumRooms")
	}
	cs.log.Printf("connection %s joined room %q", c.id, join.RoomName)

	// everyone already in the room hears about the join, the joiner
	// does not
	cs.broadcaster.toRoom(join.RoomName, joinNotice(join.RoomName), c)
}

// handleRoomMessage echoes the payload to the whole room including the
// sender. Room messages are ephemeral and never hit the store.
func (cs *ChatServer) handleRoomMessage(c *Client, msg *RoomMessage) {
	if msg.RoomName == "" {
		c.queueMessage(errInvalidMessage())
		return
	}

	cs.broadcaster.toRoom(msg.RoomName, roomMessage(msg.RoomName, msg.SenderName, msg.Text), nil)
}

// handleSend is the durable path: resolve both participants, persist,
// then fan out to every connection. Lookup failures are reported to
// the originating connection only and are never fatal to it.
func (cs *ChatServer) handleSend(c *Client, msg *DirectMessage) {
	var (
		sender, receiver       database.User
		senderErr, receiverErr error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		sender, senderErr = cs.lookupUser(msg.SenderId, msg.SenderName)
	}()
	go func() {
		defer wg.Done()
		receiver, receiverErr = cs.lookupUser(msg.ReceiverId, msg.ReceiverName)
	}()
	wg.Wait()

	if senderErr != nil || receiverErr != nil {
		switch {
		case isNotFound(senderErr) && isNotFound(receiverErr):
			c.queueMessage(errUserNotFound())
		case isNotFound(senderErr):
			c.queueMessage(errSenderNotFound())
		case isNotFound(receiverErr):
			c.queueMessage(errReceiverNotFound())
		default:
			cs.log.Println("lookup user:", errors.Join(senderErr, receiverErr))
			c.queueMessage(errSendFailed())
		}
		return
	}

	dbMsg, err := cs.db.CreateMessage(database.CreateMessageParams{
		Text:       msg.Text,
		SenderId:   sender.Id,
		ReceiverId: receiver.Id,
	})
	if err != nil {
		cs.log.Println("create message:", err)
		c.queueMessage(errSendFailed())
		return
	}

	cs.stats.Incr("MessagesSent")

	// every connected client receives every direct message
	cs.broadcaster.toAll(newMessage(messageToWire(dbMsg)), nil)

	// best-effort activity ping to everyone else; delivery here is
	// not required for correctness
	cs.broadcaster.toAll(activityNotification(), c)
}

func (cs *ChatServer) lookupUser(id int, username string) (database.User, error) {
	switch cs.lookup {
	case config.LookupById:
		return cs.db.GetUserById(id)
	default:
		return cs.db.GetUserByUsername(username)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func messageToWire(msg database.Message) *types.Message {
	receiver := userToWire(msg.Receiver)
	return &types.Message{
		Id:         msg.Id,
		Text:       msg.Text,
		SenderId:   msg.SenderId,
		ReceiverId: msg.ReceiverId,
		Sender:     userToWire(msg.Sender),
		Receiver:   &receiver,
		CreatedAt:  msg.CreatedAt,
	}
}

func userToWire(u database.User) types.User {
	return types.User{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Shutdown stops every live connection, waiting no longer than the
// context allows.
func (cs *ChatServer) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		for _, c := range cs.registry.connections() {
			c.stopClient()
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
