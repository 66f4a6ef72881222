package server

import (
	"fmt"
	"time"

	"github.com/AbdullahShariq/Chat-App/internal/types"
)

// ClientMessage is the union of events a client can send. Exactly one
// field is expected to be set per frame.
type ClientMessage struct {
	Join   *JoinRoom      `json:"joinRoom,omitempty"`
	Room   *RoomMessage   `json:"sendToRoom,omitempty"`
	Direct *DirectMessage `json:"sendMessage,omitempty"`
}

type JoinRoom struct {
	RoomName string `json:"roomName"`
}

// RoomMessage is an ephemeral room broadcast. The display name is
// whatever the client asserts; it is never checked against the store.
type RoomMessage struct {
	RoomName   string `json:"roomName"`
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
}

// DirectMessage is the durable, validated path. Depending on the
// configured lookup strategy the id pair or the name pair is read.
type DirectMessage struct {
	SenderId     int    `json:"senderId,omitempty"`
	ReceiverId   int    `json:"receiverId,omitempty"`
	SenderName   string `json:"senderName,omitempty"`
	ReceiverName string `json:"receiverName,omitempty"`
	Text         string `json:"text"`
}

// ServerMessage is the union of events emitted to clients.
type ServerMessage struct {
	Message      *types.Message `json:"newMessage,omitempty"`
	Notification string         `json:"notification,omitempty"`
	Error        *ErrorMessage  `json:"errorMessage,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

func joinNotice(roomName string) *ServerMessage {
	return &ServerMessage{
		Message: &types.Message{
			Sender: types.User{Username: "System"},
			Text:   fmt.Sprintf("Someone new just joined the %s chat!", roomName),
		},
		Timestamp: Now(),
	}
}

func roomMessage(roomName, senderName, text string) *ServerMessage {
	return &ServerMessage{
		Message: &types.Message{
			Sender: types.User{Username: senderName},
			Text:   fmt.Sprintf("[ROOM: %s] %s", roomName, text),
		},
		Timestamp: Now(),
	}
}

func newMessage(msg *types.Message) *ServerMessage {
	return &ServerMessage{
		Message:   msg,
		Timestamp: Now(),
	}
}

func activityNotification() *ServerMessage {
	return &ServerMessage{
		Notification: "New activity in the global chat!",
		Timestamp:    Now(),
	}
}

func errSenderNotFound() *ServerMessage {
	return &ServerMessage{
		Error:     &ErrorMessage{Message: "Sender does not exist"},
		Timestamp: Now(),
	}
}

func errReceiverNotFound() *ServerMessage {
	return &ServerMessage{
		Error:     &ErrorMessage{Message: "Receiver does not exist"},
		Timestamp: Now(),
	}
}

func errUserNotFound() *ServerMessage {
	return &ServerMessage{
		Error:     &ErrorMessage{Message: "User not found!"},
		Timestamp: Now(),
	}
}

func errSendFailed() *ServerMessage {
	return &ServerMessage{
		Error:     &ErrorMessage{Message: "Server error while sending."},
		Timestamp: Now(),
	}
}

func errInvalidMessage() *ServerMessage {
	return &ServerMessage{
		Error:     &ErrorMessage{Message: "invalid message format"},
		Timestamp: Now(),
	}
}

func Now() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}
