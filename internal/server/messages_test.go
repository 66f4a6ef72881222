package server

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJoinNotice(t *testing.T) {
	msg := joinNotice("lobby")

	assert.NotNil(t, msg.Message, "expected a newMessage payload")
	assert.Equal(t, "System", msg.Message.Sender.Username, "expected the system sender")
	assert.Equal(t, "Someone new just joined the lobby chat!", msg.Message.Text, "expected the join notice text")
	assert.WithinDuration(t, Now(), msg.Timestamp, time.Second, "expected a current timestamp")
}

func TestRoomMessage(t *testing.T) {
	msg := roomMessage("lobby", "A", "hi")

	assert.NotNil(t, msg.Message, "expected a newMessage payload")
	assert.Equal(t, "A", msg.Message.Sender.Username, "expected the asserted sender name")
	assert.Equal(t, "[ROOM: lobby] hi", msg.Message.Text, "expected the room-tagged text")
}

func TestActivityNotification(t *testing.T) {
	msg := activityNotification()

	assert.Nil(t, msg.Message, "expected no newMessage payload")
	assert.Equal(t, "New activity in the global chat!", msg.Notification, "expected the activity notification text")
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		msg      *ServerMessage
		expected string
	}{
		{"sender not found", errSenderNotFound(), "Sender does not exist"},
		{"receiver not found", errReceiverNotFound(), "Receiver does not exist"},
		{"user not found", errUserNotFound(), "User not found!"},
		{"send failed", errSendFailed(), "Server error while sending."},
		{"invalid message", errInvalidMessage(), "invalid message format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotNil(t, tc.msg.Error, "expected an errorMessage payload")
			assert.Equal(t, tc.expected, tc.msg.Error.Message, "expected the error text")
			assert.Nil(t, tc.msg.Message, "expected no newMessage payload on errors")
		})
	}
}

func TestServerMessageSerialization(t *testing.T) {
	t.Run("newMessage event", func(t *testing.T) {
		bytes, err := json.Marshal(roomMessage("lobby", "A", "hi"))
		assert.NoError(t, err, "expected no error during serialization")

		var decoded map[string]any
		assert.NoError(t, json.Unmarshal(bytes, &decoded), "expected valid JSON")
		assert.Contains(t, decoded, "newMessage", "expected the newMessage event key")
		assert.NotContains(t, decoded, "errorMessage", "expected no errorMessage key")
		assert.NotContains(t, decoded, "notification", "expected no notification key")

		payload := decoded["newMessage"].(map[string]any)
		assert.Equal(t, "[ROOM: lobby] hi", payload["text"], "expected the room-tagged text on the wire")
	})

	t.Run("notification event", func(t *testing.T) {
		bytes, err := json.Marshal(activityNotification())
		assert.NoError(t, err, "expected no error during serialization")

		var decoded map[string]any
		assert.NoError(t, json.Unmarshal(bytes, &decoded), "expected valid JSON")
		assert.Equal(t, "New activity in the global chat!", decoded["notification"], "expected the notification string on the wire")
		assert.NotContains(t, decoded, "newMessage", "expected no newMessage key")
	})

	t.Run("errorMessage event", func(t *testing.T) {
		bytes, err := json.Marshal(errUserNotFound())
		assert.NoError(t, err, "expected no error during serialization")

		var decoded map[string]any
		assert.NoError(t, json.Unmarshal(bytes, &decoded), "expected valid JSON")
		payload := decoded["errorMessage"].(map[string]any)
		assert.Equal(t, "User not found!", payload["message"], "expected the error text on the wire")
	})
}

func TestClientMessageDeserialization(t *testing.T) {
	t.Run("joinRoom", func(t *testing.T) {
		var msg ClientMessage
		err := json.Unmarshal([]byte(`{"joinRoom":{"roomName":"lobby"}}`), &msg)
		assert.NoError(t, err, "expected no error parsing the frame")
		assert.NotNil(t, msg.Join, "expected the joinRoom event to be set")
		assert.Equal(t, "lobby", msg.Join.RoomName, "expected the room name")
		assert.Nil(t, msg.Room, "expected no sendToRoom event")
		assert.Nil(t, msg.Direct, "expected no sendMessage event")
	})

	t.Run("sendToRoom", func(t *testing.T) {
		var msg ClientMessage
		err := json.Unmarshal([]byte(`{"sendToRoom":{"roomName":"lobby","senderName":"A","text":"hi"}}`), &msg)
		assert.NoError(t, err, "expected no error parsing the frame")
		assert.NotNil(t, msg.Room, "expected the sendToRoom event to be set")
		assert.Equal(t, "A", msg.Room.SenderName, "expected the sender name")
	})

	t.Run("sendMessage with names", func(t *testing.T) {
		var msg ClientMessage
		err := json.Unmarshal([]byte(`{"sendMessage":{"senderName":"alice","receiverName":"bob","text":"hi"}}`), &msg)
		assert.NoError(t, err, "expected no error parsing the frame")
		assert.NotNil(t, msg.Direct, "expected the sendMessage event to be set")
		assert.Equal(t, "alice", msg.Direct.SenderName, "expected the sender key")
		assert.Equal(t, "bob", msg.Direct.ReceiverName, "expected the receiver key")
	})

	t.Run("sendMessage with ids", func(t *testing.T) {
		var msg ClientMessage
		err := json.Unmarshal([]byte(`{"sendMessage":{"senderId":1,"receiverId":2,"text":"hi"}}`), &msg)
		assert.NoError(t, err, "expected no error parsing the frame")
		assert.Equal(t, 1, msg.Direct.SenderId, "expected the sender id")
		assert.Equal(t, 2, msg.Direct.ReceiverId, "expected the receiver id")
	})
}
