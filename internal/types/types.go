package types

import (
	"time"
)

type User struct {
	Id        int       `json:"id,omitempty"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type Message struct {
	Id         int       `json:"id,omitempty"`
	Text       string    `json:"text"`
	SenderId   int       `json:"sender_id,omitempty"`
	ReceiverId int       `json:"receiver_id,omitempty"`
	Sender     User      `json:"sender"`
	Receiver   *User     `json:"receiver,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
