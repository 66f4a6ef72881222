package database

import "time"

type User struct {
	Id           int
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Message struct {
	Id         int
	Text       string
	SenderId   int
	ReceiverId int
	Sender     User
	Receiver   User
	CreatedAt  time.Time
}

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
}

type CreateMessageParams struct {
	Text       string
	SenderId   int
	ReceiverId int
}
