package database

type ChatRepository interface {
	ListUsers() ([]User, error)
	CreateUser(params CreateUserParams) (User, error)
	GetUserById(id int) (User, error)
	GetUserByUsername(username string) (User, error)
	CreateMessage(params CreateMessageParams) (Message, error)
	ListMessages() ([]Message, error)
}
