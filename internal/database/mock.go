package database

import (
	"github.com/stretchr/testify/mock"
)

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) ListUsers() ([]User, error) {
	args := m.Called()
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockChatRepository) CreateUser(params CreateUserParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockChatRepository) GetUserById(id int) (User, error) {
	args := m.Called(id)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockChatRepository) GetUserByUsername(username string) (User, error) {
	args := m.Called(username)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockChatRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockChatRepository) ListMessages() ([]Message, error) {
	args := m.Called()
	return args.Get(0).([]Message), args.Error(1)
}
