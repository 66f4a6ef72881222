package api

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/AbdullahShariq/Chat-App/internal/database"
	"github.com/AbdullahShariq/Chat-App/internal/server"
	"github.com/AbdullahShariq/Chat-App/internal/types"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *ChatApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

func (s *ChatApp) listUsers(w http.ResponseWriter, r *http.Request) {
	dbUsers, err := s.db.ListUsers()
	if err != nil {
		s.log.Println("list users:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	users := make([]types.User, 0, len(dbUsers))
	for _, u := range dbUsers {
		users = append(users, types.User{
			Id:        u.Id,
			Username:  u.Username,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		})
	}

	s.writeJson(w, http.StatusOK, users)
}

func (s *ChatApp) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	pwdHash, err := hashPassword(req.Password)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	newUser, err := s.db.CreateUser(database.CreateUserParams{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwdHash,
	})
	if err != nil {
		var errResp *ApiError
		if database.IsUniqueViolation(err) {
			errResp = NewConflictError()
		} else {
			s.log.Println("create user:", err)
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, types.User{
		Id:        newUser.Id,
		Username:  newUser.Username,
		Email:     newUser.Email,
		CreatedAt: newUser.CreatedAt,
	})
}

func (s *ChatApp) listMessages(w http.ResponseWriter, r *http.Request) {
	dbMessages, err := s.db.ListMessages()
	if err != nil {
		s.log.Println("list messages:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	messages := make([]types.Message, 0, len(dbMessages))
	for _, msg := range dbMessages {
		receiver := types.User{
			Id:       msg.Receiver.Id,
			Username: msg.Receiver.Username,
			Email:    msg.Receiver.Email,
		}

		messages = append(messages, types.Message{
			Id:         msg.Id,
			Text:       msg.Text,
			SenderId:   msg.SenderId,
			ReceiverId: msg.ReceiverId,
			Sender: types.User{
				Id:       msg.Sender.Id,
				Username: msg.Sender.Username,
				Email:    msg.Sender.Email,
			},
			Receiver:  &receiver,
			CreatedAt: msg.CreatedAt,
		})
	}

	s.writeJson(w, http.StatusOK, messages)
}

func (s *ChatApp) serveWs(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			return slices.Contains(s.allowedOrigins, "*") ||
				slices.Contains(s.allowedOrigins, origin)
		},
	}

	connId, err := s.generateConnId()
	if err != nil {
		s.log.Println("generate connection id:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Println("error upgrading connection:", err)
		return
	}

	client := server.NewClient(connId, conn, s.cs, s.log)

	s.cs.RegisterClient(client)
	go client.Write()
	go client.Read()
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
