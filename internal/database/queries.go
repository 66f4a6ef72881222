package database

import (
	"time"
)

func (db *PgChatRepository) ListUsers() ([]User, error) {
	rows, err := db.conn.Query(
		"SELECT id, username, email, created_at FROM users ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users = make([]User, 0)
	for rows.Next() {
		var u User
		if err = rows.Scan(&u.Id, &u.Username, &u.Email, &u.CreatedAt); err != nil {
			break
		}

		users = append(users, u)
	}

	return users, err
}

func (db *PgChatRepository) CreateUser(params CreateUserParams) (User, error) {
	res := db.conn.QueryRow(
		"INSERT INTO users (username, email, password_hash, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, username, email, created_at",
		params.Username,
		params.Email,
		params.PasswordHash,
		time.Now().UTC(),
	)

	var u User
	err := res.Scan(
		&u.Id,
		&u.Username,
		&u.Email,
		&u.CreatedAt,
	)

	return u, err
}

func (db *PgChatRepository) GetUserById(id int) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, email FROM users WHERE id = $1 LIMIT 1",
		id,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Username,
		&user.Email,
	)

	return user, err
}

func (db *PgChatRepository) GetUserByUsername(username string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, email FROM users WHERE username = $1 LIMIT 1",
		username,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Username,
		&user.Email,
	)

	return user, err
}

func (db *PgChatRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	res := db.conn.QueryRow(
		"INSERT INTO messages (text, sender_id, receiver_id, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, text, sender_id, receiver_id, created_at",
		params.Text,
		params.SenderId,
		params.ReceiverId,
		time.Now().UTC(),
	)

	var msg Message
	err := res.Scan(
		&msg.Id,
		&msg.Text,
		&msg.SenderId,
		&msg.ReceiverId,
		&msg.CreatedAt,
	)
	if err != nil {
		return Message{}, err
	}

	if msg.Sender, err = db.GetUserById(msg.SenderId); err != nil {
		return Message{}, err
	}
	if msg.Receiver, err = db.GetUserById(msg.ReceiverId); err != nil {
		return Message{}, err
	}

	return msg, nil
}

func (db *PgChatRepository) ListMessages() ([]Message, error) {
	rows, err := db.conn.Query(
		"SELECT m.id, m.text, m.sender_id, m.receiver_id, m.created_at, " +
			"s.id, s.username, s.email, r.id, r.username, r.email " +
			"FROM messages m " +
			"JOIN users s ON m.sender_id = s.id " +
			"JOIN users r ON m.receiver_id = r.id " +
			"ORDER BY m.id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages = make([]Message, 0)
	for rows.Next() {
		var msg Message
		if err = rows.Scan(
			&msg.Id,
			&msg.Text,
			&msg.SenderId,
			&msg.ReceiverId,
			&msg.CreatedAt,
			&msg.Sender.Id,
			&msg.Sender.Username,
			&msg.Sender.Email,
			&msg.Receiver.Id,
			&msg.Receiver.Username,
			&msg.Receiver.Email,
		); err != nil {
			break
		}

		messages = append(messages, msg)
	}

	return messages, err
}
