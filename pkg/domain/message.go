package domain

import "time"

// MaxMessageLen is the maximum number of runes accepted for a chat message.
const MaxMessageLen = 500

// MessageState tags whether a message is a local optimistic entry or server-confirmed.
type MessageState int

const (
	MessageConfirmed MessageState = iota
	MessagePending
)

// Message is a single chat message in a room.
type Message struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	Content     string       `json:"content"`
	Timestamp   time.Time    `json:"timestamp"`
	RoomID      string       `json:"room_id"`
	IsModerated bool         `json:"is_moderated"`
	State       MessageState `json:"-"`
}

// IsPending reports whether m is an optimistic entry awaiting confirmation.
func (m Message) IsPending() bool {
	return m.State == MessagePending
}
