package domain

import (
	"strings"
	"time"
)

// RoomType distinguishes the single global room from capacity-bounded private rooms.
type RoomType string

const (
	RoomTypeGlobal  RoomType = "global"
	RoomTypePrivate RoomType = "private"
)

const (
	// GlobalRoomID is the stable id of the always-present global room.
	GlobalRoomID = "global"

	// GlobalRoomCode is the join code shown for the global room.
	GlobalRoomCode = "GLOBAL"

	// GlobalRoomName is the display name of a locally synthesized global room.
	GlobalRoomName = "Global Chat"

	// SystemOwner marks rooms not created by any user.
	SystemOwner = "system"

	GlobalMaxMembers  = 1000
	PrivateMaxMembers = 5
)

// Room is a chat room: the global room or a private, code-joined room.
type Room struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Type        RoomType  `json:"type"`
	Members     []string  `json:"members"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	MaxMembers  int       `json:"max_members"`
	UnreadCount int       `json:"unread_count,omitempty"` // client-side counter
}

// IsGlobal reports whether r is the global room.
func (r Room) IsGlobal() bool {
	return r.ID == GlobalRoomID
}

// IsFull reports whether the room has reached its member capacity.
func (r Room) IsFull() bool {
	return r.MaxMembers > 0 && len(r.Members) >= r.MaxMembers
}

// HasMember reports whether userID is a member of the room.
func (r Room) HasMember(userID string) bool {
	for _, m := range r.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// NewGlobalRoom returns the fallback global room used when the server omits it.
func NewGlobalRoom(now time.Time) Room {
	return Room{
		ID:         GlobalRoomID,
		Name:       GlobalRoomName,
		Code:       GlobalRoomCode,
		Type:       RoomTypeGlobal,
		Members:    []string{},
		CreatedBy:  SystemOwner,
		CreatedAt:  now,
		MaxMembers: GlobalMaxMembers,
	}
}

// NormalizeRoomCode trims and uppercases a join code.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
