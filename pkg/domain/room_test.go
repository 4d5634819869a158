package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewGlobalRoom(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := NewGlobalRoom(now)

	require.True(t, r.IsGlobal())
	require.Equal(t, RoomTypeGlobal, r.Type)
	require.Equal(t, "Global Chat", r.Name)
	require.Equal(t, "GLOBAL", r.Code)
	require.Equal(t, 1000, r.MaxMembers)
	require.Equal(t, SystemOwner, r.CreatedBy)
	require.Empty(t, r.Members)
	require.Equal(t, now, r.CreatedAt)
}

func TestRoomIsFull(t *testing.T) {
	r := Room{Type: RoomTypePrivate, MaxMembers: PrivateMaxMembers, Members: []string{"a", "b", "c", "d"}}
	require.False(t, r.IsFull())

	r.Members = append(r.Members, "e")
	require.True(t, r.IsFull())
	require.True(t, r.HasMember("e"))
	require.False(t, r.HasMember("z"))
}

func TestNormalizeRoomCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc123", "ABC123"},
		{"  xY9 ", "XY9"},
		{"", ""},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, NormalizeRoomCode(tc.in), "input %q", tc.in)
	}
}

func TestMessageIsPending(t *testing.T) {
	require.True(t, Message{State: MessagePending}.IsPending())
	require.False(t, Message{}.IsPending())
}
