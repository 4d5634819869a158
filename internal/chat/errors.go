package chat

import "errors"

// Validation errors. They are reported before any network call and never change room or message state.
var (
	ErrEmptyMessage       = errors.New("message is empty")
	ErrMessageTooLong     = errors.New("message is too long (max 500 characters)")
	ErrSendInFlight       = errors.New("still sending the previous message")
	ErrNoIdentity         = errors.New("identity not loaded yet")
	ErrEmptyRoomName      = errors.New("room name is required")
	ErrRoomNameTooLong    = errors.New("room name is too long (max 50 characters)")
	ErrEmptyRoomCode      = errors.New("room code is required")
	ErrInvalidRoomCode    = errors.New("room code must be letters and digits (max 12)")
	ErrEmptyDisplayName   = errors.New("display name is required")
	ErrDisplayNameTooLong = errors.New("display name is too long (max 32 characters)")
	ErrGlobalRoom         = errors.New("the global room cannot be changed")
	ErrUnknownRoom        = errors.New("unknown room")
)
