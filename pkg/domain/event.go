package domain

// RoomEventKind names a room lifecycle transition.
type RoomEventKind string

const (
	RoomCreated RoomEventKind = "created"
	RoomJoined  RoomEventKind = "joined"
	RoomUpdated RoomEventKind = "updated"
	RoomLeft    RoomEventKind = "left"
	RoomDeleted RoomEventKind = "deleted"
)

// RoomEvent is a room lifecycle notification from a create/join/update/leave/delete flow.
// Left and deleted events only need Room.ID.
type RoomEvent struct {
	Kind RoomEventKind
	Room Room
}

// StreamEventType is the type tag of a live server push.
type StreamEventType string

const (
	StreamMessage     StreamEventType = "message"
	StreamRoomUpdated StreamEventType = "room_updated"
	StreamRoomDeleted StreamEventType = "room_deleted"
)

// StreamEvent is a single frame from the live event stream.
type StreamEvent struct {
	Type    StreamEventType `json:"type"`
	Message *Message        `json:"message,omitempty"`
	Room    *Room           `json:"room,omitempty"`
	RoomID  string          `json:"room_id,omitempty"`
}
