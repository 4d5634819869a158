package chat

import (
	"context"
	"errors"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/parley/internal/logx"
	"github.com/naveenspark/parley/pkg/client"
	"github.com/naveenspark/parley/pkg/domain"
)

type streamEventMsg struct {
	event domain.StreamEvent
	err   error
}

// Listen waits for the next live event from src.
func Listen(src EventSource) tea.Cmd {
	return func() tea.Msg {
		ev, err := src.Next(context.Background())
		return streamEventMsg{event: ev, err: err}
	}
}

func (s Synchronizer) applyStreamEvent(msg streamEventMsg) (Synchronizer, tea.Cmd) {
	if msg.err != nil {
		if !errors.Is(msg.err, client.ErrStreamClosed) {
			logx.Error(msg.err, "live updates stopped")
			s.setNotice("live updates unavailable: "+client.UserMessage(msg.err), msg.err)
		}
		return s, nil
	}

	var next tea.Cmd
	if s.events != nil {
		next = Listen(s.events)
	}

	ev := msg.event
	switch ev.Type {
	case domain.StreamMessage:
		if ev.Message != nil {
			s = s.applyIncoming(*ev.Message)
		}
		return s, next

	case domain.StreamRoomUpdated:
		if ev.Room == nil {
			return s, next
		}
		var cmd tea.Cmd
		s, cmd = s.ApplyRoomEvent(domain.RoomEvent{Kind: domain.RoomUpdated, Room: *ev.Room})
		return s, tea.Batch(cmd, next)

	case domain.StreamRoomDeleted:
		id := ev.RoomID
		if id == "" && ev.Room != nil {
			id = ev.Room.ID
		}
		if id == "" {
			return s, next
		}
		var cmd tea.Cmd
		s, cmd = s.ApplyRoomEvent(domain.RoomEvent{Kind: domain.RoomDeleted, Room: domain.Room{ID: id}})
		return s, tea.Batch(cmd, next)
	}

	logx.Debug("ignoring stream event", "type", string(ev.Type))
	return s, next
}

// applyIncoming adds a live message. Messages for other rooms only bump that
// room's unread count. A message matching the in-flight send confirms it early.
func (s Synchronizer) applyIncoming(m domain.Message) Synchronizer {
	m.State = domain.MessageConfirmed
	if m.RoomID != s.activeRoomID {
		if !s.IsOwn(m) {
			s.rooms = setUnread(s.rooms, m.RoomID, func(n int) int { return n + 1 })
		}
		return s
	}
	if indexOfMessage(s.messages, m.ID) >= 0 {
		return s
	}
	if s.pendingID != "" && s.IsOwn(m) {
		if idx := indexOfMessage(s.messages, s.pendingID); idx >= 0 && s.messages[idx].Content == m.Content {
			out := slices.Clone(s.messages)
			out[idx] = m
			s.messages = out
			return s
		}
	}
	s.messages = appendMessage(s.messages, m)
	return s
}
