package chat

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/naveenspark/parley/internal/logx"
	"github.com/naveenspark/parley/pkg/client"
	"github.com/naveenspark/parley/pkg/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type roomActionMsg struct {
	action string
	event  domain.RoomEvent
	err    error
}

type profileUpdatedMsg struct {
	profile *domain.ChatProfile
	err     error
}

// ApplyRoomEvent folds a room lifecycle event into the room list.
// Created and joined rooms are added and become active. Updated rooms are
// replaced in place. Left and deleted rooms are removed, and if one was
// active the global room takes over. The global room is never removed.
// Applying the same event twice leaves the same state.
func (s Synchronizer) ApplyRoomEvent(ev domain.RoomEvent) (Synchronizer, tea.Cmd) {
	id := ev.Room.ID
	switch ev.Kind {
	case domain.RoomCreated, domain.RoomJoined:
		if id == "" {
			return s, nil
		}
		s.rooms = addRoom(s.rooms, ev.Room)
		if s.activeRoomID == id {
			return s, nil
		}
		return s.SelectRoom(id)

	case domain.RoomUpdated:
		s.rooms = replaceRoom(s.rooms, ev.Room)
		if id == domain.GlobalRoomID {
			s.rooms = EnsureGlobal(s.rooms, s.now())
		}
		return s, nil

	case domain.RoomLeft, domain.RoomDeleted:
		if id == domain.GlobalRoomID {
			logx.Warn("ignoring removal of global room", "kind", string(ev.Kind))
			return s, nil
		}
		s.rooms = removeRoom(s.rooms, id)
		if s.activeRoomID == id {
			return s.SelectRoom(domain.GlobalRoomID)
		}
		return s, nil
	}
	return s, nil
}

// CreateRoom validates and creates a private room. A blank code lets the server pick one.
func (s Synchronizer) CreateRoom(name, code string) (Synchronizer, tea.Cmd) {
	req := client.CreateRoomRequest{
		Name: strings.TrimSpace(name),
		Code: domain.NormalizeRoomCode(code),
	}
	if err := validateRequest(req); err != nil {
		s.setNotice(err.Error(), err)
		return s, nil
	}
	svc := s.svc
	return s, func() tea.Msg {
		room, err := svc.CreateRoom(context.Background(), req)
		return roomResult("create room", domain.RoomCreated, room, err)
	}
}

// JoinRoom validates code and joins the room it names.
func (s Synchronizer) JoinRoom(code string) (Synchronizer, tea.Cmd) {
	req := client.JoinRoomRequest{Code: domain.NormalizeRoomCode(code)}
	if err := validateRequest(req); err != nil {
		s.setNotice(err.Error(), err)
		return s, nil
	}
	// Already a member: open the listed room instead of joining again.
	listed, ok := lo.Find(s.rooms, func(r domain.Room) bool { return r.Code == req.Code })
	if ok && s.caller.ID != "" && listed.HasMember(s.caller.ID) {
		return s.SelectRoom(listed.ID)
	}
	svc := s.svc
	return s, func() tea.Msg {
		room, err := svc.JoinRoom(context.Background(), req.Code)
		return roomResult("join room", domain.RoomJoined, room, err)
	}
}

// RenameRoom validates and renames a private room.
func (s Synchronizer) RenameRoom(id, name string) (Synchronizer, tea.Cmd) {
	if err := s.checkPrivateRoom(id); err != nil {
		s.setNotice(err.Error(), err)
		return s, nil
	}
	req := client.UpdateRoomRequest{Name: strings.TrimSpace(name)}
	if err := validateRequest(req); err != nil {
		s.setNotice(err.Error(), err)
		return s, nil
	}
	svc := s.svc
	return s, func() tea.Msg {
		room, err := svc.UpdateRoom(context.Background(), id, req)
		return roomResult("rename room", domain.RoomUpdated, room, err)
	}
}

// LeaveRoom leaves a private room.
func (s Synchronizer) LeaveRoom(id string) (Synchronizer, tea.Cmd) {
	room, err := s.privateRoom(id)
	if err != nil {
		s.setNotice(err.Error(), err)
		return s, nil
	}
	svc := s.svc
	return s, func() tea.Msg {
		err := svc.LeaveRoom(context.Background(), id)
		return roomResult("leave room", domain.RoomLeft, &room, err)
	}
}

// DeleteRoom deletes a private room.
func (s Synchronizer) DeleteRoom(id string) (Synchronizer, tea.Cmd) {
	room, err := s.privateRoom(id)
	if err != nil {
		s.setNotice(err.Error(), err)
		return s, nil
	}
	svc := s.svc
	return s, func() tea.Msg {
		err := svc.DeleteRoom(context.Background(), id)
		return roomResult("delete room", domain.RoomDeleted, &room, err)
	}
}

// SetDisplayName changes the name used in private rooms.
func (s Synchronizer) SetDisplayName(name string) (Synchronizer, tea.Cmd) {
	req := client.UpdateProfileRequest{ChatDisplayName: strings.TrimSpace(name)}
	if err := validateRequest(req); err != nil {
		s.setNotice(err.Error(), err)
		return s, nil
	}
	svc := s.svc
	return s, func() tea.Msg {
		p, err := svc.UpdateChatProfile(context.Background(), req.ChatDisplayName)
		return profileUpdatedMsg{profile: p, err: err}
	}
}

func roomResult(action string, kind domain.RoomEventKind, room *domain.Room, err error) roomActionMsg {
	if err != nil {
		return roomActionMsg{action: action, err: err}
	}
	if room == nil {
		return roomActionMsg{action: action, err: errors.New("empty response")}
	}
	return roomActionMsg{action: action, event: domain.RoomEvent{Kind: kind, Room: *room}}
}

func (s Synchronizer) applyRoomAction(msg roomActionMsg) (Synchronizer, tea.Cmd) {
	if msg.err != nil {
		logx.Error(msg.err, msg.action+" failed")
		s.setNotice(msg.action+" failed: "+client.UserMessage(msg.err), msg.err)
		return s, nil
	}
	logx.Info(msg.action, "room_id", msg.event.Room.ID)
	s.notice = ""
	s.lastErr = nil
	return s.ApplyRoomEvent(msg.event)
}

func (s Synchronizer) applyProfile(msg profileUpdatedMsg) Synchronizer {
	if msg.err != nil {
		logx.Error(msg.err, "update chat profile failed")
		s.setNotice("update name failed: "+client.UserMessage(msg.err), msg.err)
		return s
	}
	if msg.profile != nil && strings.TrimSpace(msg.profile.ChatDisplayName) != "" {
		s.displayName = strings.TrimSpace(msg.profile.ChatDisplayName)
	}
	s.notice = "display name set to " + s.displayName
	s.lastErr = nil
	return s
}

func (s Synchronizer) checkPrivateRoom(id string) error {
	_, err := s.privateRoom(id)
	return err
}

func (s Synchronizer) privateRoom(id string) (domain.Room, error) {
	if id == domain.GlobalRoomID {
		return domain.Room{}, ErrGlobalRoom
	}
	room, ok := findRoom(s.rooms, id)
	if !ok {
		return domain.Room{}, ErrUnknownRoom
	}
	if room.IsGlobal() {
		return domain.Room{}, ErrGlobalRoom
	}
	return room, nil
}

// validateRequest runs struct validation and maps the first failure to a package error.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "required" {
			return ErrEmptyRoomName
		}
		return ErrRoomNameTooLong
	case "Code":
		if fe.Tag() == "required" {
			return ErrEmptyRoomCode
		}
		return ErrInvalidRoomCode
	case "ChatDisplayName":
		if fe.Tag() == "required" {
			return ErrEmptyDisplayName
		}
		return ErrDisplayNameTooLong
	}
	return err
}
