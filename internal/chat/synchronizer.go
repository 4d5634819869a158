/*
Package chat keeps the local view of the chat session in step with the server.

A Synchronizer owns the room list, the active room, the visible messages of
that room, the compose buffer and at most one in-flight send. It is a value
in the bubbletea style: every transition returns the next Synchronizer and
an optional tea.Cmd that performs the network call and reports back through
Update. History loads are tagged with the room and a sequence number so
results for a room the user already left are dropped.
*/
package chat

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/naveenspark/parley/internal/identity"
	"github.com/naveenspark/parley/internal/logx"
	"github.com/naveenspark/parley/pkg/client"
	"github.com/naveenspark/parley/pkg/domain"
)

// DefaultHistoryLimit is how many messages a room load asks for when none is configured.
const DefaultHistoryLimit = 50

// PendingIDPrefix marks ids assigned to optimistic messages.
const PendingIDPrefix = "local-"

// unsentPreviewLen caps how much of a dropped draft the failure notice repeats.
const unsentPreviewLen = 40

type roomsLoadedMsg struct {
	rooms []domain.Room
	err   error
}

type messagesLoadedMsg struct {
	roomID   string
	seq      uint64
	messages []domain.Message
	err      error
}

type sendResultMsg struct {
	localID string
	roomID  string
	content string
	message *domain.Message
	err     error
}

type identityLoadedMsg struct {
	caller      domain.Caller
	displayName string
	err         error
}

// Synchronizer is the chat session state. The zero value is not usable; call New.
type Synchronizer struct {
	svc          Service
	session      *identity.Session
	events       EventSource
	historyLimit int
	now          func() time.Time
	newID        func() string

	caller        domain.Caller
	displayName   string
	identityReady bool

	rooms        []domain.Room
	roomsLoaded  bool
	activeRoomID string

	messages []domain.Message
	loading  bool
	loadSeq  uint64

	pendingID string
	compose   string
	notice    string
	lastErr   error
}

// New returns a Synchronizer showing the global room. A nil session gets an
// in-memory one. historyLimit <= 0 uses DefaultHistoryLimit.
func New(svc Service, session *identity.Session, historyLimit int) Synchronizer {
	if session == nil {
		session = identity.NewSession(nil)
	}
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	s := Synchronizer{
		svc:          svc,
		session:      session,
		historyLimit: historyLimit,
		now:          time.Now,
		newID:        func() string { return PendingIDPrefix + uuid.NewString() },
		displayName:  domain.DefaultDisplayName,
		activeRoomID: domain.GlobalRoomID,
		loading:      true,
		loadSeq:      1,
	}
	s.rooms = EnsureGlobal(nil, s.now())
	return s
}

// WithEvents attaches a live event source. Init starts listening on it.
func (s Synchronizer) WithEvents(src EventSource) Synchronizer {
	s.events = src
	return s
}

// Init loads the room list, the caller's identity and the global room history.
func (s Synchronizer) Init() tea.Cmd {
	cmds := []tea.Cmd{
		s.LoadRooms(),
		s.loadIdentity(),
		s.loadMessages(s.activeRoomID, s.loadSeq),
	}
	if s.events != nil {
		cmds = append(cmds, Listen(s.events))
	}
	return tea.Batch(cmds...)
}

// Update applies the result of a command issued by this Synchronizer.
// Messages it does not own are ignored.
func (s Synchronizer) Update(msg tea.Msg) (Synchronizer, tea.Cmd) {
	switch msg := msg.(type) {
	case roomsLoadedMsg:
		return s.applyRooms(msg), nil

	case messagesLoadedMsg:
		return s.applyHistory(msg), nil

	case sendResultMsg:
		return s.applySendResult(msg), nil

	case identityLoadedMsg:
		return s.applyIdentity(msg), nil

	case roomActionMsg:
		return s.applyRoomAction(msg)

	case profileUpdatedMsg:
		return s.applyProfile(msg), nil

	case streamEventMsg:
		return s.applyStreamEvent(msg)
	}
	return s, nil
}

// LoadRooms fetches the caller's rooms.
func (s Synchronizer) LoadRooms() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		rooms, err := svc.ListRooms(context.Background())
		return roomsLoadedMsg{rooms: rooms, err: err}
	}
}

func (s Synchronizer) applyRooms(msg roomsLoadedMsg) Synchronizer {
	if msg.err != nil {
		logx.Error(msg.err, "list rooms failed")
		s.setNotice("could not load rooms: "+client.UserMessage(msg.err), msg.err)
		return s
	}
	s.rooms = carryUnread(EnsureGlobal(msg.rooms, s.now()), s.rooms)
	s.roomsLoaded = true
	return s
}

// SelectRoom makes roomID active. The visible list is emptied and a fresh
// history load is issued; results of earlier loads are dropped on arrival.
func (s Synchronizer) SelectRoom(roomID string) (Synchronizer, tea.Cmd) {
	s.activeRoomID = roomID
	s.rooms = setUnread(s.rooms, roomID, func(int) int { return 0 })
	s.messages = nil
	s.loading = true
	s.loadSeq++
	s.notice = ""
	logx.Debug("room selected", "room_id", roomID, "seq", s.loadSeq)
	return s, s.loadMessages(roomID, s.loadSeq)
}

// Refresh reloads the active room's history.
func (s Synchronizer) Refresh() (Synchronizer, tea.Cmd) {
	s.loading = true
	s.loadSeq++
	return s, s.loadMessages(s.activeRoomID, s.loadSeq)
}

func (s Synchronizer) loadMessages(roomID string, seq uint64) tea.Cmd {
	svc := s.svc
	limit := s.historyLimit
	return func() tea.Msg {
		msgs, err := svc.GetRoomMessages(context.Background(), roomID, limit)
		return messagesLoadedMsg{roomID: roomID, seq: seq, messages: msgs, err: err}
	}
}

func (s Synchronizer) applyHistory(msg messagesLoadedMsg) Synchronizer {
	if msg.roomID != s.activeRoomID || msg.seq != s.loadSeq {
		logx.Debug("discarding stale history", "room_id", msg.roomID, "seq", msg.seq, "active", s.activeRoomID)
		return s
	}
	s.loading = false
	if msg.err != nil {
		logx.Error(msg.err, "load messages failed", "room_id", msg.roomID)
		s.setNotice("could not load messages: "+client.UserMessage(msg.err), msg.err)
		return s
	}
	fetched := make([]domain.Message, len(msg.messages))
	for i, m := range msg.messages {
		if m.RoomID == "" {
			m.RoomID = msg.roomID
		}
		fetched[i] = m
	}
	s.messages = mergeHistory(fetched, s.messages)
	return s
}

// Submit sends content to the active room. On success the optimistic copy is
// appended at once, the compose buffer is cleared and the send is issued.
// A rejected submit only sets the notice.
func (s Synchronizer) Submit(content string) (Synchronizer, tea.Cmd) {
	body := strings.TrimSpace(content)
	if err := s.checkSubmit(body); err != nil {
		s.setNotice(err.Error(), err)
		return s, nil
	}

	roomID := s.activeRoomID
	username := s.IdentityFor(roomID)
	pending := domain.Message{
		ID:        s.newID(),
		UserID:    s.caller.ID,
		Username:  username,
		Content:   body,
		Timestamp: s.now(),
		RoomID:    roomID,
		State:     domain.MessagePending,
	}
	anon := ""
	if roomID == domain.GlobalRoomID {
		anon = username
	}

	s.messages = appendMessage(s.messages, pending)
	s.pendingID = pending.ID
	s.compose = ""
	s.notice = ""
	s.lastErr = nil
	return s, s.send(pending, anon)
}

func (s Synchronizer) checkSubmit(body string) error {
	switch {
	case body == "":
		return ErrEmptyMessage
	case utf8.RuneCountInString(body) > domain.MaxMessageLen:
		return ErrMessageTooLong
	case s.pendingID != "":
		return ErrSendInFlight
	case s.activeRoomID != domain.GlobalRoomID && !s.identityReady:
		return ErrNoIdentity
	}
	return nil
}

func (s Synchronizer) send(pending domain.Message, anon string) tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		sent, err := svc.SendRoomMessage(context.Background(), pending.RoomID, pending.Content, anon)
		return sendResultMsg{
			localID: pending.ID,
			roomID:  pending.RoomID,
			content: pending.Content,
			message: sent,
			err:     err,
		}
	}
}

func (s Synchronizer) applySendResult(msg sendResultMsg) Synchronizer {
	if msg.localID != s.pendingID {
		return s
	}
	s.pendingID = ""

	if msg.err != nil {
		logx.Error(msg.err, "send message failed", "room_id", msg.roomID)
		s.messages = removeMessage(s.messages, msg.localID)
		notice := "send failed: " + client.UserMessage(msg.err)
		if s.compose == "" {
			s.compose = msg.content
		} else {
			notice += fmt.Sprintf(" (unsent: %q)", truncateRunes(msg.content, unsentPreviewLen))
		}
		s.setNotice(notice, msg.err)
		return s
	}

	if msg.message == nil {
		s.messages = confirmInPlace(s.messages, msg.localID)
		return s
	}
	confirmed := *msg.message
	if confirmed.RoomID == "" {
		confirmed.RoomID = msg.roomID
	}
	if indexOfMessage(s.messages, msg.localID) < 0 {
		// A reload of the same room replaced the list before the send committed.
		if msg.roomID == s.activeRoomID && indexOfMessage(s.messages, confirmed.ID) < 0 {
			confirmed.State = domain.MessageConfirmed
			s.messages = appendMessage(s.messages, confirmed)
		}
		return s
	}
	s.messages = reconcile(s.messages, msg.localID, confirmed)
	return s
}

func confirmInPlace(msgs []domain.Message, id string) []domain.Message {
	idx := indexOfMessage(msgs, id)
	if idx < 0 {
		return msgs
	}
	out := slices.Clone(msgs)
	out[idx].State = domain.MessageConfirmed
	return out
}

func (s Synchronizer) loadIdentity() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		ctx := context.Background()
		me, err := svc.GetMe(ctx)
		if err != nil {
			return identityLoadedMsg{err: err}
		}
		return identityLoadedMsg{caller: *me, displayName: identity.ResolveChatDisplayName(ctx, svc, *me)}
	}
}

func (s Synchronizer) applyIdentity(msg identityLoadedMsg) Synchronizer {
	if msg.err != nil {
		logx.Warn("caller identity unavailable", "error", msg.err.Error())
		if client.IsStatus(msg.err, http.StatusUnauthorized) {
			s.setNotice("not signed in: private rooms are unavailable", msg.err)
		}
		return s
	}
	s.caller = msg.caller
	s.displayName = msg.displayName
	s.identityReady = true
	return s
}

// IdentityFor returns the name the user sends under in roomID.
func (s Synchronizer) IdentityFor(roomID string) string {
	if roomID == domain.GlobalRoomID {
		return s.session.Username()
	}
	return s.displayName
}

// IsOwn reports whether m was sent by the local user.
func (s Synchronizer) IsOwn(m domain.Message) bool {
	if m.RoomID == "" {
		m.RoomID = s.activeRoomID
	}
	sessionName := ""
	if m.RoomID == domain.GlobalRoomID {
		sessionName = s.session.Username()
	}
	return IsOwnMessage(m, sessionName, s.caller.ID)
}

// SetCompose replaces the compose buffer.
func (s Synchronizer) SetCompose(text string) Synchronizer {
	s.compose = text
	return s
}

// ClearNotice drops the status notice.
func (s Synchronizer) ClearNotice() Synchronizer {
	s.notice = ""
	s.lastErr = nil
	return s
}

func (s *Synchronizer) setNotice(text string, err error) {
	s.notice = text
	s.lastErr = err
}

// Rooms returns the room list, global room first.
func (s Synchronizer) Rooms() []domain.Room { return slices.Clone(s.rooms) }

// RoomsLoaded reports whether the server room list has arrived.
func (s Synchronizer) RoomsLoaded() bool { return s.roomsLoaded }

// ActiveRoomID returns the id of the room being shown.
func (s Synchronizer) ActiveRoomID() string { return s.activeRoomID }

// ActiveRoom returns the active room if it is in the room list.
func (s Synchronizer) ActiveRoom() (domain.Room, bool) { return findRoom(s.rooms, s.activeRoomID) }

// Room looks up a room by id.
func (s Synchronizer) Room(id string) (domain.Room, bool) { return findRoom(s.rooms, id) }

// Messages returns the active room's visible messages in display order.
func (s Synchronizer) Messages() []domain.Message { return slices.Clone(s.messages) }

// Loading reports whether the active room's history is still being fetched.
func (s Synchronizer) Loading() bool { return s.loading }

// Sending reports whether a send is in flight.
func (s Synchronizer) Sending() bool { return s.pendingID != "" }

func (s Synchronizer) Compose() string { return s.compose }
func (s Synchronizer) Notice() string  { return s.notice }

// Err returns the error behind the current notice, if any.
func (s Synchronizer) Err() error { return s.lastErr }

// Caller returns the signed-in caller; the zero value until identity loads.
func (s Synchronizer) Caller() domain.Caller { return s.caller }

// IdentityReady reports whether the caller and display name have loaded.
func (s Synchronizer) IdentityReady() bool { return s.identityReady }

// DisplayName is the name used in private rooms.
func (s Synchronizer) DisplayName() string { return s.displayName }

// SessionUsername is the anonymous name used in the global room.
func (s Synchronizer) SessionUsername() string { return s.session.Username() }
