package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/mock/gomock"

	"github.com/naveenspark/parley/internal/chat"
	"github.com/naveenspark/parley/internal/chat/mocks"
	"github.com/naveenspark/parley/internal/identity"
	"github.com/naveenspark/parley/pkg/client"
	"github.com/naveenspark/parley/pkg/domain"
)

type memStore map[string]string

func (m memStore) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memStore) Put(key, value string) error {
	m[key] = value
	return nil
}

func (m memStore) Delete(key string) error {
	delete(m, key)
	return nil
}

func newTestApp(t *testing.T) (App, *mocks.MockService) {
	t.Helper()
	svc := mocks.NewMockService(gomock.NewController(t))
	session := identity.NewSession(memStore{identity.SessionUsernameKey: "Anon1234"})
	a := NewApp(chat.New(svc, session, 0), "dev")
	a.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	model, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return model.(App), svc
}

func press(t *testing.T, a App, keys ...string) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var model tea.Model
		model, cmd = a.Update(msg)
		a = model.(App)
	}
	return a, cmd
}

func feed(t *testing.T, a App, cmd tea.Cmd) (App, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	model, next := a.Update(cmd())
	return model.(App), next
}

func withRooms(t *testing.T, a App, svc *mocks.MockService, rooms ...domain.Room) App {
	t.Helper()
	svc.EXPECT().ListRooms(gomock.Any()).Return(rooms, nil)
	a, _ = feed(t, a, a.sync.LoadRooms())
	return a
}

func bookClub() domain.Room {
	return domain.Room{
		ID: "r1", Name: "book club", Code: "BOOKS", Type: domain.RoomTypePrivate,
		Members: []string{"u1", "u2"}, MaxMembers: domain.PrivateMaxMembers,
	}
}

func TestAppTabTogglesFocus(t *testing.T) {
	a, _ := newTestApp(t)
	if a.focus != focusChat {
		t.Fatalf("initial focus = %d, want chat", a.focus)
	}
	a, _ = press(t, a, "tab")
	if a.focus != focusRooms {
		t.Errorf("after tab focus = %d, want rooms", a.focus)
	}
	a, _ = press(t, a, "tab")
	if a.focus != focusChat {
		t.Errorf("after second tab focus = %d, want chat", a.focus)
	}
}

func TestAppTypingEditsCompose(t *testing.T) {
	a, _ := newTestApp(t)

	a, _ = press(t, a, "i", "h", "e", "y", "backspace")

	if a.focus != focusInput {
		t.Fatalf("focus = %d, want input", a.focus)
	}
	if got := a.sync.Compose(); got != "he" {
		t.Errorf("compose = %q, want %q", got, "he")
	}

	a, _ = press(t, a, "esc")
	if a.focus != focusChat {
		t.Errorf("esc should leave input, focus = %d", a.focus)
	}
	if got := a.sync.Compose(); got != "he" {
		t.Errorf("compose should survive esc, got %q", got)
	}
}

func TestAppPasteAppendsAllRunes(t *testing.T) {
	a, _ := newTestApp(t)
	a, _ = press(t, a, "i")

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello there"), Paste: true})
	a = model.(App)

	if got := a.sync.Compose(); got != "hello there" {
		t.Errorf("compose = %q", got)
	}
}

func TestAppEnterOnEmptyComposeIsNoop(t *testing.T) {
	a, _ := newTestApp(t)

	a, cmd := press(t, a, "i", "enter")

	if cmd != nil {
		t.Error("expected no command for empty compose")
	}
	if len(a.sync.Messages()) != 0 {
		t.Error("expected no messages")
	}
}

func TestAppSendShowsPendingThenConfirmed(t *testing.T) {
	a, svc := newTestApp(t)
	svc.EXPECT().SendRoomMessage(gomock.Any(), domain.GlobalRoomID, "hi", "Anon1234").
		Return(&domain.Message{ID: "srv-1", RoomID: domain.GlobalRoomID, Username: "Anon1234", Content: "hi"}, nil)

	a, cmd := press(t, a, "i", "h", "i", "enter")

	msgs := a.sync.Messages()
	if len(msgs) != 1 || !msgs[0].IsPending() {
		t.Fatalf("expected one pending message, got %+v", msgs)
	}
	if a.sync.Compose() != "" {
		t.Errorf("compose not cleared: %q", a.sync.Compose())
	}
	if !strings.Contains(a.View(), "sending") {
		t.Error("view should mark the pending message")
	}

	a, _ = feed(t, a, cmd)

	msgs = a.sync.Messages()
	if len(msgs) != 1 || msgs[0].ID != "srv-1" || msgs[0].IsPending() {
		t.Errorf("expected confirmed srv-1, got %+v", msgs)
	}
}

func TestAppSendFailureRestoresCompose(t *testing.T) {
	a, svc := newTestApp(t)
	svc.EXPECT().SendRoomMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("offline"))

	a, cmd := press(t, a, "i", "y", "o", "enter")
	a, _ = feed(t, a, cmd)

	if got := a.sync.Compose(); got != "yo" {
		t.Errorf("compose = %q, want restored text", got)
	}
	if len(a.sync.Messages()) != 0 {
		t.Error("pending message should be removed")
	}
	if !strings.Contains(a.View(), "send failed") {
		t.Error("view should show the failure notice")
	}
}

func TestAppSelectRoomFromSidebar(t *testing.T) {
	a, svc := newTestApp(t)
	a = withRooms(t, a, svc, bookClub())
	svc.EXPECT().GetRoomMessages(gomock.Any(), "r1", chat.DefaultHistoryLimit).
		Return([]domain.Message{{ID: "m1", RoomID: "r1", UserID: "u2", Username: "bob", Content: "welcome"}}, nil)

	a, _ = press(t, a, "tab", "j")
	if a.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.cursor)
	}
	a, cmd := press(t, a, "enter")
	if a.sync.ActiveRoomID() != "r1" {
		t.Fatalf("active = %q, want r1", a.sync.ActiveRoomID())
	}
	if a.focus != focusChat {
		t.Errorf("focus = %d, want chat after selecting", a.focus)
	}

	a, _ = feed(t, a, cmd)

	view := a.View()
	for _, want := range []string{"book club", "BOOKS", "2/5", "welcome"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppCursorStaysInRange(t *testing.T) {
	a, _ := newTestApp(t)

	a, _ = press(t, a, "tab", "j", "j", "k", "k", "k")

	if a.cursor != 0 {
		t.Errorf("cursor = %d, want 0", a.cursor)
	}
}

func TestAppGlobalRoomActionsRefused(t *testing.T) {
	for _, key := range []string{"r", "L", "D"} {
		t.Run(key, func(t *testing.T) {
			a, _ := newTestApp(t)
			a, _ = press(t, a, key)
			if a.dialogOpen {
				t.Error("dialog should not open for the global room")
			}
			if a.status != chat.ErrGlobalRoom.Error() {
				t.Errorf("status = %q", a.status)
			}
		})
	}
}

func TestAppCreateRoomDialog(t *testing.T) {
	a, svc := newTestApp(t)
	created := bookClub()
	svc.EXPECT().CreateRoom(gomock.Any(), client.CreateRoomRequest{Name: "book club", Code: "BOOKS"}).Return(&created, nil)

	a, _ = press(t, a, "c")
	if !a.dialogOpen || a.dialog.kind != dialogCreate {
		t.Fatal("expected create dialog")
	}
	a, _ = press(t, a, "book club", "tab", "books")
	a, cmd := press(t, a, "enter")
	if a.dialogOpen {
		t.Fatal("dialog should close on submit")
	}

	a, load := feed(t, a, cmd)

	if load == nil {
		t.Error("expected history load for the new room")
	}
	if a.sync.ActiveRoomID() != "r1" {
		t.Errorf("active = %q, want r1", a.sync.ActiveRoomID())
	}
}

func TestAppJoinDialogCancel(t *testing.T) {
	a, _ := newTestApp(t)

	a, _ = press(t, a, "o", "ABC", "esc")

	if a.dialogOpen {
		t.Error("dialog should close on esc")
	}
	if len(a.sync.Rooms()) != 1 {
		t.Error("rooms should be unchanged")
	}
}

func TestAppLeaveRoomConfirm(t *testing.T) {
	a, svc := newTestApp(t)
	a = withRooms(t, a, svc, bookClub())
	svc.EXPECT().GetRoomMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	svc.EXPECT().LeaveRoom(gomock.Any(), "r1").Return(nil)

	a, _ = press(t, a, "tab", "j", "enter")
	a, _ = press(t, a, "L")
	if !a.dialogOpen || a.dialog.kind != dialogLeave {
		t.Fatal("expected leave confirmation")
	}
	a, cmd := press(t, a, "y")
	a, _ = feed(t, a, cmd)

	if a.sync.ActiveRoomID() != domain.GlobalRoomID {
		t.Errorf("active = %q, want global", a.sync.ActiveRoomID())
	}
	if len(a.sync.Rooms()) != 1 {
		t.Errorf("rooms = %d, want 1", len(a.sync.Rooms()))
	}
}

func TestAppCopyRoomCode(t *testing.T) {
	a, svc := newTestApp(t)
	a = withRooms(t, a, svc, bookClub())
	var copied string
	a.copyText = func(s string) error {
		copied = s
		return nil
	}

	a, _ = press(t, a, "y")
	if copied != "" || a.status != "no room code to copy" {
		t.Errorf("global room copy: copied=%q status=%q", copied, a.status)
	}

	a, _ = press(t, a, "tab", "j", "enter", "y")
	if copied != "BOOKS" {
		t.Errorf("copied = %q, want BOOKS", copied)
	}
	if a.status != "copied BOOKS" {
		t.Errorf("status = %q", a.status)
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a, _ := newTestApp(t)

	a, _ = press(t, a, "h")
	if !a.helpOpen {
		t.Fatal("expected help open")
	}
	if !strings.Contains(a.View(), "parley rooms") {
		t.Error("help should list commands")
	}
	a, _ = press(t, a, "esc")
	if a.helpOpen {
		t.Error("esc should close help")
	}
}

func TestAppQuit(t *testing.T) {
	a, _ := newTestApp(t)
	_, cmd := press(t, a, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppViewShowsGlobalRoom(t *testing.T) {
	a, _ := newTestApp(t)

	view := a.View()
	for _, want := range []string{"Global Chat", "anonymous as Anon1234", "loading"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppScrollResetsOnNewMessage(t *testing.T) {
	a, svc := newTestApp(t)
	svc.EXPECT().SendRoomMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	a.room.scroll = 5
	a, _ = press(t, a, "i", "x", "enter")

	if a.room.scroll != 0 {
		t.Errorf("scroll = %d, want 0 after new message", a.room.scroll)
	}
}

func TestAppVersionNotice(t *testing.T) {
	a, _ := newTestApp(t)
	model, _ := a.Update(versionCheckMsg{latest: "v1.2.0"})
	a = model.(App)
	if !strings.Contains(a.View(), "v1.2.0 available") {
		t.Error("expected update notice in header")
	}
}

func TestAppHeaderShowsTotalUnread(t *testing.T) {
	a, svc := newTestApp(t)
	a = withRooms(t, a, svc, bookClub())
	src := mocks.NewMockEventSource(gomock.NewController(t))
	m := domain.Message{ID: "m9", RoomID: "r1", UserID: "u2", Username: "bob", Content: "hi"}
	src.EXPECT().Next(gomock.Any()).Return(domain.StreamEvent{Type: domain.StreamMessage, Message: &m}, nil)
	a.sync = a.sync.WithEvents(src)

	if strings.Contains(a.View(), "unread") {
		t.Fatal("no unread badge expected before any message")
	}
	a, _ = feed(t, a, chat.Listen(src))

	if !strings.Contains(a.View(), "1 unread") {
		t.Error("expected total unread in header")
	}
}

func TestAppHeaderMarksFullRoom(t *testing.T) {
	a, svc := newTestApp(t)
	full := bookClub()
	full.Members = []string{"u1", "u2", "u3", "u4", "u5"}
	a = withRooms(t, a, svc, full)
	a.sync, _ = a.sync.SelectRoom("r1")

	view := a.View()
	if !strings.Contains(view, "5/5") || !strings.Contains(view, "full") {
		t.Errorf("expected full marker in room header:\n%s", view)
	}
}
