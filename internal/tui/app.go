package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/parley/internal/chat"
	"github.com/naveenspark/parley/internal/logx"
)

type focusArea int

const (
	focusChat focusArea = iota
	focusRooms
	focusInput
)

// App is the root Bubbletea model. All chat state lives in the synchronizer;
// App only owns layout, focus and overlays.
type App struct {
	sync       chat.Synchronizer
	version    string
	releaseURL string
	latest     string

	room       roomModel
	focus      focusArea
	cursor     int
	dialog     dialogModel
	dialogOpen bool
	helpOpen   bool
	status     string

	width  int
	height int
	frame  int

	now      func() time.Time
	copyText func(string) error
}

// NewApp wraps a synchronizer in the terminal UI.
func NewApp(sync chat.Synchronizer, version string) App {
	return App{
		sync:     sync,
		version:  version,
		now:      time.Now,
		copyText: clipboard.WriteAll,
	}
}

// WithReleaseURL enables the startup check for a newer release.
func (a App) WithReleaseURL(url string) App {
	a.releaseURL = url
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.sync.Init(), shimmerTickCmd(), checkVersion(a.version, a.releaseURL))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + help(1)
		a.room.height = msg.Height - 3
		a.room.width = msg.Width - sidebarWidth - 2
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case versionCheckMsg:
		a.latest = msg.latest
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	return a.updateSync(func(s chat.Synchronizer) (chat.Synchronizer, tea.Cmd) { return s.Update(msg) })
}

// updateSync runs a synchronizer transition and keeps the view pinned to the
// newest message when the log grows.
func (a App) updateSync(fn func(chat.Synchronizer) (chat.Synchronizer, tea.Cmd)) (App, tea.Cmd) {
	before := len(a.sync.Messages())
	room := a.sync.ActiveRoomID()

	var cmd tea.Cmd
	a.sync, cmd = fn(a.sync)

	if a.sync.ActiveRoomID() != room || len(a.sync.Messages()) > before {
		a.room.scroll = 0
	}
	a.cursor = clampCursor(a.cursor, len(a.sync.Rooms()))
	return a, cmd
}

func (a App) updateKeys(msg tea.KeyMsg) (App, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.helpOpen {
		switch key {
		case "h", "?", "esc":
			a.helpOpen = false
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	if a.dialogOpen {
		return a.updateDialog(msg)
	}

	if a.focus == focusInput {
		return a.updateInput(msg)
	}

	a.status = ""
	switch key {
	case "q":
		return a, tea.Quit
	case "h", "?":
		a.helpOpen = true
		return a, nil
	case "tab":
		if a.focus == focusRooms {
			a.focus = focusChat
		} else {
			a.focus = focusRooms
			a.cursor = a.activeIndex()
		}
		return a, nil
	case "c":
		return a.openDialog(dialogCreate), nil
	case "o":
		return a.openDialog(dialogJoin), nil
	case "N":
		return a.openDialog(dialogDisplayName), nil
	case "r":
		return a.openRoomDialog(dialogRename)
	case "L":
		return a.openRoomDialog(dialogLeave)
	case "D":
		return a.openRoomDialog(dialogDelete)
	case "y":
		return a.copyRoomCode(), nil
	case "R":
		return a.updateSync(func(s chat.Synchronizer) (chat.Synchronizer, tea.Cmd) { return s.Refresh() })
	}

	if a.focus == focusRooms {
		return a.updateRooms(key)
	}
	return a.updateChat(key)
}

func (a App) updateRooms(key string) (App, tea.Cmd) {
	rooms := a.sync.Rooms()
	switch key {
	case "j", "down":
		a.cursor = clampCursor(a.cursor+1, len(rooms))
	case "k", "up":
		a.cursor = clampCursor(a.cursor-1, len(rooms))
	case "enter", "l":
		if a.cursor < len(rooms) {
			id := rooms[a.cursor].ID
			a.focus = focusChat
			return a.updateSync(func(s chat.Synchronizer) (chat.Synchronizer, tea.Cmd) { return s.SelectRoom(id) })
		}
	case "esc":
		a.focus = focusChat
	}
	return a, nil
}

func (a App) updateChat(key string) (App, tea.Cmd) {
	switch key {
	case "i", "enter":
		a.focus = focusInput
		a.sync = a.sync.ClearNotice()
	case "k", "up":
		a.room = a.room.scrollUp(1)
	case "j", "down":
		a.room = a.room.scrollDown(1)
	case "ctrl+u", "pgup":
		a.room = a.room.scrollUp(a.room.height / 2)
	case "ctrl+d", "pgdown":
		a.room = a.room.scrollDown(a.room.height / 2)
	case "G", "end":
		a.room.scroll = 0
	}
	return a, nil
}

func (a App) updateInput(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.focus = focusChat
		return a, nil
	case "enter":
		if strings.TrimSpace(a.sync.Compose()) == "" {
			return a, nil
		}
		return a.updateSync(func(s chat.Synchronizer) (chat.Synchronizer, tea.Cmd) { return s.Submit(s.Compose()) })
	case "ctrl+u", "pgup":
		a.room = a.room.scrollUp(a.room.height / 2)
		return a, nil
	case "ctrl+d", "pgdown":
		a.room = a.room.scrollDown(a.room.height / 2)
		return a, nil
	}

	text := a.sync.Compose()
	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			text = editRune(text, string(r))
		}
	} else {
		text = editRune(text, msg.String())
	}
	a.sync = a.sync.SetCompose(text)
	return a, nil
}

func (a App) openDialog(kind dialogKind) App {
	room, _ := a.sync.ActiveRoom()
	a.dialog = newDialog(kind, room, a.sync.DisplayName())
	a.dialogOpen = true
	return a
}

// openRoomDialog opens a dialog about the active room, refusing the global room up front.
func (a App) openRoomDialog(kind dialogKind) (App, tea.Cmd) {
	room, ok := a.sync.ActiveRoom()
	if !ok || room.IsGlobal() {
		a.status = chat.ErrGlobalRoom.Error()
		return a, nil
	}
	return a.openDialog(kind), nil
}

func (a App) updateDialog(msg tea.KeyMsg) (App, tea.Cmd) {
	var res dialogResult
	a.dialog, res = a.dialog.Update(msg)
	switch res {
	case dialogCancelled:
		a.dialogOpen = false
		return a, nil
	case dialogSubmitted:
		a.dialogOpen = false
		d := a.dialog
		return a.updateSync(func(s chat.Synchronizer) (chat.Synchronizer, tea.Cmd) {
			switch d.kind {
			case dialogCreate:
				return s.CreateRoom(d.value(0), d.value(1))
			case dialogJoin:
				return s.JoinRoom(d.value(0))
			case dialogRename:
				return s.RenameRoom(d.room.ID, d.value(0))
			case dialogDisplayName:
				return s.SetDisplayName(d.value(0))
			case dialogLeave:
				return s.LeaveRoom(d.room.ID)
			case dialogDelete:
				return s.DeleteRoom(d.room.ID)
			}
			return s, nil
		})
	}
	return a, nil
}

func (a App) copyRoomCode() App {
	room, ok := a.sync.ActiveRoom()
	if !ok || room.IsGlobal() || room.Code == "" {
		a.status = "no room code to copy"
		return a
	}
	if err := a.copyText(room.Code); err != nil {
		logx.Warn("clipboard write failed", "error", err.Error())
		a.status = "could not copy code " + room.Code
		return a
	}
	a.status = "copied " + room.Code
	return a
}

func (a App) activeIndex() int {
	for i, r := range a.sync.Rooms() {
		if r.ID == a.sync.ActiveRoomID() {
			return i
		}
	}
	return 0
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	header := center(logo, a.width)

	identity := a.sync.SessionUsername()
	if a.sync.IdentityReady() {
		identity += " · " + a.sync.DisplayName()
	}
	sub := metaStyle.Render(identity)
	if n := chat.TotalUnread(a.sync.Rooms()); n > 0 {
		sub += "  " + unreadStyle.Render(fmt.Sprintf(" %d unread ", n))
	}
	if a.latest != "" {
		sub += "  " + accentStyle.Render(a.latest+" available")
	}
	header += "\n" + center(sub, a.width)

	bodyHeight := a.height - 3
	if bodyHeight < 4 {
		bodyHeight = 4
	}

	var body, help string
	switch {
	case a.helpOpen:
		body = helpView()
		help = helpEntry("esc", "close")
	case a.dialogOpen:
		body = a.dialog.View()
		help = a.dialog.helpKeys()
	default:
		status := a.status
		if status == "" {
			status = a.sync.Notice()
		}
		sidebar := renderSidebar(a.sync.Rooms(), a.sync.ActiveRoomID(), a.cursor, a.focus == focusRooms, bodyHeight)
		pane := a.room.View(a.sync, a.focus == focusInput, status, a.frame, a.now())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", pane)
		help = a.helpKeys()
	}

	body = strings.TrimRight(truncateToHeight(body, bodyHeight), "\n")
	return fmt.Sprintf("%s\n%s\n %s", header, body, help)
}

func (a App) helpKeys() string {
	switch a.focus {
	case focusInput:
		return helpEntry("enter", "send") + "  " + helpEntry("esc", "nav") + "  " + helpEntry("ctrl+u/d", "scroll")
	case focusRooms:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("c", "create") + "  " +
			helpEntry("o", "join") + "  " + helpEntry("tab", "chat") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	}
	return helpEntry("i", "type") + "  " + helpEntry("j/k", "scroll") + "  " + helpEntry("tab", "rooms") + "  " +
		helpEntry("y", "copy code") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
}

func center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
