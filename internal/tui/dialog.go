package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/parley/pkg/domain"
)

type dialogKind int

const (
	dialogCreate dialogKind = iota
	dialogJoin
	dialogRename
	dialogDisplayName
	dialogLeave
	dialogDelete
)

type dialogResult int

const (
	dialogPending dialogResult = iota
	dialogSubmitted
	dialogCancelled
)

// Field caps match the request validation in pkg/client.
const (
	roomNameLimit    = 50
	roomCodeLimit    = 12
	displayNameLimit = 32
)

type dialogField struct {
	label string
	value string
	limit int
	hint  string
}

// dialogModel is a small modal form. Confirm dialogs have no fields.
type dialogModel struct {
	kind   dialogKind
	title  string
	room   domain.Room
	fields []dialogField
	focus  int
}

func newDialog(kind dialogKind, room domain.Room, displayName string) dialogModel {
	d := dialogModel{kind: kind, room: room}
	switch kind {
	case dialogCreate:
		d.title = "New private room"
		d.fields = []dialogField{
			{label: "name", limit: roomNameLimit},
			{label: "code", limit: roomCodeLimit, hint: "optional, letters and digits"},
		}
	case dialogJoin:
		d.title = "Join a room"
		d.fields = []dialogField{{label: "code", limit: roomCodeLimit}}
	case dialogRename:
		d.title = "Rename " + room.Name
		d.fields = []dialogField{{label: "name", value: room.Name, limit: roomNameLimit}}
	case dialogDisplayName:
		d.title = "Display name for private rooms"
		d.fields = []dialogField{{label: "name", value: displayName, limit: displayNameLimit}}
	case dialogLeave:
		d.title = fmt.Sprintf("Leave %s?", room.Name)
	case dialogDelete:
		d.title = fmt.Sprintf("Delete %s for everyone?", room.Name)
	}
	return d
}

func (d dialogModel) value(i int) string {
	if i < 0 || i >= len(d.fields) {
		return ""
	}
	return d.fields[i].value
}

func (d dialogModel) confirm() bool {
	return len(d.fields) == 0
}

// Update handles a key and reports whether the dialog was submitted or cancelled.
func (d dialogModel) Update(msg tea.KeyMsg) (dialogModel, dialogResult) {
	key := msg.String()
	if d.confirm() {
		switch key {
		case "y", "enter":
			return d, dialogSubmitted
		case "n", "esc", "q":
			return d, dialogCancelled
		}
		return d, dialogPending
	}

	switch key {
	case "esc":
		return d, dialogCancelled
	case "ctrl+s":
		return d, dialogSubmitted
	case "enter":
		if d.focus == len(d.fields)-1 {
			return d, dialogSubmitted
		}
		d.focus++
	case "tab", "down":
		d.focus = (d.focus + 1) % len(d.fields)
	case "shift+tab", "up":
		d.focus = (d.focus - 1 + len(d.fields)) % len(d.fields)
	default:
		f := &d.fields[d.focus]
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				f.value = editRuneLimit(f.value, string(r), f.limit)
			}
		} else {
			f.value = editRuneLimit(f.value, key, f.limit)
		}
	}
	return d, dialogPending
}

func (d dialogModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n  %s\n\n", selectedStyle.Render(d.title))

	if d.confirm() {
		b.WriteString("  " + helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel") + "\n")
		return b.String()
	}

	for i, f := range d.fields {
		cursor := " "
		style := metaStyle
		value := f.value
		if i == d.focus {
			cursor = ">"
			style = selectedStyle
			value += "█"
		}
		line := fmt.Sprintf("  %s %s: %s", cursor, style.Render(f.label), value)
		if f.hint != "" && f.value == "" {
			line += "  " + inputPlaceholderStyle.Render(f.hint)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (d dialogModel) helpKeys() string {
	if d.confirm() {
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	}
	return helpEntry("tab", "next") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("esc", "cancel")
}
