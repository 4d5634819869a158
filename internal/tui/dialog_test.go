package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/parley/pkg/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDialogFieldNavigation(t *testing.T) {
	d := newDialog(dialogCreate, domain.Room{}, "")

	d, res := d.Update(tea.KeyMsg{Type: tea.KeyTab})
	if res != dialogPending || d.focus != 1 {
		t.Fatalf("tab: focus=%d res=%d", d.focus, res)
	}
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyTab})
	if d.focus != 0 {
		t.Errorf("tab should wrap, focus=%d", d.focus)
	}
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if d.focus != 1 {
		t.Errorf("shift+tab should wrap back, focus=%d", d.focus)
	}
}

func TestDialogEnterAdvancesThenSubmits(t *testing.T) {
	d := newDialog(dialogCreate, domain.Room{}, "")
	d, _ = d.Update(runes("chess"))

	d, res := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if res != dialogPending || d.focus != 1 {
		t.Fatalf("first enter: focus=%d res=%d", d.focus, res)
	}
	_, res = d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if res != dialogSubmitted {
		t.Errorf("second enter should submit, got %d", res)
	}
	if d.value(0) != "chess" {
		t.Errorf("name = %q", d.value(0))
	}
}

func TestDialogFieldLimits(t *testing.T) {
	d := newDialog(dialogJoin, domain.Room{}, "")

	d, _ = d.Update(runes(strings.Repeat("A", roomCodeLimit+5)))

	if got := len(d.value(0)); got != roomCodeLimit {
		t.Errorf("code length = %d, want %d", got, roomCodeLimit)
	}
}

func TestDialogPrefill(t *testing.T) {
	room := domain.Room{ID: "r1", Name: "book club"}

	if got := newDialog(dialogRename, room, "").value(0); got != "book club" {
		t.Errorf("rename prefill = %q", got)
	}
	if got := newDialog(dialogDisplayName, room, "ada").value(0); got != "ada" {
		t.Errorf("display name prefill = %q", got)
	}
}

func TestDialogConfirm(t *testing.T) {
	room := domain.Room{ID: "r1", Name: "book club"}
	tests := []struct {
		key  tea.KeyMsg
		want dialogResult
	}{
		{runes("y"), dialogSubmitted},
		{tea.KeyMsg{Type: tea.KeyEnter}, dialogSubmitted},
		{runes("n"), dialogCancelled},
		{tea.KeyMsg{Type: tea.KeyEsc}, dialogCancelled},
		{runes("x"), dialogPending},
	}
	for _, tc := range tests {
		t.Run(tc.key.String(), func(t *testing.T) {
			d := newDialog(dialogDelete, room, "")
			_, res := d.Update(tc.key)
			if res != tc.want {
				t.Errorf("key %q: got %d, want %d", tc.key.String(), res, tc.want)
			}
		})
	}
}

func TestDialogView(t *testing.T) {
	view := newDialog(dialogCreate, domain.Room{}, "").View()
	for _, want := range []string{"New private room", "name", "code", "optional"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	confirm := newDialog(dialogLeave, domain.Room{Name: "chess"}, "").View()
	if !strings.Contains(confirm, "Leave chess?") {
		t.Errorf("confirm view = %q", confirm)
	}
}
