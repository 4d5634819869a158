package tui

import (
	"fmt"
	"strings"

	"github.com/naveenspark/parley/pkg/domain"
)

const sidebarWidth = 24

// renderSidebar lists rooms with the active one marked and the cursor highlighted when focused.
func renderSidebar(rooms []domain.Room, activeID string, cursor int, focused bool, height int) string {
	var b strings.Builder

	header := "ROOMS"
	if focused {
		b.WriteString(" " + accentStyle.Render(header) + "\n")
	} else {
		b.WriteString(" " + sectionHeaderStyle.Render(header) + "\n")
	}

	for i, r := range rooms {
		marker := "  "
		if r.ID == activeID {
			marker = accentStyle.Render("▌ ")
		}

		name := r.Name
		if name == "" {
			name = r.Code
		}
		badge := ""
		nameWidth := sidebarWidth - 6
		if r.UnreadCount > 0 {
			n := fmt.Sprintf("%d", r.UnreadCount)
			if r.UnreadCount > 99 {
				n = "99+"
			}
			badge = unreadStyle.Render(" " + n + " ")
			nameWidth -= len(n) + 2
		}
		name = truncStr(name, nameWidth)

		var line string
		switch {
		case focused && i == cursor:
			line = selectedRowBg.Render(selectedStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)))
		case r.ID == activeID:
			line = selectedStyle.Render(name)
		default:
			line = normalStyle.Render(name)
		}
		if badge != "" {
			line += " " + badge
		}
		b.WriteString(marker + line + "\n")

		if i == 0 && len(rooms) > 1 {
			b.WriteString(" " + metaStyle.Render(strings.Repeat("─", sidebarWidth-4)) + "\n")
		}
	}

	if len(rooms) == 1 {
		b.WriteString("\n " + dimStyle.Render("c create  o join") + "\n")
	}

	return sidebarStyle.Width(sidebarWidth).Height(height).Render(truncateToHeight(b.String(), height))
}

// clampCursor keeps a list cursor within [0, n).
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
