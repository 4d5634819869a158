package tui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/parley/internal/chat"
	"github.com/naveenspark/parley/pkg/domain"
)

var urlRe = regexp.MustCompile(`https?://[^\s<>\[\]()]+`)

// roomModel is the chat pane: room header, message log, compose line and status.
type roomModel struct {
	width  int
	height int
	scroll int // lines scrolled up from the newest message
}

func (m roomModel) scrollUp(n int) roomModel {
	m.scroll += n
	return m
}

func (m roomModel) scrollDown(n int) roomModel {
	m.scroll -= n
	if m.scroll < 0 {
		m.scroll = 0
	}
	return m
}

// View renders the pane for the synchronizer's active room.
func (m roomModel) View(s chat.Synchronizer, focused bool, status string, frame int, now time.Time) string {
	var b strings.Builder

	b.WriteString(m.renderHeader(s))
	b.WriteByte('\n')

	// header(1) + input(1) + status(1)
	viewportHeight := m.height - 3
	if viewportHeight < 2 {
		viewportHeight = 2
	}

	msgs := s.Messages()
	switch {
	case s.Loading() && len(msgs) == 0:
		padLines(viewportHeight-1, &b)
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
	case len(msgs) == 0:
		padLines(viewportHeight-1, &b)
		b.WriteString(" " + dimStyle.Render("no messages yet") + "\n")
	default:
		b.WriteString(m.renderMessages(s, msgs, viewportHeight, now))
	}

	room := s.ActiveRoomID()
	placeholder := "press i to type"
	if focused {
		placeholder = ""
	}
	input := renderChatInput(s.IdentityFor(room), s.Compose(), placeholder, focused, frame)
	if c := runeCounter(s.Compose()); c != "" {
		input += "  " + c
	}
	b.WriteString(input)
	b.WriteByte('\n')

	switch {
	case status != "":
		b.WriteString(" " + noticeStyle.Render(status))
	case s.Sending():
		b.WriteString(" " + dimStyle.Render("sending..."))
	}
	return b.String()
}

func (m roomModel) renderHeader(s chat.Synchronizer) string {
	room, ok := s.ActiveRoom()
	if !ok {
		return " " + dimStyle.Render("room unavailable")
	}
	if room.IsGlobal() {
		return " " + selectedStyle.Render(room.Name) + chatSepStyle.Render(" · ") +
			dimStyle.Render("anonymous as "+s.SessionUsername())
	}
	parts := []string{selectedStyle.Render(room.Name)}
	if room.Code != "" {
		parts = append(parts, accentStyle.Render(room.Code))
	}
	if room.MaxMembers > 0 {
		parts = append(parts, metaStyle.Render(fmt.Sprintf("%d/%d", len(room.Members), room.MaxMembers)))
	}
	if room.IsFull() {
		parts = append(parts, noticeStyle.Render("full"))
	}
	return " " + strings.Join(parts, chatSepStyle.Render(" · "))
}

// renderMessages renders the message log clipped to viewportHeight lines,
// respecting the scroll offset. Newest messages appear at the bottom.
func (m roomModel) renderMessages(s chat.Synchronizer, msgs []domain.Message, viewportHeight int, now time.Time) string {
	var allLines []string
	for _, msg := range msgs {
		allLines = append(allLines, strings.Split(m.renderMessage(msg, s.IsOwn(msg), now), "\n")...)
	}

	total := len(allLines)
	maxScroll := total - viewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := m.scroll
	if scroll > maxScroll {
		scroll = maxScroll
	}

	end := total - scroll
	start := end - viewportHeight
	if start < 0 {
		start = 0
	}
	visible := allLines[start:end]

	var b strings.Builder
	padLines(viewportHeight-len(visible), &b)
	for _, line := range visible {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// renderMessage renders one message, wrapping the body to the pane width.
func (m roomModel) renderMessage(msg domain.Message, own bool, now time.Time) string {
	timePart := metaStyle.Render(fmt.Sprintf("%7s", formatChatTime(msg.Timestamp, now)))
	sep := chatSepStyle.Render(" · ")

	name := msg.Username
	if name == "" {
		name = domain.DefaultDisplayName
	}
	namePart := chatTextStyle.Render(name)
	if own {
		namePart = chatSelfNameStyle.Render(name)
	}

	renderBody := func(line string) string {
		switch {
		case msg.IsPending():
			return chatPendingStyle.Render(line)
		case msg.IsModerated:
			return moderatedStyle.Render(line)
		case own:
			return chatSelfTextStyle.Render(linkify(line))
		}
		return chatTextStyle.Render(linkify(line))
	}

	// " " + time(7) + "  " + name + " · "
	prefixWidth := 1 + 7 + 2 + lipgloss.Width(namePart) + 3
	bodyWidth := m.width - prefixWidth
	if bodyWidth < 20 {
		bodyWidth = 20
	}
	lines := wrapBody(msg.Content, bodyWidth)

	var b strings.Builder
	b.WriteString(" " + timePart + "  " + namePart + sep + renderBody(lines[0]))
	indent := strings.Repeat(" ", prefixWidth)
	for _, line := range lines[1:] {
		b.WriteString("\n" + indent + renderBody(line))
	}
	if msg.IsPending() {
		b.WriteString("  " + metaStyle.Render("sending"))
	}
	return b.String()
}

// linkify turns URLs into clickable OSC 8 hyperlinks.
func linkify(s string) string {
	return urlRe.ReplaceAllStringFunc(s, hyperlinkOSC8)
}

// hyperlinkOSC8 wraps a URL in OSC 8 escape sequences for clickable terminal hyperlinks.
func hyperlinkOSC8(url string) string {
	return "\033]8;;" + url + "\a" + url + "\033]8;;\a"
}
