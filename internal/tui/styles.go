package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the header logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "PARLEY" as a slow wave of teal light.
// Deep (#123a3a) to bright (#5eead4), letters spaced apart.
func renderShimmerLogo(frame int) string {
	const text = "PARLEY"
	n := len(text)
	t := float64(frame)

	var b strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		phase := t*0.1 - x*3.0 + math.Sin(t*0.023)*2.0

		v := math.Pow(math.Sin(phase)*0.5+0.5, 1.3)
		v = v*0.75 + math.Sin(t*0.035)*0.12 + 0.18
		v = math.Max(0.05, math.Min(1.0, v))

		r := clampByte(18 + v*(94-18))
		g := clampByte(58 + v*(234-58))
		bl := clampByte(58 + v*(212-58))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		b.WriteString(s.Render(string(text[i])))
		if i < n-1 {
			b.WriteString("  ")
		}
	}
	return b.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2dd4bf"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#b45555"))

	unreadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0b0b10")).
			Background(lipgloss.Color("#2dd4bf")).
			Bold(true)

	borderColor = lipgloss.Color("#1e1e2a")

	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(borderColor).
			PaddingRight(1)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#2dd4bf")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	chatSelfNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e4e4ec"))

	chatInputNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#2dd4bf"))

	chatSelfTextStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c0c4d0"))

	chatTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	chatPendingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#505868")).
				Italic(true)

	chatComposingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e4e4ec"))

	chatSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#404858"))

	moderatedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#404858")).
			Strikethrough(true)
)

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

type helpSection struct {
	title string
	rows  []struct{ key, desc string }
}

var helpSections = []helpSection{
	{"Commands", []struct{ key, desc string }{
		{"parley", "Open the chat"},
		{"parley rooms", "List your rooms"},
		{"parley logout", "End the anonymous session"},
		{"parley --version", "Show version"},
	}},
	{"Rooms", []struct{ key, desc string }{
		{"tab", "Switch between room list and chat"},
		{"j/k enter", "Pick a room"},
		{"c", "Create a private room"},
		{"o", "Join a room by code"},
		{"r", "Rename the room"},
		{"L", "Leave the room"},
		{"D", "Delete the room"},
		{"y", "Copy the room code"},
	}},
	{"Chat", []struct{ key, desc string }{
		{"i", "Type a message"},
		{"enter", "Send"},
		{"esc", "Stop typing"},
		{"ctrl+u/ctrl+d", "Scroll"},
		{"N", "Set your display name"},
		{"R", "Reload messages"},
	}},
}

// helpView renders the help overlay.
func helpView() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2dd4bf")).
		Bold(true).
		Render("P A R L E Y")
	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Global chat is anonymous. Private rooms hold up to five people.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n", title, note)
	for _, sec := range helpSections {
		fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render(sec.title))
		for _, row := range sec.rows {
			fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-18s", row.key)), descStyle.Render(row.desc))
		}
	}
	return b.String()
}
