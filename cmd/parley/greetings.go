package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

func printHelp(out io.Writer) {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2dd4bf")).
		Bold(true).
		Render("P A R L E Y")

	note := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("One global room, anonymous. Private rooms for up to five.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"parley", "Open the chat (interactive TUI)"},
		{"parley rooms", "List your rooms"},
		{"parley logout", "End the anonymous session"},
		{"parley --version", "Show version"},
		{"parley help", "You are here"},
	}
	vars := []struct{ name, desc string }{
		{"PARLEY_API_URL", "Chat server (default https://api.parley.chat)"},
		{"PARLEY_TOKEN", "Auth token (else ~/.parley/token)"},
		{"PARLEY_SESSION_TTL", "Anonymous session lifetime (default 12h)"},
		{"PARLEY_STREAM", "Live updates over websocket (default true)"},
		{"PARLEY_LOG_LEVEL", "debug, info, warn or error"},
		{"PARLEY_RELEASE_URL", "Latest-release endpoint for update checks"},
	}

	fmt.Fprintf(out, "\n  %s\n\n  %s\n\n  Commands:\n", title, note)
	for _, c := range commands {
		fmt.Fprintf(out, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Fprintf(out, "\n  Environment:\n")
	for _, v := range vars {
		fmt.Fprintf(out, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-20s", v.name)), descStyle.Render(v.desc))
	}
	fmt.Fprintln(out)
}
