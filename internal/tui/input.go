package tui

import (
	"strconv"
	"unicode/utf8"

	"github.com/naveenspark/parley/pkg/domain"
)

// maxInputLen caps compose input. Sends over domain.MaxMessageLen are rejected on submit.
const maxInputLen = 2 * domain.MaxMessageLen

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
func editRune(text string, key string) string {
	return editRuneLimit(text, key, maxInputLen)
}

// editRuneLimit is editRune with an explicit rune cap.
func editRuneLimit(text, key string, limit int) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	}
	if utf8.RuneCountInString(key) != 1 {
		return text
	}
	if utf8.RuneCountInString(text) >= limit {
		return text
	}
	return text + key
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// renderChatInput renders the compose line: sender name, typed text and a blinking cursor.
func renderChatInput(name, input, placeholder string, focused bool, frame int) string {
	const timeIndent = "          " // matches " " + 7-char timestamp + "  "

	sep := chatSepStyle.Render(" · ")
	namePart := chatInputNameStyle.Render(name)
	if !focused {
		if input == "" {
			return timeIndent + namePart + sep + inputPlaceholderStyle.Render(placeholder)
		}
		return timeIndent + namePart + sep + dimStyle.Render(input)
	}
	cursor := " "
	if (frame/4)%2 == 0 {
		cursor = accentStyle.Render("█")
	}
	return timeIndent + namePart + sep + chatComposingStyle.Render(input) + cursor
}

// runeCounter renders "n/max" once the input nears the message limit.
func runeCounter(input string) string {
	n := utf8.RuneCountInString(input)
	if n < domain.MaxMessageLen-50 {
		return ""
	}
	if n > domain.MaxMessageLen {
		return errorStyle.Render(strconv.Itoa(n) + "/" + strconv.Itoa(domain.MaxMessageLen))
	}
	return metaStyle.Render(strconv.Itoa(n) + "/" + strconv.Itoa(domain.MaxMessageLen))
}
