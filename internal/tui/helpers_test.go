package tui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

func TestFormatChatTime(t *testing.T) {
	now := time.Date(2026, 3, 5, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"same day", time.Date(2026, 3, 5, 9, 5, 0, 0, time.UTC), "9:05"},
		{"yesterday", time.Date(2026, 3, 4, 23, 0, 0, 0, time.UTC), "1d ago"},
		{"last week", time.Date(2026, 2, 26, 15, 30, 0, 0, time.UTC), "7d ago"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatChatTime(tc.t, now); got != tc.want {
				t.Errorf("formatChatTime = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTruncStr(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a bit too long", 8, "a bit t…"},
		{"héllo wörld", 6, "héllo…"},
		{"x", 0, ""},
	}
	for _, tc := range tests {
		if got := truncStr(tc.in, tc.max); got != tc.want {
			t.Errorf("truncStr(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestHardWrapBreaksLongTokens(t *testing.T) {
	url := "https://example.com/" + strings.Repeat("a", 50)

	out := hardWrap(url, 20)

	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 20 {
			t.Errorf("line width %d exceeds 20: %q", w, line)
		}
	}
	if strings.ReplaceAll(out, "\n", "") != url {
		t.Error("hardWrap lost characters")
	}
}

func TestEditRune(t *testing.T) {
	tests := []struct {
		name  string
		start string
		key   string
		want  string
	}{
		{"append", "hel", "l", "hell"},
		{"space", "hello", " ", "hello "},
		{"backspace", "hello", "backspace", "hell"},
		{"backspace multibyte", "héé", "backspace", "hé"},
		{"backspace empty", "", "backspace", ""},
		{"ignore named key", "abc", "enter", "abc"},
		{"ignore ctrl", "abc", "ctrl+a", "abc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := editRune(tc.start, tc.key); got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.start, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	full := strings.Repeat("a", maxInputLen)
	if got := editRune(full, "b"); utf8.RuneCountInString(got) != maxInputLen {
		t.Errorf("expected clamp at %d runes, got %d", maxInputLen, utf8.RuneCountInString(got))
	}
}

func TestRuneCounter(t *testing.T) {
	if got := runeCounter("short"); got != "" {
		t.Errorf("expected no counter for short input, got %q", got)
	}
	if got := runeCounter(strings.Repeat("a", 480)); !strings.Contains(got, "480/500") {
		t.Errorf("counter = %q", got)
	}
	if got := runeCounter(strings.Repeat("a", 501)); !strings.Contains(got, "501/500") {
		t.Errorf("counter = %q", got)
	}
}

func TestTruncateToHeight(t *testing.T) {
	in := "a\nb\nc\nd\n"
	if got := truncateToHeight(in, 2); got != "a\nb\n" {
		t.Errorf("truncateToHeight = %q", got)
	}
	if got := truncateToHeight(in, 0); got != in {
		t.Errorf("maxLines 0 should return input, got %q", got)
	}
}
