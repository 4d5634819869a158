package tui

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/parley/internal/logx"
)

// versionCheckMsg carries the result of the background release check.
type versionCheckMsg struct {
	latest string
}

// checkVersion looks for a newer release at url. Dev builds and an empty url skip the check.
func checkVersion(current, url string) tea.Cmd {
	if current == "" || current == "dev" || url == "" {
		return nil
	}
	return func() tea.Msg {
		latest, err := fetchLatestRelease(url)
		if err != nil {
			logx.Debug("release check failed", "error", err.Error())
			return versionCheckMsg{}
		}
		if !isNewerVersion(latest, current) {
			return versionCheckMsg{}
		}
		return versionCheckMsg{latest: "v" + strings.TrimPrefix(latest, "v")}
	}
}

func fetchLatestRelease(url string) (string, error) {
	c := &http.Client{Timeout: 5 * time.Second}
	resp, err := c.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return "", &releaseError{status: resp.StatusCode}
	}
	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	return release.TagName, nil
}

type releaseError struct{ status int }

func (e *releaseError) Error() string { return "release check: HTTP " + strconv.Itoa(e.status) }

// isNewerVersion reports whether latest is a newer major.minor.patch than current.
func isNewerVersion(latest, current string) bool {
	l := parseVersion(latest)
	c := parseVersion(current)
	for i := range l {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return false
}

func parseVersion(v string) [3]int {
	var out [3]int
	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	for i, p := range parts {
		n, _ := strconv.Atoi(p) //nolint:errcheck
		out[i] = n
	}
	return out
}
