package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := FromEnvSet(env.EnvSet{}, home)
	require.NoError(t, err)

	require.Equal(t, "https://api.parley.chat", cfg.APIURL)
	require.Equal(t, "production", cfg.Environment)
	require.False(t, cfg.IsDevelopment())
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.Equal(t, 50, cfg.HistoryLimit)
	require.True(t, cfg.Stream)
	require.Equal(t, filepath.Join(home, ".parley", "parley.log"), cfg.LogFile)
	require.Equal(t, filepath.Join(home, ".parley", "session"), cfg.SessionDir)
	require.Empty(t, cfg.ReleaseURL)
}

func TestOverrides(t *testing.T) {
	cfg, err := FromEnvSet(env.EnvSet{
		"PARLEY_API_URL":       "http://localhost:8080/",
		"PARLEY_ENV":           "development",
		"PARLEY_SESSION_TTL":   "30m",
		"PARLEY_HISTORY_LIMIT": "100",
		"PARLEY_STREAM":        "false",
		"PARLEY_RELEASE_URL":   "https://example.com/releases/latest",
	}, t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8080", cfg.APIURL)
	require.True(t, cfg.IsDevelopment())
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, 100, cfg.HistoryLimit)
	require.False(t, cfg.Stream)
	require.Equal(t, "https://example.com/releases/latest", cfg.ReleaseURL)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		es   env.EnvSet
	}{
		{"bad env", env.EnvSet{"PARLEY_ENV": "staging"}},
		{"bad url", env.EnvSet{"PARLEY_API_URL": "ftp://x"}},
		{"history too large", env.EnvSet{"PARLEY_HISTORY_LIMIT": "500"}},
		{"history zero", env.EnvSet{"PARLEY_HISTORY_LIMIT": "0"}},
		{"bad release url", env.EnvSet{"PARLEY_RELEASE_URL": "example.com/latest"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromEnvSet(tc.es, t.TempDir())
			require.Error(t, err)
		})
	}
}

func TestReadTokenPrecedence(t *testing.T) {
	home := t.TempDir()
	cfg, err := FromEnvSet(env.EnvSet{}, home)
	require.NoError(t, err)
	require.Empty(t, cfg.ReadToken())

	require.NoError(t, os.MkdirAll(cfg.HomeDir, 0o700))
	require.NoError(t, os.WriteFile(cfg.TokenFile(), []byte("file-token\n"), 0o600))
	require.Equal(t, "file-token", cfg.ReadToken())

	cfg.Token = "env-token"
	require.Equal(t, "env-token", cfg.ReadToken())
}
