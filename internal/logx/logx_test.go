package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "debug", false)

	Error(errors.New("boom"), "send failed", "room_id", "global")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "error", entry["level"])
	require.Equal(t, "send failed", entry["message"])
	require.Equal(t, "global", entry["room_id"])
	require.Equal(t, "boom", entry["error"])
}

func TestOddFieldsAreDropped(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "info", false)

	Info("hello", "dangling")

	require.Contains(t, buf.String(), "odd number of fields")
	require.Contains(t, buf.String(), `"message":"hello"`)
	require.NotContains(t, buf.String(), `"dangling":`)
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "warn", false)

	Debug("quiet")
	Info("quiet too")
	require.Empty(t, buf.String())

	Warn("loud")
	require.Contains(t, buf.String(), "loud")
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "parley.log")
	closer, err := Init(path, "info", true)
	require.NoError(t, err)
	Info("started", "version", "dev")
	require.NoError(t, closer.Close())
	require.FileExists(t, path)
}
