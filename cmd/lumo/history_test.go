package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"pcsoft.com/lumo/internal/config"
	"pcsoft.com/lumo/internal/store"
)

func sampleChats() []store.Chat {
	updated := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return []store.Chat{{
		ID:        "c1",
		Title:     "ERP modules",
		UserID:    "2",
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
		Messages: []store.Message{
			{ID: "m1", Content: "What are ERP modules?", Type: store.MessageTypeUser, ChatID: "c1", Timestamp: updated},
		},
	}}
}

func TestPrintChats(t *testing.T) {
	var buf bytes.Buffer
	chats := sampleChats()
	require.NoError(t, printChats(&buf, chats, chats[0].UpdatedAt.Add(2*time.Hour)))

	out := buf.String()
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "ERP modules")
	assert.Contains(t, out, "2h ago")

	buf.Reset()
	require.NoError(t, printChats(&buf, nil, time.Now()))
	assert.Equal(t, "No chats found.\n", buf.String())
}

func TestExportChatsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, exportChats(&buf, sampleChats(), "yaml"))
	assert.Contains(t, buf.String(), "userId: \"2\"")

	var decoded []store.Chat
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "ERP modules", decoded[0].Title)
	assert.Equal(t, "What are ERP modules?", decoded[0].Messages[0].Content)
}

func TestExportChatsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, exportChats(&buf, sampleChats(), "json"))
	assert.Contains(t, buf.String(), `"updatedAt": "2024-06-01T12:00:00Z"`)
}

func TestExportChatsUnknownFormat(t *testing.T) {
	err := exportChats(&bytes.Buffer{}, nil, "xml")
	assert.ErrorContains(t, err, `unsupported export format "xml"`)
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return stdout.String()
}

func TestHistoryClearKeepsSession(t *testing.T) {
	cfg := &config.Config{
		Storage:     config.StorageSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "lumo.db"),
		JWTSecret:   "test-secret",
	}

	runCommand(t, NewAskCommand(cfg), "--email", "harsha.jain@pcsoft.com", "--password", "user123", "hello")
	assert.Contains(t, runCommand(t, NewHistoryCommand(cfg), "list"), "hello")

	assert.Contains(t, runCommand(t, NewHistoryCommand(cfg), "clear"), "Chat history cleared.")
	assert.Equal(t, "No chats found.\n", runCommand(t, NewHistoryCommand(cfg), "list"))
}
