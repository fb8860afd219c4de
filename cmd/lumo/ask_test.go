package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcsoft.com/lumo/internal/config"
	"pcsoft.com/lumo/internal/core"
)

func testConfig() *config.Config {
	return &config.Config{
		Storage:   config.StorageMemory,
		JWTSecret: "test-secret",
	}
}

func TestAskStreamsCuratedAnswer(t *testing.T) {
	question := "How can ERP help streamline our business processes?"
	cmd := NewAskCommand(testConfig())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--email", "harsha.jain@pcsoft.com", "--password", "user123", question})

	require.NoError(t, cmd.Execute())

	want, ok := core.Lookup(question)
	require.True(t, ok)
	assert.Contains(t, stdout.String(), want.Content)
	assert.Contains(t, stdout.String(), "Sources:")
	assert.Contains(t, stderr.String(), "Signed in as Harsha Jain")
}

func TestAskRequiresSignIn(t *testing.T) {
	cmd := NewAskCommand(testConfig())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"hello"})

	assert.ErrorContains(t, cmd.Execute(), "not signed in")
}

func TestAskRejectsBadCredentials(t *testing.T) {
	cmd := NewAskCommand(testConfig())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--email", "harsha.jain@pcsoft.com", "--password", "nope", "hello"})

	assert.ErrorContains(t, cmd.Execute(), "invalid credentials")
}

func TestAskFlagsValidate(t *testing.T) {
	assert.NoError(t, (&AskFlags{}).Validate())
	assert.NoError(t, (&AskFlags{Email: "a", Password: "b"}).Validate())
	assert.Error(t, (&AskFlags{Email: "a"}).Validate())
}

func TestPrintSourcesSkipsUncurated(t *testing.T) {
	var buf bytes.Buffer
	printSources(&buf, "what is the weather")
	assert.Empty(t, buf.String())
}
