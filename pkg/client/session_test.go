package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_InMemory(t *testing.T) {
	s := NewSessionStore("")
	assert.False(t, s.IsAdmin())

	require.NoError(t, s.SetToken("fake-jwt-token-for-demo"))
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "fake-jwt-token-for-demo", s.Token())

	require.NoError(t, s.Clear())
	assert.False(t, s.IsAdmin())
}

func TestSessionStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")

	s := NewSessionStore(path)
	require.NoError(t, s.SetToken("fake-jwt-token-for-demo"))

	// No expiry: a fresh instance stays authenticated until explicit logout.
	reopened := NewSessionStore(path)
	assert.True(t, reopened.IsAdmin())
	assert.Equal(t, "fake-jwt-token-for-demo", reopened.Token())

	require.NoError(t, reopened.Clear())
	assert.False(t, NewSessionStore(path).IsAdmin())
}

func TestSessionStore_ClearWithoutFile(t *testing.T) {
	s := NewSessionStore(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, s.Clear())
}
