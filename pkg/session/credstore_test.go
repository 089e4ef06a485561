package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)

	cred := &Credential{
		AccessToken:  "at-123",
		RefreshToken: "rt-456",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		Profile: Profile{
			SubjectID:   "user-1",
			DisplayName: "Ada",
			Email:       "ada@example.com",
		},
	}
	require.NoError(t, store.Save(cred))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, cred.AccessToken, loaded.AccessToken)
	assert.Equal(t, cred.RefreshToken, loaded.RefreshToken)
	assert.Equal(t, cred.Profile, loaded.Profile)
	assert.True(t, cred.Expiry.Equal(loaded.Expiry))
}

func TestFileStoreLoadMissing(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileStoreClear(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)

	require.NoError(t, store.Save(&Credential{AccessToken: "at"}))
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// clearing an already-missing file is not an error
	require.NoError(t, store.Clear())
}
