package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), FolderName))
}

func sampleFile() *File {
	return &File{
		Auth:    NewAuth("https://jira.example.com", "jane", "amFuZTpodW50ZXIy"),
		Options: DefaultOptions(),
	}
}

func TestStore_LoadMissingReturnsDefaults(t *testing.T) {
	s := newTestStore(t)

	f, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "To Do", f.Options.JiraStop.Status)
	assert.Equal(t, DefaultTimezone, f.Options.Timezone)
	assert.False(t, s.IsConfigured())
}

func TestStore_SaveIsWriteOnce(t *testing.T) {
	s := newTestStore(t)

	res, err := s.Save(sampleFile())
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.True(t, s.IsConfigured())

	info, err := os.Stat(s.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	before, err := os.ReadFile(s.ConfigPath())
	require.NoError(t, err)

	other := sampleFile()
	other.Auth.Username = "someone-else"
	res, err = s.Save(other)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, msgAlreadySaved, res.Message)

	after, err := os.ReadFile(s.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_LoadReadsOnce(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Save(sampleFile())
	require.NoError(t, err)

	reopened := NewStore(s.Dir())
	f, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, "jane", f.Auth.Username)
	assert.Equal(t, "https://jira.example.com/", f.Auth.BaseURI)
	assert.Equal(t, s.ConfigPath(), f.Paths.ConfigPath)

	require.NoError(t, os.WriteFile(s.ConfigPath(), []byte(`{"auth":{"username":"changed"}}`), 0600))
	f, err = reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, "jane", f.Auth.Username)
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Save(sampleFile())
	require.NoError(t, err)

	res, err := s.Clear()
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, msgCleared, res.Message)
	assert.False(t, s.IsConfigured())
	_, err = os.Stat(s.Dir())
	assert.True(t, os.IsNotExist(err))

	res, err = s.Clear()
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, msgNothingStored, res.Message)
}

func TestStore_ClearRemovesEmptyFolder(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0700))

	res, err := s.Clear()
	require.NoError(t, err)
	assert.False(t, res.Changed)
	_, err = os.Stat(s.Dir())
	assert.True(t, os.IsNotExist(err))
}

func TestStore_InvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{nope"},
		{name: "auth not object", content: `{"auth": "jane"}`},
		{name: "wrong field type", content: `{"options": {"is_use_cache": "yes"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.MkdirAll(s.Dir(), 0700))
			require.NoError(t, os.WriteFile(s.ConfigPath(), []byte(tt.content), 0600))

			_, err := s.Load()
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, s.ConfigPath(), cfgErr.Path)
			assert.False(t, s.IsConfigured())
		})
	}
}

func TestStore_NotConfiguredWithoutWorkflow(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0700))
	require.NoError(t, os.WriteFile(s.ConfigPath(), []byte(`{"auth":{"base_uri":"https://x/"},"options":{}}`), 0600))

	assert.False(t, s.IsConfigured())
}

func TestStore_ClearKeepsUnrelatedFiles(t *testing.T) {
	tests := []struct {
		name        string
		configured  bool
		wantChanged bool
	}{
		{name: "configured", configured: true, wantChanged: true},
		{name: "nothing stored", configured: false, wantChanged: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(t.TempDir())
			if tt.configured {
				_, err := s.Save(sampleFile())
				require.NoError(t, err)
			}
			require.NoError(t, os.WriteFile(s.CachePath(), []byte("cache"), 0600))
			other := filepath.Join(s.Dir(), "thesis.tex")
			require.NoError(t, os.WriteFile(other, []byte("keep me"), 0600))

			res, err := s.Clear()
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, res.Changed)

			data, err := os.ReadFile(other)
			require.NoError(t, err)
			assert.Equal(t, "keep me", string(data))
			assert.False(t, s.Exists())
			_, err = os.Stat(s.CachePath())
			assert.True(t, os.IsNotExist(err))
		})
	}
}
