// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	want := Credentials{APIKey: "key-123", SearchEngineID: "cx-456"}

	require.NoError(t, Save(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Credentials{}, got)
	assert.False(t, got.Complete())
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing credential file")
}

func TestLoadFieldNames(t *testing.T) {
	// The file format is the JSON object the spec names.
	path := filepath.Join(t.TempDir(), "credentials.json")
	data := `{"api_key": "abc", "search_engine_id": "def"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.APIKey)
	assert.Equal(t, "def", got.SearchEngineID)
	assert.True(t, got.Complete())
}

func TestComplete(t *testing.T) {
	assert.False(t, Credentials{APIKey: "k"}.Complete())
	assert.False(t, Credentials{SearchEngineID: "c"}.Complete())
	assert.True(t, Credentials{APIKey: "k", SearchEngineID: "c"}.Complete())
}

func TestDefaultPathPrefersLocalFile(t *testing.T) {
	dir := t.TempDir()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	// Without a working-directory file, the per-user path wins.
	assert.NotEqual(t, localFile, DefaultPath())

	require.NoError(t, os.WriteFile(filepath.Join(dir, localFile), []byte("{}"), 0o600))
	assert.Equal(t, localFile, DefaultPath())
}
