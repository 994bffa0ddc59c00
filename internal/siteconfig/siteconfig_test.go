package siteconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_MissingFileStartsFromDefaults(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	cfg := store.Snapshot()
	assert.Equal(t, "Lorencia MMORPG", cfg.General.SiteName)
	assert.True(t, cfg.General.AllowRegistration)

	_, err = os.Stat(filepath.Join(dir, FileName))
	assert.ErrorIs(t, err, os.ErrNotExist, "defaults must not be written until the first save")
}

func TestSaveSection_PersistsAndHotReloads(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	general := Defaults().General
	general.SiteName = "Noria Portal"
	general.AllowRegistration = false
	raw, err := json.Marshal(general)
	require.NoError(t, err)

	require.NoError(t, store.SaveSection("general", raw))

	cfg := store.Snapshot()
	assert.Equal(t, "Noria Portal", cfg.General.SiteName)
	assert.False(t, cfg.General.AllowRegistration)
	assert.Equal(t, Defaults().Credits.CreditsPerUnit, cfg.Credits.CreditsPerUnit, "other sections stay untouched")

	// a fresh store reads the same document back
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "Noria Portal", reopened.Snapshot().General.SiteName)
}

func TestSaveSection_UnknownSection(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	err = store.SaveSection("themes", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestSaveSection_RejectsInvalidPayload(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name    string
		section string
		raw     string
	}{
		{"malformed json", "general", `{"siteName":`},
		{"empty site name", "general", `{"siteName":"","maxCharactersPerUser":5}`},
		{"zero update interval", "ranking", `{"enabled":true,"updateInterval":0,"categories":[]}`},
		{"negative package price", "credits", `{"packages":[{"id":"small","name":"Starter","credits":100,"price":-1}],"creditsPerUnit":100}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.SaveSection(tt.section, json.RawMessage(tt.raw))
			assert.ErrorIs(t, err, ErrInvalidSection)
		})
	}
}

func TestSaveSection_FailedSaveLeavesSnapshotUntouched(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	err = store.SaveSection("general", json.RawMessage(`{"siteName":""}`))
	require.Error(t, err)

	assert.Equal(t, "Lorencia MMORPG", store.Snapshot().General.SiteName)
}

func TestSaveSection_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	raw, err := json.Marshal(Defaults().General)
	require.NoError(t, err)
	require.NoError(t, store.SaveSection("general", raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())
}

func TestReload_PicksUpExternalEdit(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)

	cfg := Defaults()
	cfg.General.SiteName = "Edited Offline"
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), data, 0o644))

	require.NoError(t, store.Reload())
	assert.Equal(t, "Edited Offline", store.Snapshot().General.SiteName)
}
