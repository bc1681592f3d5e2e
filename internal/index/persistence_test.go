package index

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	ix := New()
	id := ix.AddSong("song-a")
	require.NoError(t, ix.InsertFingerprints(id, []uint64{10, 20, 30}, []uint64{1, 2, 3}))

	path := filepath.Join(t.TempDir(), "index.bin")
	require.NoError(t, ix.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ix.SongCount(), loaded.SongCount())
	assert.Equal(t, ix.HashCount(), loaded.HashCount())

	postings, ok := loaded.Lookup(20)
	require.True(t, ok)
	require.Len(t, postings, 1)
	assert.Equal(t, id, postings[0].SongID)
	assert.Equal(t, uint64(2), postings[0].TimeOffset)

	name, ok := loaded.SongName(id)
	require.True(t, ok)
	assert.Equal(t, "song-a", name)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"))
	assert.Error(t, err)
}
