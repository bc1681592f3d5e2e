package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_AddSongAssignsSequentialIDs(t *testing.T) {
	ix := New()
	a := ix.AddSong("song-a")
	b := ix.AddSong("song-b")

	assert.Equal(t, uint32(0), a)
	assert.Equal(t, uint32(1), b)
	assert.Equal(t, 2, ix.SongCount())
}

func TestIndex_InsertAndLookup(t *testing.T) {
	ix := New()
	id := ix.AddSong("song-a")

	err := ix.InsertFingerprints(id, []uint64{100, 200}, []uint64{1, 2})
	require.NoError(t, err)

	postings, ok := ix.Lookup(100)
	require.True(t, ok)
	require.Len(t, postings, 1)
	assert.Equal(t, id, postings[0].SongID)
	assert.Equal(t, uint64(1), postings[0].TimeOffset)

	_, ok = ix.Lookup(999)
	assert.False(t, ok)
}

func TestIndex_InsertUnknownSongFails(t *testing.T) {
	ix := New()
	err := ix.InsertFingerprints(42, []uint64{1}, []uint64{1})
	assert.Error(t, err)
}

func TestIndex_InsertMismatchedLengthsFails(t *testing.T) {
	ix := New()
	id := ix.AddSong("song-a")
	err := ix.InsertFingerprints(id, []uint64{1, 2}, []uint64{1})
	assert.Error(t, err)
}

func TestIndex_ValidateRejectsEmptyPostingList(t *testing.T) {
	ix := New()
	ix.songs[0] = "song-a"
	ix.nextSongID = 1
	ix.hashes[7] = nil

	err := ix.validate()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestIndex_ValidateRejectsUnknownSongReference(t *testing.T) {
	ix := New()
	ix.nextSongID = 1
	ix.hashes[7] = []Posting{{SongID: 99, TimeOffset: 0}}

	err := ix.validate()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestIndex_ValidateAcceptsConsistentIndex(t *testing.T) {
	ix := New()
	id := ix.AddSong("song-a")
	require.NoError(t, ix.InsertFingerprints(id, []uint64{1, 2}, []uint64{1, 2}))

	assert.NoError(t, ix.validate())
}
