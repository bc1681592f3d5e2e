package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunetrace/internal/index"
)

func TestMatch_EmptyQueryYieldsNoMatch(t *testing.T) {
	ix := index.New()
	_, ok := Match(ix, nil, nil, DefaultThreshold)
	assert.False(t, ok)
}

func TestMatch_SelfMatchSaturatesConfidence(t *testing.T) {
	ix := index.New()
	id := ix.AddSong("song-a")

	hashes := []uint64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100, 110, 120}
	offsets := make([]uint64, len(hashes))
	for i := range offsets {
		offsets[i] = uint64(i)
	}
	require.NoError(t, ix.InsertFingerprints(id, hashes, offsets))

	result, ok := Match(ix, hashes, offsets, DefaultThreshold)
	require.True(t, ok)
	assert.Equal(t, id, result.SongID)
	assert.Equal(t, "song-a", result.SongName)
	assert.Equal(t, len(hashes), result.Confidence)
}

func TestMatch_BelowThresholdYieldsNoMatch(t *testing.T) {
	ix := index.New()
	id := ix.AddSong("song-a")
	require.NoError(t, ix.InsertFingerprints(id, []uint64{1, 2}, []uint64{0, 1}))

	_, ok := Match(ix, []uint64{1, 2}, []uint64{0, 1}, DefaultThreshold)
	assert.False(t, ok)
}

func TestMatch_UnknownHashesAreSkipped(t *testing.T) {
	ix := index.New()
	id := ix.AddSong("song-a")
	hashes := []uint64{1, 2, 3}
	offsets := []uint64{0, 1, 2}
	require.NoError(t, ix.InsertFingerprints(id, hashes, offsets))

	result, ok := Match(ix, []uint64{1, 2, 3, 999, 1000}, []uint64{0, 1, 2, 5, 6}, 3)
	require.True(t, ok)
	assert.Equal(t, id, result.SongID)
}

func TestMatch_TimeOffsetShiftStillAligns(t *testing.T) {
	ix := index.New()
	id := ix.AddSong("song-a")
	hashes := []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	offsets := make([]uint64, len(hashes))
	for i := range offsets {
		offsets[i] = uint64(i + 5)
	}
	require.NoError(t, ix.InsertFingerprints(id, hashes, offsets))

	// A query clipped 5 frames into the song should still align: every
	// hash's delta (indexed offset - query offset) is constant.
	queryOffsets := make([]uint64, len(offsets))
	for i, o := range offsets {
		queryOffsets[i] = o - 5
	}

	result, ok := Match(ix, hashes, queryOffsets, DefaultThreshold)
	require.True(t, ok)
	assert.Equal(t, id, result.SongID)
}
