// Package index implements the in-memory inverted index: hash ->
// postings lookup, song id assignment, and the invariants that keep the
// two in sync under a single-writer discipline.
package index

import (
	"fmt"
	"sync"
)

// Posting is one occurrence of a hash within a song.
type Posting struct {
	SongID     uint32
	TimeOffset uint64
}

// Index maps landmark hashes to the songs and time offsets they occur
// at. All mutation must happen through a single writer (the ingestion
// pipeline's writer goroutine); Lookup and the other readers are safe
// for concurrent use once ingestion has finished.
type Index struct {
	mu sync.RWMutex

	songs      map[uint32]string
	hashes     map[uint64][]Posting
	nextSongID uint32
}

// New returns an empty index.
func New() *Index {
	return &Index{
		songs:  make(map[uint32]string),
		hashes: make(map[uint64][]Posting),
	}
}

// AddSong registers a new song and returns its assigned id. Ids are
// assigned in call order starting at 0; nextSongID always exceeds every
// assigned id, so it doubles as the count of songs indexed so far.
func (ix *Index) AddSong(name string) uint32 {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	id := ix.nextSongID
	ix.songs[id] = name
	ix.nextSongID++
	return id
}

// InsertFingerprints records one song's hashes. Fingerprints belonging to
// the same song are inserted together so each hash's posting list stays
// grouped by song, keeping each song's postings contiguous. validate does
// not check this ordering.
func (ix *Index) InsertFingerprints(songID uint32, hashes []uint64, offsets []uint64) error {
	if len(hashes) != len(offsets) {
		return fmt.Errorf("index: mismatched hash/offset lengths (%d vs %d)", len(hashes), len(offsets))
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, ok := ix.songs[songID]; !ok {
		return fmt.Errorf("index: unknown song id %d", songID)
	}

	for i, h := range hashes {
		ix.hashes[h] = append(ix.hashes[h], Posting{SongID: songID, TimeOffset: offsets[i]})
	}

	return nil
}

// Lookup returns the postings for a hash, if any. A missing hash is not
// an error: callers on the query path simply skip it.
func (ix *Index) Lookup(hash uint64) ([]Posting, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	postings, ok := ix.hashes[hash]
	return postings, ok
}

// SongName resolves a song id to its registered name.
func (ix *Index) SongName(songID uint32) (string, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	name, ok := ix.songs[songID]
	return name, ok
}

// SongCount returns how many songs have been indexed.
func (ix *Index) SongCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.songs)
}

// HashCount returns how many distinct hashes are present.
func (ix *Index) HashCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.hashes)
}

// Songs returns a snapshot of the song id -> name mapping, for catalog
// mirroring and CLI listing.
func (ix *Index) Songs() map[uint32]string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make(map[uint32]string, len(ix.songs))
	for id, name := range ix.songs {
		out[id] = name
	}
	return out
}

// validate checks the invariants persistence relies on: no empty
// posting list is ever stored, every posting references a known song,
// and nextSongID exceeds every assigned song id.
func (ix *Index) validate() error {
	for id := range ix.songs {
		if id >= ix.nextSongID {
			return fmt.Errorf("%w: song id %d is not below next_song_id %d", ErrCorrupt, id, ix.nextSongID)
		}
	}
	for h, postings := range ix.hashes {
		if len(postings) == 0 {
			return fmt.Errorf("%w: hash %d has an empty posting list", ErrCorrupt, h)
		}
		for _, p := range postings {
			if _, ok := ix.songs[p.SongID]; !ok {
				return fmt.Errorf("%w: posting references unknown song id %d", ErrCorrupt, p.SongID)
			}
			if p.SongID >= ix.nextSongID {
				return fmt.Errorf("%w: song id %d exceeds next_song_id %d", ErrCorrupt, p.SongID, ix.nextSongID)
			}
		}
	}
	return nil
}
