package index

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrCorrupt is wrapped by any invariant violation detected while
// loading a persisted index.
var ErrCorrupt = errors.New("index: corrupt index")

// wireIndex is the self-describing on-disk shape. It mirrors the live
// maps (hash -> slice of postings), but postings are copied into
// wirePosting values with explicit msgpack field names so the format does
// not depend on the in-memory Posting type.
type wireIndex struct {
	Songs      map[uint32]string  `msgpack:"songs"`
	Hashes     map[uint64][]wirePosting `msgpack:"hashes"`
	NextSongID uint32             `msgpack:"next_song_id"`
}

type wirePosting struct {
	SongID     uint32 `msgpack:"song_id"`
	TimeOffset uint64 `msgpack:"time_offset"`
}

// Save writes the index to path as MessagePack.
func (ix *Index) Save(path string) error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	w := wireIndex{
		Songs:      ix.songs,
		Hashes:     make(map[uint64][]wirePosting, len(ix.hashes)),
		NextSongID: ix.nextSongID,
	}
	for h, postings := range ix.hashes {
		wp := make([]wirePosting, len(postings))
		for i, p := range postings {
			wp[i] = wirePosting{SongID: p.SongID, TimeOffset: p.TimeOffset}
		}
		w.Hashes[h] = wp
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("index: create %s: %w", path, err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	if err := msgpack.NewEncoder(buf).Encode(w); err != nil {
		return fmt.Errorf("index: encode: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("index: flush %s: %w", path, err)
	}
	return nil
}

// Load reads an index previously written by Save, validating its
// invariants before returning it. A structurally valid but
// invariant-violating file is reported as ErrCorrupt rather than
// silently accepted.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("index: open %s: %w", path, err)
	}
	defer f.Close()

	var w wireIndex
	if err := msgpack.NewDecoder(bufio.NewReader(f)).Decode(&w); err != nil {
		return nil, fmt.Errorf("index: decode %s: %w", path, err)
	}

	ix := &Index{
		songs:      w.Songs,
		hashes:     make(map[uint64][]Posting, len(w.Hashes)),
		nextSongID: w.NextSongID,
	}
	if ix.songs == nil {
		ix.songs = make(map[uint32]string)
	}
	for h, wp := range w.Hashes {
		postings := make([]Posting, len(wp))
		for i, p := range wp {
			postings[i] = Posting{SongID: p.SongID, TimeOffset: p.TimeOffset}
		}
		ix.hashes[h] = postings
	}

	if err := ix.validate(); err != nil {
		return nil, err
	}

	return ix, nil
}
