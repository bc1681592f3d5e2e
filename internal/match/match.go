// Package match implements the histogram-alignment matcher: given a
// query's fingerprints, find which indexed song (if any) shares the most
// landmarks at a consistent time offset.
package match

import "tunetrace/internal/index"

// DefaultThreshold is the minimum aligned-bucket count required before a
// candidate is reported as a match.
const DefaultThreshold = 10

// Result is the outcome of matching a query against an index.
type Result struct {
	SongID     uint32
	SongName   string
	Confidence int
}

// Match scans queryHashes/queryOffsets against idx and returns the best
// aligned song, if its confidence clears threshold. Zero query
// fingerprints is not an error — it simply yields no match. Hashes
// absent from the index are skipped, never treated as a failure.
func Match(idx *index.Index, queryHashes []uint64, queryOffsets []uint64, threshold int) (Result, bool) {
	if len(queryHashes) == 0 {
		return Result{}, false
	}

	// songID -> (delta -> count)
	histograms := make(map[uint32]map[int64]int)

	for i, h := range queryHashes {
		postings, ok := idx.Lookup(h)
		if !ok {
			continue
		}

		queryOffset := int64(queryOffsets[i])
		for _, p := range postings {
			delta := int64(p.TimeOffset) - queryOffset

			bucket, ok := histograms[p.SongID]
			if !ok {
				bucket = make(map[int64]int)
				histograms[p.SongID] = bucket
			}
			bucket[delta]++
		}
	}

	var best Result
	var bestCount int
	found := false

	for songID, bucket := range histograms {
		for _, count := range bucket {
			if count > bestCount {
				bestCount = count
				best = Result{SongID: songID, Confidence: count}
				found = true
			}
		}
	}

	if !found || bestCount < threshold {
		return Result{}, false
	}

	if name, ok := idx.SongName(best.SongID); ok {
		best.SongName = name
	}

	return best, true
}
