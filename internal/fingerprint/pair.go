package fingerprint

import "tunetrace/internal/dsp"

// pairTargetZoneSize is how many candidate targets follow each anchor.
const pairTargetZoneSize = 5

// pairDelay is how far past the anchor the target zone begins.
const pairDelay = 3

// GeneratePairs packs landmark pairs: for anchor index i, every peak in
// [i+pairDelay, i+pairDelay+pairTargetZoneSize) pairs with it. The hash
// layout is f1<<44 | f2<<24 | dt, where f1/f2 are the anchor/target
// frequency bins and dt is their time delta; time_offset is the anchor's
// time index.
func GeneratePairs(peaks []dsp.Point) []Fingerprint {
	var out []Fingerprint

	for i, anchor := range peaks {
		zoneStart := i + pairDelay
		zoneEnd := zoneStart + pairTargetZoneSize
		if zoneStart >= len(peaks) {
			continue
		}
		if zoneEnd > len(peaks) {
			zoneEnd = len(peaks)
		}

		for _, target := range peaks[zoneStart:zoneEnd] {
			f1 := uint64(anchor.FreqBin)
			f2 := uint64(target.FreqBin)
			dt := uint64(target.TimeIdx - anchor.TimeIdx)

			hash := (f1 << 44) | (f2 << 24) | dt
			out = append(out, Fingerprint{
				Hash:       hash,
				TimeOffset: uint64(anchor.TimeIdx),
			})
		}
	}

	return out
}
