package fingerprint

import "tunetrace/internal/dsp"

// fuzzDeltas is the set of perturbations tried at query time for each of
// the two fuzzed fields.
var fuzzDeltas = [3]int{-1, 0, 1}

// GenerateQuadsFuzzy packs quad landmarks the same way GenerateQuads does,
// then widens each one into a 3x3 grid over (f4, dt3) perturbed by
// fuzzDeltas, clamped at 0. This exists only on the query path: a
// recording's peak positions jitter slightly from the reference due to
// re-encoding or ambient noise, so probing neighboring hash values
// recovers matches an exact lookup would miss. Ingestion never calls
// this — only the unperturbed hash is ever stored.
func GenerateQuadsFuzzy(peaks []dsp.Point) []Fingerprint {
	candidates := quadCandidates(peaks)
	out := make([]Fingerprint, 0, len(candidates)*len(fuzzDeltas)*len(fuzzDeltas))

	for _, c := range candidates {
		for _, df4 := range fuzzDeltas {
			f4 := clampDelta(c.f4, df4)
			for _, ddt3 := range fuzzDeltas {
				dt3 := clampDelta(c.dt3, ddt3)
				variant := c
				variant.f4 = f4
				variant.dt3 = dt3
				out = append(out, variant.pack())
			}
		}
	}

	return out
}

// clampDelta applies a signed perturbation to an unsigned field, clamping
// at 0 rather than wrapping.
func clampDelta(v uint64, delta int) uint64 {
	if delta < 0 && v < uint64(-delta) {
		return 0
	}
	return uint64(int64(v) + int64(delta))
}
