package dsp

import "math"

// Point is one constellation point: a local maximum within a frequency
// band of a single STFT column that cleared the adaptive threshold.
type Point struct {
	FreqBin int
	Mag     float64
	TimeIdx int
}

// bands partitions the WindowSize/2 frequency bins into six logarithmic
// ranges. Low bins (which tend to carry the most energy) get one slot
// each instead of dominating a single global argmax, so each column
// contributes roughly even coverage across the spectrum.
var bands = [6][2]int{
	{0, 10},
	{10, 20},
	{20, 40},
	{40, 80},
	{80, 160},
	{160, 512},
}

// PickPeaks walks a spectrogram column by column, keeping the strongest
// bin in each of the six bands, pushing every band maximum into a single
// shared RollingStats tracker, then keeping any band maximum whose
// magnitude exceeds tracker.Threshold(modifier) as evaluated immediately
// after that column's pushes. Because the pushes come first, even the
// very first column is tested against the mean of its own band maxima;
// the tracker's 10.0 sentinel mean applies only while nothing has been
// pushed, which here happens only for a column with no bins.
func PickPeaks(spectrogram [][]float64, modifier float64) []Point {
	tracker := NewRollingStats()
	var peaks []Point

	for t, column := range spectrogram {
		type bandMax struct {
			bin int
			mag float64
			ok  bool
		}

		maxes := make([]bandMax, 0, len(bands))
		for _, band := range bands {
			lo, hi := band[0], band[1]
			if hi > len(column) {
				hi = len(column)
			}
			if lo >= hi {
				continue
			}

			bestBin := -1
			bestMag := math.Inf(-1)
			for f := lo; f < hi; f++ {
				if greaterNaNLeast(column[f], bestMag) {
					bestMag = column[f]
					bestBin = f
				}
			}
			if bestBin == -1 {
				continue
			}
			maxes = append(maxes, bandMax{bin: bestBin, mag: bestMag, ok: true})
		}

		for _, m := range maxes {
			tracker.Push(m.mag)
		}

		threshold := tracker.Threshold(modifier)
		for _, m := range maxes {
			if !m.ok {
				continue
			}
			if m.mag > threshold {
				peaks = append(peaks, Point{FreqBin: m.bin, Mag: m.mag, TimeIdx: t})
			}
		}
	}

	return peaks
}

// greaterNaNLeast reports whether a should replace b as a running
// maximum, treating NaN as the least possible value so a NaN magnitude
// can never win an argmax and never crashes the comparison.
func greaterNaNLeast(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}
