// Package dsp implements the signal-analysis stages of the fingerprint
// pipeline: spectrogram construction, the rolling statistics tracker used
// to set an adaptive peak threshold, and the band-based peak picker.
package dsp

import "math"

// windowSize is the length of the rolling statistics ring buffer.
const windowSize = 60

// emptyMean is returned by Mean before any value has been pushed, so an
// untouched tracker never lets every magnitude through as a peak.
const emptyMean = 10.0

// RollingStats maintains running mean and standard deviation over the
// most recent windowSize values using an add-new/subtract-evicted ring
// buffer, so each push is O(1) regardless of window length.
type RollingStats struct {
	buf    [windowSize]float64
	filled int
	pos    int
	sum    float64
	sumSq  float64
}

// NewRollingStats returns an empty tracker.
func NewRollingStats() *RollingStats {
	return &RollingStats{}
}

// Push records a new value, evicting the oldest once the buffer is full.
func (r *RollingStats) Push(v float64) {
	if r.filled == windowSize {
		evicted := r.buf[r.pos]
		r.sum -= evicted
		r.sumSq -= evicted * evicted
	} else {
		r.filled++
	}

	r.buf[r.pos] = v
	r.sum += v
	r.sumSq += v * v
	r.pos = (r.pos + 1) % windowSize
}

// Mean returns the running mean, or the sentinel 10.0 before any push.
func (r *RollingStats) Mean() float64 {
	if r.filled == 0 {
		return emptyMean
	}
	return r.sum / float64(r.filled)
}

// StdDev returns the sample standard deviation (n-1 denominator) of the
// values currently in the window. It is 0 with fewer than two samples.
func (r *RollingStats) StdDev() float64 {
	if r.filled < 2 {
		return 0
	}

	n := float64(r.filled)
	mean := r.sum / n
	// Var = (sumSq - n*mean^2) / (n-1), clamped non-negative to absorb
	// floating-point cancellation when the underlying distribution has
	// near-zero variance.
	variance := (r.sumSq - n*mean*mean) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Threshold returns Mean() + k*StdDev(), the adaptive cutoff a magnitude
// must exceed to be kept as a peak.
func (r *RollingStats) Threshold(k float64) float64 {
	return r.Mean() + k*r.StdDev()
}
